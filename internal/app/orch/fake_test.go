package orch_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	id core.ConnID

	mu     sync.Mutex
	frames []string
	full   bool
	closed bool
}

func newConn(id string) *fakeConn { return &fakeConn{id: core.ConnID(id)} }

func (c *fakeConn) ID() core.ConnID { return c.id }

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrClosed
	}
	if c.full {
		return core.ErrBackpressure
	}
	c.frames = append(c.frames, string(f))
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// drain returns everything received so far and forgets it.
func (c *fakeConn) drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.frames
	c.frames = nil
	return out
}

func session(room string, id domain.Identity, conn core.SignalConnection) core.MemberSession {
	return core.MemberSession{Room: domain.RoomCode(room), Identity: id, Signal: conn}
}

type snapshot struct {
	Type string `json:"type"`
	Data struct {
		Status  string `json:"status"`
		Host    string `json:"host"`
		Players map[string]struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"players"`
	} `json:"data"`
}

// onlySnapshot asserts frames holds exactly one snapshot and decodes it.
func onlySnapshot(t *testing.T, frames []string) snapshot {
	t.Helper()
	require.Len(t, frames, 1)
	var s snapshot
	require.NoError(t, json.Unmarshal([]byte(frames[0]), &s))
	require.Equal(t, "update", s.Type)
	return s
}

package app

import (
	"errors"
	"sync"

	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

// Groups keeps the broadcast group of every room: the connections
// subscribed to it, regardless of their role.
type Groups struct {
	mu     sync.RWMutex
	byRoom map[domain.RoomCode]map[core.ConnID]core.SignalConnection
}

func NewGroups() *Groups {
	return &Groups{byRoom: make(map[domain.RoomCode]map[core.ConnID]core.SignalConnection)}
}

func (g *Groups) Subscribe(code domain.RoomCode, conn core.SignalConnection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	members, ok := g.byRoom[code]
	if !ok {
		members = make(map[core.ConnID]core.SignalConnection)
		g.byRoom[code] = members
	}
	members[conn.ID()] = conn
	log.Debug().Str("module", "app.groups").Str("room", string(code)).Str("conn", string(conn.ID())).Msg("subscribed")
}

func (g *Groups) Unsubscribe(code domain.RoomCode, conn core.SignalConnection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	members, ok := g.byRoom[code]
	if !ok {
		return
	}
	delete(members, conn.ID())
	if len(members) == 0 {
		delete(g.byRoom, code)
	}
	log.Debug().Str("module", "app.groups").Str("room", string(code)).Str("conn", string(conn.ID())).Msg("unsubscribed")
}

// Publish fans data out to every member of the group except the connection
// with id exclude (pass "" to include everybody). Members whose queue is full
// are reported in Dropped; closed members are skipped silently.
func (g *Groups) Publish(code domain.RoomCode, data core.Frame, exclude core.ConnID) core.PublishResult {
	g.mu.RLock()
	defer g.mu.RUnlock()
	res := core.PublishResult{}
	for id, m := range g.byRoom[code] {
		if exclude != "" && id == exclude {
			continue
		}
		if err := m.TrySend(data); err != nil {
			if errors.Is(err, core.ErrBackpressure) {
				res.Dropped = append(res.Dropped, m)
			}
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "app.groups").Str("room", string(code)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (g *Groups) SendDirect(conn core.SignalConnection, data core.Frame) error {
	return conn.TrySend(data)
}

func (g *Groups) Size(code domain.RoomCode) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.byRoom[code])
}

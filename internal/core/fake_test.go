package core_test

import "github.com/dkeye/Party/internal/core"

type stubConn struct {
	id     core.ConnID
	frames []core.Frame
}

func (c *stubConn) ID() core.ConnID { return c.id }

func (c *stubConn) TrySend(f core.Frame) error {
	c.frames = append(c.frames, f)
	return nil
}

func (c *stubConn) Close() {}

package app

import (
	"errors"
	"sync"

	"github.com/dkeye/Relay/internal/core"
)

var errSendFailed = errors.New("send failed")

// fakeConn records frames instead of writing to a socket.
type fakeConn struct {
	mu      sync.Mutex
	frames  []core.Frame
	closed  bool
	failing bool
}

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errSendFailed
	}
	c.frames = append(c.frames, f)
	return nil
}

func (c *fakeConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.frames))
	for _, f := range c.frames {
		out = append(out, string(f))
	}
	return out
}

package app

import (
	"testing"

	"github.com/dkeye/Relay/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteEchoesToWholeRoom(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	c1, c2 := &fakeConn{}, &fakeConn{}
	reg.Join("c1", c1, "r1", "alice")
	reg.Join("c2", c2, "r1", "bob")

	res := rt.Route("c1", "alice", "hi")

	want := `{"username":"alice","message":"hi"}`
	assert.Equal(t, []string{want}, c1.received())
	assert.Equal(t, []string{want}, c2.received())
	assert.Equal(t, 2, res.SendTo)
	assert.Equal(t, 2, res.Members)
	assert.Empty(t, res.Dropped)
}

func TestRouteIsolatesRooms(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	c1, c2, c3 := &fakeConn{}, &fakeConn{}, &fakeConn{}
	reg.Join("c1", c1, "r1", "alice")
	reg.Join("c2", c2, "r1", "bob")
	reg.Join("c3", c3, "r2", "carol")

	res := rt.Route("c3", "carol", "yo")

	assert.Equal(t, 1, res.SendTo)
	assert.Equal(t, []string{`{"username":"carol","message":"yo"}`}, c3.received())
	assert.Empty(t, c1.received())
	assert.Empty(t, c2.received())
}

func TestRouteUsesInboundUsername(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	c1 := &fakeConn{}
	reg.Join("c1", c1, "r1", "alice")

	rt.Route("c1", "mallory", "hi")

	assert.Equal(t, []string{`{"username":"mallory","message":"hi"}`}, c1.received())
}

func TestRouteContinuesPastFailedSend(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	conns := map[core.SessionID]*fakeConn{
		"c1": {},
		"c2": {failing: true},
		"c3": {},
		"c4": {},
	}
	for sid, c := range conns {
		reg.Join(sid, c, "r1", string(sid))
	}

	res := rt.Route("c1", "c1", "hi")

	assert.Equal(t, 4, res.Members)
	assert.Equal(t, 3, res.SendTo)
	assert.Equal(t, []core.SessionID{"c2"}, res.Dropped)
	for sid, c := range conns {
		if sid == "c2" {
			assert.Empty(t, c.received())
			continue
		}
		assert.Len(t, c.received(), 1, "recipient %s", sid)
	}
}

func TestRouteSkipsClosedConnections(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	open, closed := &fakeConn{}, &fakeConn{closed: true}
	reg.Join("c1", open, "r1", "alice")
	reg.Join("c2", closed, "r1", "bob")
	reg.Join("c3", nil, "r1", "ghost")

	res := rt.Route("c1", "alice", "hi")

	assert.Equal(t, 1, res.SendTo)
	assert.Equal(t, 2, res.Skipped)
	assert.Empty(t, res.Dropped)
	assert.Empty(t, closed.received())
}

func TestRouteFromUnjoinedSession(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	c1 := &fakeConn{}
	reg.Join("c1", c1, "r1", "alice")

	var res core.PublishResult
	require.NotPanics(t, func() { res = rt.Route("orphan", "eve", "hi") })

	assert.Zero(t, res.Members)
	assert.Zero(t, res.SendTo)
	assert.Empty(t, c1.received())
}

func TestRouteIgnoresEmptyText(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	c1 := &fakeConn{}
	reg.Join("c1", c1, "r1", "alice")

	res := rt.Route("c1", "alice", "")

	assert.Zero(t, res.Members)
	assert.Empty(t, c1.received())
}

func TestRouteAfterLeave(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	c1, c2 := &fakeConn{}, &fakeConn{}
	reg.Join("c1", c1, "r1", "alice")
	reg.Join("c2", c2, "r1", "bob")
	reg.Leave("c2")

	res := rt.Route("c1", "alice", "anyone?")

	assert.Equal(t, 1, res.SendTo)
	assert.Empty(t, c2.received())
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, KickMember, PolicyFor("kick").OnBackPressure("r", "c"))
	assert.Equal(t, NoAction, PolicyFor("ignore").OnBackPressure("r", "c"))
	assert.Equal(t, NoAction, PolicyFor("").OnBackPressure("r", "c"))
}

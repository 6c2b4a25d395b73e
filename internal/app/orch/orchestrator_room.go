package orch

import (
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// OnJoin moves sid into room. A session already in a room is moved,
// not added twice.
func (o *Orchestrator) OnJoin(sid core.SessionID, conn core.SignalConnection, room domain.RoomID, username string) {
	if prev, ok := o.Registry.Join(sid, conn, room, username); ok && prev.Room != room {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(prev.Room)).Msg("moved out of room")
	}
	o.Metrics.Joined()
	o.Metrics.SetMembers(o.Registry.Len())
}

func (o *Orchestrator) OnDisconnect(sid core.SessionID) {
	if m, ok := o.Registry.Leave(sid); ok {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("username", m.Username).Str("room", string(m.Room)).Msg("user disconnected")
	}
	o.Metrics.SetMembers(o.Registry.Len())
}

// OnError purges the session after a transport failure.
func (o *Orchestrator) OnError(sid core.SessionID, err error) {
	log.Error().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("connection error")
	o.OnDisconnect(sid)
}

// KickBySID drops the membership and closes the connection.
func (o *Orchestrator) KickBySID(sid core.SessionID) {
	m, ok := o.Registry.Leave(sid)
	if !ok {
		return
	}
	if m.Conn != nil {
		m.Conn.Close()
	}
	o.Metrics.SetMembers(o.Registry.Len())
}

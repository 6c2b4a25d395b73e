package app

import (
	"encoding/json"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Router fans a chat message out to the sender's current room.
type Router struct {
	Registry *Registry
}

func NewRouter(reg *Registry) *Router {
	return &Router{Registry: reg}
}

// Route delivers text to every open member of the sender's room,
// the sender included. username is taken from the inbound message,
// not from the registry. A failed send is logged and skipped; it
// never stops the fan-out and never reaches the sender.
func (rt *Router) Route(from core.SessionID, username, text string) core.PublishResult {
	if text == "" {
		log.Debug().Str("module", "app.router").Str("sid", string(from)).Msg("empty message ignored")
		return core.PublishResult{}
	}
	m, err := rt.Registry.Lookup(from)
	if err != nil {
		log.Debug().Err(err).Str("module", "app.router").Str("sid", string(from)).Msg("chat from unjoined session")
		return core.PublishResult{}
	}

	frame, err := json.Marshal(domain.ChatMessage{Username: username, Message: text})
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("encode chat message")
		return core.PublishResult{Room: m.Room}
	}

	members := rt.Registry.MembersOf(m.Room)
	res := core.PublishResult{Room: m.Room, Members: len(members)}
	for _, member := range members {
		if member.Conn == nil || !member.Conn.IsOpen() {
			res.Skipped++
			continue
		}
		if err := member.Conn.TrySend(frame); err != nil {
			log.Warn().
				Err(err).
				Str("module", "app.router").
				Str("room", string(m.Room)).
				Str("dst_sid", string(member.SID)).
				Msg("send failed, skipping recipient")
			res.Dropped = append(res.Dropped, member.SID)
			continue
		}
		res.SendTo++
	}
	log.Debug().
		Str("module", "app.router").
		Str("from", string(from)).
		Str("room", string(m.Room)).
		Int("members", len(members)).
		Int("sent_to", res.SendTo).
		Int("skipped", res.Skipped).
		Int("dropped", len(res.Dropped)).
		Msg("broadcast result")
	return res
}

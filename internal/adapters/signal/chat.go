package signal

import (
	"encoding/json"

	"github.com/dkeye/Relay/internal/core"
	"github.com/rs/zerolog/log"
)

// roomId is accepted for wire compatibility but the registry decides
// which room the message goes to.
type chatPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

func (ctl *SignalWSController) handleChat(sid core.SessionID, raw json.RawMessage) {
	var p chatPayload
	if err := decodePayload(raw, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad chat payload")
		return
	}
	if !ctl.limiter.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("chat rate limited, dropping")
		return
	}
	ctl.Orch.OnChat(sid, p.Username, p.Message)
}

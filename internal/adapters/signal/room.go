package signal

import (
	"encoding/json"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

type joinPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

func (ctl *SignalWSController) handleJoin(
	sid core.SessionID,
	conn *WsSignalConn,
	raw json.RawMessage,
) {
	var p joinPayload
	if err := decodePayload(raw, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad join payload")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Str("username", p.Username).Msg("join")
	ctl.Orch.OnJoin(sid, conn, domain.RoomID(p.RoomID), p.Username)
}

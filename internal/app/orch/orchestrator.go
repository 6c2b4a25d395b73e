package orch

import (
	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Orchestrator applies transport events to the registry and router.
type Orchestrator struct {
	Registry *app.Registry
	Router   *app.Router
	Policy   app.Policy
	Metrics  *metrics.Relay
}

func New(reg *app.Registry, policy app.Policy, m *metrics.Relay) *Orchestrator {
	return &Orchestrator{
		Registry: reg,
		Router:   app.NewRouter(reg),
		Policy:   policy,
		Metrics:  m,
	}
}

func (o *Orchestrator) OnChat(sid core.SessionID, username, text string) core.PublishResult {
	res := o.Router.Route(sid, username, text)
	if res.Members == 0 {
		return res
	}
	o.Metrics.Published(res)
	if o.Policy == nil {
		return res
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(res.Room, slow) {
		case app.KickMember:
			log.Info().Str("module", "orch").Str("sid", string(slow)).Str("room", string(res.Room)).Msg("kicking slow member")
			o.KickBySID(slow)
		case app.NoAction:
		}
	}
	return res
}

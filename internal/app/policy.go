package app

import (
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a recipient whose send failed.
type Policy interface {
	OnBackPressure(room domain.RoomID, sid core.SessionID) BackpressureAction
}

// SimplePolicy logs and skips; the member stays in the room.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.RoomID, core.SessionID) BackpressureAction {
	return NoAction
}

// KickPolicy removes members that cannot keep up and closes their connection.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(domain.RoomID, core.SessionID) BackpressureAction {
	return KickMember
}

// PolicyFor maps the slow_consumer config value to a Policy.
func PolicyFor(name string) Policy {
	if name == "kick" {
		return KickPolicy{}
	}
	return SimplePolicy{}
}

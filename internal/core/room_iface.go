package core

import "github.com/dkeye/Relay/internal/domain"

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	Room    domain.RoomID
	Members int
	SendTo  int
	Skipped int
	Dropped []SessionID
}

type RoomInfo struct {
	Name        domain.RoomID `json:"name"`
	MemberCount int           `json:"client_count"`
}

// Package domain contains entity without logic, just meta-data
package domain

// Membership binds a connection to a room and a display name.
// No transport or lifecycle logic here.
type Membership struct {
	Room     RoomID `json:"room"`
	Username string `json:"username"`
}

// ChatMessage is the payload fanned out to room members.
type ChatMessage struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

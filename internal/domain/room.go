package domain

// RoomID is an opaque room name chosen by clients.
// Rooms have no lifecycle of their own: a room exists while at least
// one membership carries its id.
type RoomID string

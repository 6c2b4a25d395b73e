package core

// SessionID identifies one live transport connection.
// A fresh one is minted per WebSocket, so two tabs of the same
// browser are two sessions.
type SessionID string

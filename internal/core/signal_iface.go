package core

// Frame is an encoded outbound payload.
type Frame []byte

// SignalConnection abstracts the messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend queues a frame without blocking.
	TrySend(Frame) error
	// IsOpen reports whether the connection still accepts frames.
	IsOpen() bool
	Close()
}

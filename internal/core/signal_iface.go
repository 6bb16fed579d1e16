package core

import "errors"

// Frame is a raw text payload as it travels over the wire.
type Frame []byte

type ConnID string

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

// SignalConnection abstracts the messaging transport of one member.
// Owned by the adapter; the adapter must Close() it. Rooms only keep a
// reference to send through.
type SignalConnection interface {
	ID() ConnID
	// TrySend enqueues f without blocking. It fails with ErrBackpressure when
	// the outbound queue is full and ErrClosed once the connection is closed.
	TrySend(f Frame) error
	Close()
}

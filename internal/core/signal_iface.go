package core

import "errors"

// SessionID identifies one live signaling connection.
type SessionID string

var (
	ErrBackpressure     = errors.New("backpressure")
	ErrConnectionClosed = errors.New("connection closed")
)

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
// TrySend never blocks: a full outbound queue is reported as ErrBackpressure.
type SignalConnection interface {
	TrySend(Message) error
	Close()
}

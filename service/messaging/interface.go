package messaging

import (
	"errors"
	"time"
)

// ErrQueueFull is returned by Publish when a bounded queue has no room left
var ErrQueueFull = errors.New("messaging: queue full")

// Queue represents an ordered, non-blocking FIFO for any payload type.
// The simulator is synchronous, so Consume never waits for a message.
type Queue[T any] interface {
	// Publish appends a payload at the tail
	Publish(t *T) error

	// Consume removes and returns the head message, ok is false when empty
	Consume() (Message[T], bool)

	// Peek returns the head message without removing it
	Peek() (Message[T], bool)

	// Size returns the number of queued messages
	Size() int

	// Snapshot returns copies of all payloads in queue order
	Snapshot() []T
}

// Message represents a queued payload
type Message[T any] interface {
	// ID returns the message identifier
	ID() string

	// T returns the payload of this message
	T() *T

	// CreatedAt returns the publish time
	CreatedAt() time.Time
}

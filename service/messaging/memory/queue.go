package memory

import (
	"github.com/viant/simos/internal/clock"
	"github.com/viant/simos/internal/idgen"
	"github.com/viant/simos/service/messaging"
	"time"
)

// Config for memory queue implementation
type Config struct {
	// MaxSize bounds the queue, 0 means unbounded
	MaxSize int
	// DropOldest evicts the head instead of rejecting when MaxSize is reached
	DropOldest bool
}

// DefaultConfig returns an unbounded queue configuration
func DefaultConfig() Config {
	return Config{}
}

// Message implements messaging.Message for the in-memory queue
type Message[T any] struct {
	id        string
	payload   T
	createdAt time.Time
}

// ID returns the message id
func (m *Message[T]) ID() string {
	return m.id
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// CreatedAt returns the publish time
func (m *Message[T]) CreatedAt() time.Time {
	return m.createdAt
}

// Queue implements an in-memory messaging.Queue backed by a slice.
// It is not safe for concurrent use; callers serialize access.
type Queue[T any] struct {
	messages []*Message[T]
	config   Config
	dropped  int
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}
	return &Queue[T]{
		messages: make([]*Message[T], 0),
		config:   config,
	}
}

// Publish adds a new item at the tail of the queue
func (q *Queue[T]) Publish(t *T) error {
	if t == nil {
		return nil
	}
	if q.config.MaxSize > 0 && len(q.messages) >= q.config.MaxSize {
		if !q.config.DropOldest {
			return messaging.ErrQueueFull
		}
		q.messages = q.messages[1:]
		q.dropped++
	}
	q.messages = append(q.messages, &Message[T]{
		id:        idgen.New(),
		payload:   *t,
		createdAt: clock.Now(),
	})
	return nil
}

// Consume removes and returns the head item
func (q *Queue[T]) Consume() (messaging.Message[T], bool) {
	if len(q.messages) == 0 {
		return nil, false
	}
	msg := q.messages[0]
	q.messages[0] = nil
	q.messages = q.messages[1:]
	return msg, true
}

// Peek returns the head item without removing it
func (q *Queue[T]) Peek() (messaging.Message[T], bool) {
	if len(q.messages) == 0 {
		return nil, false
	}
	return q.messages[0], true
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// Dropped returns the number of messages evicted by DropOldest
func (q *Queue[T]) Dropped() int {
	return q.dropped
}

// Snapshot returns payload copies in queue order
func (q *Queue[T]) Snapshot() []T {
	out := make([]T, 0, len(q.messages))
	for _, msg := range q.messages {
		out = append(out, msg.payload)
	}
	return out
}

// Contains reports whether any queued payload matches
func (q *Queue[T]) Contains(match func(*T) bool) bool {
	for _, msg := range q.messages {
		if match(&msg.payload) {
			return true
		}
	}
	return false
}

// Remove deletes every queued payload that matches, keeping the order of the
// remaining ones, and returns the number removed.
func (q *Queue[T]) Remove(match func(*T) bool) int {
	kept := q.messages[:0]
	removed := 0
	for _, msg := range q.messages {
		if match(&msg.payload) {
			removed++
			continue
		}
		kept = append(kept, msg)
	}
	for i := len(kept); i < len(q.messages); i++ {
		q.messages[i] = nil
	}
	q.messages = kept
	return removed
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)

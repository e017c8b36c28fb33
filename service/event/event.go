package event

import (
	"time"

	"github.com/viant/simos/model"
)

// Event types emitted by the scheduler
const (
	TypeCreated   = "created"
	TypeRunning   = "running"
	TypeReady     = "ready"
	TypeExited    = "exited"
	TypeCascaded  = "cascaded"
	TypeWaiting   = "waiting"
	TypeResumed   = "resumed"
	TypeBlocked   = "blocked"
	TypeUnblocked = "unblocked"
	TypeDiscarded = "discarded"
	TypeRejected  = "rejected"
)

// Context describes where an event originated
type Context struct {
	Operation string    `json:"operation"`
	EventType string    `json:"eventType"`
	PID       model.PID `json:"pid,omitempty"`
	Device    *int      `json:"device,omitempty"`
	FileName  string    `json:"fileName,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Event is a typed notification with its origin context
type Event[T any] struct {
	ID        string                 `json:"id"`
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:  context,
		Metadata: make(map[string]interface{}),
		Data:     data,
	}
}

// WithMetadata sets a metadata entry
func (e *Event[T]) WithMetadata(key string, value interface{}) *Event[T] {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

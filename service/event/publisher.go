package event

import (
	"context"

	"github.com/viant/simos/internal/clock"
	"github.com/viant/simos/internal/idgen"
	"github.com/viant/simos/service/messaging/memory"
)

// DefaultJournalSize bounds the number of retained events
const DefaultJournalSize = 4096

// Handler receives published events synchronously
type Handler[T any] func(ctx context.Context, event *Event[T])

// Publisher records events in a bounded journal and fans them out to
// subscribed handlers in subscription order.
type Publisher[T any] struct {
	journal  *memory.Queue[Event[T]]
	handlers []Handler[T]
}

// NewPublisher creates a publisher keeping at most journalSize events,
// the oldest are dropped first.
func NewPublisher[T any](journalSize int) *Publisher[T] {
	if journalSize <= 0 {
		journalSize = DefaultJournalSize
	}
	return &Publisher[T]{
		journal: memory.NewQueue[Event[T]](memory.Config{MaxSize: journalSize, DropOldest: true}),
	}
}

// Subscribe registers a handler
func (p *Publisher[T]) Subscribe(handler Handler[T]) {
	if handler != nil {
		p.handlers = append(p.handlers, handler)
	}
}

// Publish stamps, journals and dispatches the event
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	if event == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = idgen.New()
	}
	event.CreatedAt = clock.Now()
	if err := p.journal.Publish(event); err != nil {
		return err
	}
	for _, handler := range p.handlers {
		handler(ctx, event)
	}
	return nil
}

// Events returns the journal content, oldest first
func (p *Publisher[T]) Events() []Event[T] {
	return p.journal.Snapshot()
}

// Drain returns and clears the journal
func (p *Publisher[T]) Drain() []Event[T] {
	var ret []Event[T]
	for {
		msg, ok := p.journal.Consume()
		if !ok {
			return ret
		}
		ret = append(ret, *msg.T())
	}
}

// Dropped returns how many events were evicted from the journal
func (p *Publisher[T]) Dropped() int {
	return p.journal.Dropped()
}

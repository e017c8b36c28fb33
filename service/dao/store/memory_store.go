package store

import (
	"context"

	"github.com/viant/simos/service/dao"
)

// MemoryStore is a generic in-memory implementation of dao.Service.
// It keeps entities of type *T mapped by a comparable key K and remembers
// insertion order, so List is deterministic.
//
// The store is not synchronized; the scheduler owns it and serializes access.
type MemoryStore[K comparable, T any] struct {
	records     map[K]*T
	order       []K
	keySelector func(*T) K
	filter      func(*T, []*dao.Parameter) bool
}

// NewMemoryStore creates a new MemoryStore.
// keySelector extracts the entity key (usually the ID field) from a value.
func NewMemoryStore[K comparable, T any](keySelector func(*T) K) *MemoryStore[K, T] {
	return &MemoryStore[K, T]{
		records:     make(map[K]*T),
		keySelector: keySelector,
	}
}

// WithFilter sets the predicate List applies to parameters
func (s *MemoryStore[K, T]) WithFilter(filter func(*T, []*dao.Parameter) bool) *MemoryStore[K, T] {
	s.filter = filter
	return s
}

// Save stores or overwrites a record.
func (s *MemoryStore[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	if _, ok := s.records[key]; !ok {
		s.order = append(s.order, key)
	}
	s.records[key] = v
	return nil
}

// Load returns a record by key.
func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (*T, error) {
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return v, nil
}

// Delete removes a record.
func (s *MemoryStore[K, T]) Delete(_ context.Context, key K) error {
	if _, ok := s.records[key]; !ok {
		return dao.ErrNotFound
	}
	delete(s.records, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns stored records in insertion order.
func (s *MemoryStore[K, T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	out := make([]*T, 0, len(s.order))
	for _, key := range s.order {
		v := s.records[key]
		if s.filter != nil && !s.filter(v, parameters) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Len returns the number of records
func (s *MemoryStore[K, T]) Len() int {
	return len(s.records)
}

var _ dao.Service[string, struct{}] = (*MemoryStore[string, struct{}])(nil)

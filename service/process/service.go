package process

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/simos/internal/clock"
	"github.com/viant/simos/model"
	"github.com/viant/simos/service/dao"
	"github.com/viant/simos/service/dao/criteria"
	"github.com/viant/simos/service/dao/store"
)

var (
	// ErrInvalidPID is returned when creating a record with the NoPID sentinel
	ErrInvalidPID = errors.New("process: invalid pid")
	// ErrDuplicatePID is returned when a PID is already in the table
	ErrDuplicatePID = errors.New("process: duplicate pid")
)

// Service is the process table. Records are never removed; exited processes
// stay as zombies. Mutators silently ignore unknown PIDs.
type Service struct {
	dao *store.MemoryStore[model.PID, model.Process]
}

// New creates an empty process table
func New() *Service {
	return &Service{
		dao: store.NewMemoryStore[model.PID, model.Process](func(p *model.Process) model.PID { return p.PID }).
			WithFilter(func(p *model.Process, parameters []*dao.Parameter) bool {
				return criteria.FilterByStatus(p.Status(), parameters)
			}),
	}
}

// Create inserts a new record and links it to its parent when parent is set
func (s *Service) Create(ctx context.Context, pid model.PID, priority int, size uint64, parent model.PID) (*model.Process, error) {
	if pid == model.NoPID {
		return nil, ErrInvalidPID
	}
	if _, ok := s.Lookup(ctx, pid); ok {
		return nil, fmt.Errorf("%w: %v", ErrDuplicatePID, pid)
	}
	record := &model.Process{
		PID:       pid,
		Parent:    parent,
		Priority:  priority,
		Size:      size,
		CreatedAt: clock.Now(),
	}
	if err := s.dao.Save(ctx, record); err != nil {
		return nil, err
	}
	if parent != model.NoPID {
		s.AddChild(ctx, parent, pid)
	}
	return record, nil
}

// MarkZombie flags pid as exited
func (s *Service) MarkZombie(ctx context.Context, pid model.PID) {
	if p, ok := s.Lookup(ctx, pid); ok {
		p.Zombie = true
	}
}

// MarkWaiting sets the waiting-for-child flag
func (s *Service) MarkWaiting(ctx context.Context, pid model.PID, value bool) {
	if p, ok := s.Lookup(ctx, pid); ok {
		p.Waiting = value
	}
}

// AddChild appends child to parent's children, keeping fork order
func (s *Service) AddChild(ctx context.Context, parent, child model.PID) {
	p, ok := s.Lookup(ctx, parent)
	if !ok {
		return
	}
	for _, candidate := range p.Children {
		if candidate == child {
			return
		}
	}
	p.Children = append(p.Children, child)
}

// Lookup returns the live record for pid
func (s *Service) Lookup(ctx context.Context, pid model.PID) (*model.Process, bool) {
	p, err := s.dao.Load(ctx, pid)
	if err != nil {
		return nil, false
	}
	return p, true
}

// List returns records in creation order, optionally filtered by
// criteria.StatusParameter.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) []*model.Process {
	ret, _ := s.dao.List(ctx, parameters...)
	return ret
}

// Len returns the number of records, OS included
func (s *Service) Len() int {
	return s.dao.Len()
}

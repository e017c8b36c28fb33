package scheduler

import (
	"context"
	"io"
	"log"

	"github.com/viant/simos/model"
	"github.com/viant/simos/service/dao"
	"github.com/viant/simos/service/disk"
	"github.com/viant/simos/service/event"
	"github.com/viant/simos/service/ledger"
	"github.com/viant/simos/service/messaging/memory"
	"github.com/viant/simos/service/process"
)

// Service holds the CPU slot and the ready queue
type Service struct {
	config    Config
	nextPID   model.PID
	cpu       model.PID
	ready     *memory.Queue[model.PID]
	processes *process.Service
	ledger    *ledger.Service
	disks     *disk.Service
	events    *event.Publisher[model.Process]
	logger    *log.Logger
}

// New creates a scheduler. The OS identity owns [0, OSSize) and holds the CPU
// until the first process is created.
func New(config Config, options ...Option) *Service {
	s := &Service{
		config:    config,
		nextPID:   model.FirstPID,
		cpu:       model.OSPID,
		ready:     memory.NewQueue[model.PID](memory.DefaultConfig()),
		processes: process.New(),
		ledger:    ledger.New(config.RAM, config.OSSize, config.Memory),
		disks:     disk.New(config.Disks),
		events:    event.NewPublisher[model.Process](config.JournalSize),
		logger:    log.New(io.Discard, "", 0),
	}
	for _, option := range options {
		option(s)
	}
	_, _ = s.processes.Create(context.Background(), model.OSPID, 0, s.ledger.OSSize(), model.NoPID)
	return s
}

// CPU returns the CPU holder, model.NoPID when idle
func (s *Service) CPU() model.PID {
	return s.cpu
}

// ReadyQueue returns the ready queue, head first
func (s *Service) ReadyQueue() []model.PID {
	return s.ready.Snapshot()
}

// Memory returns the memory regions in allocation order
func (s *Service) Memory() []model.Region {
	return s.ledger.Snapshot()
}

// FreeMemory returns the ledger's free-capacity counter
func (s *Service) FreeMemory() uint64 {
	return s.ledger.Free()
}

// Disk returns the head request of device, or an empty request when none is
// pending
func (s *Service) Disk(device int) model.ReadRequest {
	request, _ := s.disks.PeekFront(device)
	return request
}

// DiskQueue returns the pending requests of device in FIFO order
func (s *Service) DiskQueue(device int) []model.ReadRequest {
	return s.disks.Snapshot(device)
}

// Devices returns the known device ids
func (s *Service) Devices() []int {
	return s.disks.Devices()
}

// Process returns a copy of the pid record
func (s *Service) Process(ctx context.Context, pid model.PID) (*model.Process, bool) {
	p, ok := s.processes.Lookup(ctx, pid)
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Processes returns copies of all records in creation order
func (s *Service) Processes(ctx context.Context, parameters ...*dao.Parameter) []*model.Process {
	records := s.processes.List(ctx, parameters...)
	ret := make([]*model.Process, 0, len(records))
	for _, p := range records {
		ret = append(ret, p.Clone())
	}
	return ret
}

// Events returns the event journal, oldest first
func (s *Service) Events() []event.Event[model.Process] {
	return s.events.Events()
}

// DrainEvents returns and clears the event journal
func (s *Service) DrainEvents() []event.Event[model.Process] {
	return s.events.Drain()
}

func (s *Service) idle() bool {
	return s.cpu == model.NoPID || s.cpu == model.OSPID
}

// runner returns the running simulated process
func (s *Service) runner(ctx context.Context) (*model.Process, error) {
	switch s.cpu {
	case model.NoPID:
		return nil, ErrNoProcess
	case model.OSPID:
		return nil, ErrOSProcess
	}
	p, ok := s.processes.Lookup(ctx, s.cpu)
	if !ok {
		return nil, ErrNoProcess
	}
	if p.Zombie {
		return nil, ErrZombie
	}
	return p, nil
}

// schedule gives pid the CPU when idle, otherwise queues it
func (s *Service) schedule(ctx context.Context, op string, pid model.PID) {
	if s.idle() {
		s.cpu = pid
		s.publish(ctx, op, event.TypeRunning, pid, nil)
		return
	}
	s.enqueueReady(pid)
	s.publish(ctx, op, event.TypeReady, pid, nil)
}

// enqueueReady appends pid unless it is already queued
func (s *Service) enqueueReady(pid model.PID) {
	if s.ready.Contains(func(candidate *model.PID) bool { return *candidate == pid }) {
		return
	}
	_ = s.ready.Publish(&pid)
}

func (s *Service) removeReady(pid model.PID) {
	s.ready.Remove(func(candidate *model.PID) bool { return *candidate == pid })
}

func (s *Service) publish(ctx context.Context, op, eventType string, pid model.PID, customize func(c *event.Context)) {
	var data model.Process
	if p, ok := s.processes.Lookup(ctx, pid); ok {
		data = *p.Clone()
	}
	eCtx := &event.Context{Operation: op, EventType: eventType, PID: pid}
	if customize != nil {
		customize(eCtx)
	}
	if err := s.events.Publish(ctx, event.NewEvent(eCtx, data)); err != nil {
		s.logger.Printf("failed to publish %v event for pid %v: %v", eventType, pid, err)
	}
	s.logger.Printf("%v: pid %v %v", op, pid, eventType)
}

func (s *Service) reject(ctx context.Context, op string, err error) error {
	pid := s.cpu
	eCtx := &event.Context{Operation: op, EventType: event.TypeRejected, PID: pid, Error: err.Error()}
	_ = s.events.Publish(ctx, event.NewEvent(eCtx, model.Process{}))
	s.logger.Printf("%v: rejected: %v", op, err)
	return err
}

func deviceRef(device int) func(c *event.Context) {
	return func(c *event.Context) {
		c.Device = &device
	}
}

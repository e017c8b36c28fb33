package simos

import (
	"context"
	"io"
	"log"
	"strconv"
	"sync"

	"github.com/viant/simos/model"
	"github.com/viant/simos/service/dao"
	"github.com/viant/simos/service/event"
	"github.com/viant/simos/service/scheduler"
	"github.com/viant/simos/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Service is the simulator facade. Every operation and query holds one
// mutex, so a Service can be shared between goroutines.
type Service struct {
	mux       sync.Mutex
	config    *Config
	scheduler *scheduler.Service
	logger    *log.Logger
	listeners []event.Handler[model.Process]
	exporter  sdktrace.SpanExporter
}

// New creates a simulator with the OS identity owning [0, OSSize)
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	if err := s.initTracing(); err != nil {
		return nil, err
	}
	schedulerOptions := []scheduler.Option{scheduler.WithLogger(s.logger)}
	for _, listener := range s.listeners {
		schedulerOptions = append(schedulerOptions, scheduler.WithListener(listener))
	}
	s.scheduler = scheduler.New(scheduler.Config{
		Disks:       s.config.Disks,
		RAM:         uint64(s.config.RAM),
		OSSize:      uint64(s.config.OSSize),
		Memory:      s.config.Memory,
		JournalSize: s.config.JournalSize,
	}, schedulerOptions...)
	return s, nil
}

func (s *Service) initTracing() error {
	cfg := s.config.Tracing
	if !cfg.Enabled {
		return nil
	}
	if s.exporter != nil {
		return tracing.InitWithExporter(cfg.ServiceName, cfg.ServiceVersion, s.exporter)
	}
	return tracing.Init(cfg.ServiceName, cfg.ServiceVersion, cfg.OutputFile)
}

// Shutdown flushes pending spans and releases the tracing output when tracing is enabled
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.config.Tracing.Enabled {
		return nil
	}
	return tracing.Shutdown(ctx)
}

// Config returns the effective configuration
func (s *Service) Config() Config {
	return *s.config
}

// run executes fn under the service lock inside a span named simos.<op>
func (s *Service) run(ctx context.Context, op string, attrs map[string]string, fn func(ctx context.Context) (model.PID, error)) (model.PID, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	ctx, span := tracing.StartSpan(ctx, "simos."+op, "INTERNAL")
	pid, err := fn(ctx)
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrs["pid"] = pid.String()
	attrs["cpu"] = s.scheduler.CPU().String()
	if err != nil {
		attrs["rejected"] = "true"
	}
	span.WithAttributes(attrs)
	tracing.EndSpan(span, err)
	return pid, err
}

// NewProcess creates a top-level process of size bytes. It returns false
// when the memory ledger cannot fit it.
func (s *Service) NewProcess(ctx context.Context, size uint64, priority int) bool {
	_, err := s.run(ctx, scheduler.OpCreate, map[string]string{
		"size":     strconv.FormatUint(size, 10),
		"priority": strconv.Itoa(priority),
	}, func(ctx context.Context) (model.PID, error) {
		return s.scheduler.Create(ctx, size, priority)
	})
	return err == nil
}

// Fork duplicates the running process. It returns false when nothing but the
// OS runs, the runner is a zombie, or memory is short.
func (s *Service) Fork(ctx context.Context) bool {
	_, err := s.run(ctx, scheduler.OpFork, nil, func(ctx context.Context) (model.PID, error) {
		return s.scheduler.Fork(ctx)
	})
	return err == nil
}

// Exit terminates the running process and cascades to its descendants
func (s *Service) Exit(ctx context.Context) {
	_, _ = s.run(ctx, scheduler.OpExit, nil, func(ctx context.Context) (model.PID, error) {
		pid := s.scheduler.CPU()
		return pid, s.scheduler.Exit(ctx)
	})
}

// Wait parks the running process until one of its children exits
func (s *Service) Wait(ctx context.Context) {
	_, _ = s.run(ctx, scheduler.OpWait, nil, func(ctx context.Context) (model.PID, error) {
		pid := s.scheduler.CPU()
		return pid, s.scheduler.Wait(ctx)
	})
}

// DiskReadRequest blocks the running process on device reading fileName
func (s *Service) DiskReadRequest(ctx context.Context, device int, fileName string) {
	_, _ = s.run(ctx, scheduler.OpRead, map[string]string{
		"device": strconv.Itoa(device),
		"file":   fileName,
	}, func(ctx context.Context) (model.PID, error) {
		request, err := s.scheduler.DiskReadRequest(ctx, device, fileName)
		return request.PID, err
	})
}

// DiskJobCompleted completes the oldest request of device
func (s *Service) DiskJobCompleted(ctx context.Context, device int) {
	_, _ = s.run(ctx, scheduler.OpComplete, map[string]string{
		"device": strconv.Itoa(device),
	}, func(ctx context.Context) (model.PID, error) {
		request, err := s.scheduler.DiskJobCompleted(ctx, device)
		return request.PID, err
	})
}

// Dispatch gives an idle CPU to the head of the ready queue and returns the
// new CPU holder, model.NoPID when nothing was dispatched.
func (s *Service) Dispatch(ctx context.Context) model.PID {
	pid, _ := s.run(ctx, scheduler.OpDispatch, nil, func(ctx context.Context) (model.PID, error) {
		return s.scheduler.Dispatch(ctx)
	})
	return pid
}

// CPU returns the CPU holder, model.NoPID when idle
func (s *Service) CPU() model.PID {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.scheduler.CPU()
}

// ReadyQueue returns the ready queue, head first
func (s *Service) ReadyQueue() []model.PID {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.scheduler.ReadyQueue()
}

// Memory returns the memory regions in allocation order
func (s *Service) Memory() []model.Region {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.scheduler.Memory()
}

// Disk returns the request device is serving, an empty request when idle
func (s *Service) Disk(device int) model.ReadRequest {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.scheduler.Disk(device)
}

// DiskQueue returns the pending requests of device, oldest first
func (s *Service) DiskQueue(device int) []model.ReadRequest {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.scheduler.DiskQueue(device)
}

// Process returns a copy of the pid record
func (s *Service) Process(ctx context.Context, pid model.PID) (*model.Process, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.scheduler.Process(ctx, pid)
}

// Processes returns copies of all records in creation order
func (s *Service) Processes(ctx context.Context, parameters ...*dao.Parameter) []*model.Process {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.scheduler.Processes(ctx, parameters...)
}

// Events returns the transition journal, oldest first
func (s *Service) Events() []event.Event[model.Process] {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.scheduler.Events()
}

// State returns a consistent snapshot of the whole simulator
func (s *Service) State(ctx context.Context) *State {
	s.mux.Lock()
	defer s.mux.Unlock()
	ret := &State{
		CPU:       s.scheduler.CPU(),
		Ready:     s.scheduler.ReadyQueue(),
		Memory:    s.scheduler.Memory(),
		Free:      Size(s.scheduler.FreeMemory()),
		Disks:     map[int][]model.ReadRequest{},
		Processes: s.scheduler.Processes(ctx),
	}
	for _, device := range s.scheduler.Devices() {
		if pending := s.scheduler.DiskQueue(device); len(pending) > 0 {
			ret.Disks[device] = pending
		}
	}
	return ret
}

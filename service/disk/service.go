package disk

import (
	"sort"

	"github.com/viant/simos/internal/clock"
	"github.com/viant/simos/internal/idgen"
	"github.com/viant/simos/model"
	"github.com/viant/simos/service/messaging/memory"
)

// Service owns one FIFO of pending read requests per device.
// Unknown devices behave as empty queues; the first Enqueue creates them.
type Service struct {
	queues map[int]*memory.Queue[model.ReadRequest]
}

// New creates a bank with queues for devices 0..disks-1
func New(disks int) *Service {
	ret := &Service{queues: make(map[int]*memory.Queue[model.ReadRequest])}
	for i := 0; i < disks; i++ {
		ret.queueOf(i)
	}
	return ret
}

func (s *Service) queueOf(device int) *memory.Queue[model.ReadRequest] {
	q, ok := s.queues[device]
	if !ok {
		q = memory.NewQueue[model.ReadRequest](memory.DefaultConfig())
		s.queues[device] = q
	}
	return q
}

// Enqueue appends a request to the device queue and returns the stored copy
func (s *Service) Enqueue(device int, request model.ReadRequest) model.ReadRequest {
	request.Device = device
	if request.ID == "" {
		request.ID = idgen.New()
	}
	if request.EnqueuedAt.IsZero() {
		request.EnqueuedAt = clock.Now()
	}
	_ = s.queueOf(device).Publish(&request) // unbounded queue never rejects
	return request
}

// DequeueFront removes and returns the head request
func (s *Service) DequeueFront(device int) (model.ReadRequest, bool) {
	q, ok := s.queues[device]
	if !ok {
		return model.ReadRequest{}, false
	}
	msg, ok := q.Consume()
	if !ok {
		return model.ReadRequest{}, false
	}
	return *msg.T(), true
}

// PeekFront returns the head request without removing it
func (s *Service) PeekFront(device int) (model.ReadRequest, bool) {
	q, ok := s.queues[device]
	if !ok {
		return model.ReadRequest{}, false
	}
	msg, ok := q.Peek()
	if !ok {
		return model.ReadRequest{}, false
	}
	return *msg.T(), true
}

// Snapshot returns the device's pending requests in FIFO order
func (s *Service) Snapshot(device int) []model.ReadRequest {
	q, ok := s.queues[device]
	if !ok {
		return []model.ReadRequest{}
	}
	return q.Snapshot()
}

// Pending returns the number of requests queued on device
func (s *Service) Pending(device int) int {
	if q, ok := s.queues[device]; ok {
		return q.Size()
	}
	return 0
}

// Devices returns known device ids in ascending order
func (s *Service) Devices() []int {
	ret := make([]int, 0, len(s.queues))
	for device := range s.queues {
		ret = append(ret, device)
	}
	sort.Ints(ret)
	return ret
}

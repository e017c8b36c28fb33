package scheduler

import (
	"context"
	"fmt"

	"github.com/viant/simos/model"
	"github.com/viant/simos/service/event"
)

// Operation names used in events and logs
const (
	OpCreate   = "create"
	OpFork     = "fork"
	OpExit     = "exit"
	OpWait     = "wait"
	OpRead     = "diskReadRequest"
	OpComplete = "diskJobCompleted"
	OpDispatch = "dispatch"
)

// Create allocates size bytes for a new top-level process. The process runs
// right away when the CPU is idle, otherwise it joins the ready queue tail.
func (s *Service) Create(ctx context.Context, size uint64, priority int) (model.PID, error) {
	return s.create(ctx, OpCreate, size, priority, model.NoPID)
}

func (s *Service) create(ctx context.Context, op string, size uint64, priority int, parent model.PID) (model.PID, error) {
	pid := s.nextPID
	if !s.ledger.Allocate(size, pid) {
		return model.NoPID, s.reject(ctx, op, fmt.Errorf("%w: requested %d, free %d", ErrOutOfMemory, size, s.ledger.Free()))
	}
	if _, err := s.processes.Create(ctx, pid, priority, size, parent); err != nil {
		s.ledger.Release(pid)
		return model.NoPID, err
	}
	s.nextPID++
	s.publish(ctx, op, event.TypeCreated, pid, nil)
	s.schedule(ctx, op, pid)
	return pid, nil
}

// Fork creates a child of the running process with the same size and
// priority. The child never preempts its parent.
func (s *Service) Fork(ctx context.Context) (model.PID, error) {
	parent, err := s.runner(ctx)
	if err != nil {
		return model.NoPID, s.reject(ctx, OpFork, err)
	}
	return s.create(ctx, OpFork, parent.Size, parent.Priority, parent.PID)
}

// Exit terminates the running process and every live descendant. Only the
// exiting process's parent is considered for resumption: a waiting parent
// takes the CPU, any other parent joins the ready queue.
func (s *Service) Exit(ctx context.Context) error {
	exiting, err := s.runner(ctx)
	if err != nil {
		return s.reject(ctx, OpExit, err)
	}
	s.terminate(ctx, exiting.PID, event.TypeExited)

	pending := append([]model.PID(nil), exiting.Children...)
	for len(pending) > 0 {
		pid := pending[0]
		pending = pending[1:]
		child, ok := s.processes.Lookup(ctx, pid)
		if !ok || child.Zombie {
			continue
		}
		s.terminate(ctx, pid, event.TypeCascaded)
		pending = append(pending, child.Children...)
	}

	s.cpu = model.NoPID
	parent, ok := s.processes.Lookup(ctx, exiting.Parent)
	if !exiting.HasParent() || !ok || parent.Zombie {
		return nil
	}
	if parent.Waiting {
		s.processes.MarkWaiting(ctx, parent.PID, false)
		s.removeReady(parent.PID)
		s.cpu = parent.PID
		s.publish(ctx, OpExit, event.TypeResumed, parent.PID, nil)
		return nil
	}
	s.enqueueReady(parent.PID)
	s.publish(ctx, OpExit, event.TypeReady, parent.PID, nil)
	return nil
}

// terminate zombifies pid, releases its memory and takes it off the ready queue
func (s *Service) terminate(ctx context.Context, pid model.PID, eventType string) {
	s.processes.MarkZombie(ctx, pid)
	released := s.ledger.Release(pid)
	s.removeReady(pid)
	s.publish(ctx, OpExit, eventType, pid, nil)
	s.logger.Printf("exit: pid %v released %d bytes", pid, released)
}

// Wait gives up the CPU and parks the caller at the ready queue tail. Without an
// exited child the caller is also marked waiting, and a child's Exit resumes it.
func (s *Service) Wait(ctx context.Context) error {
	waiting, err := s.runner(ctx)
	if err != nil {
		return s.reject(ctx, OpWait, err)
	}
	s.cpu = model.NoPID
	if s.hasZombieChild(ctx, waiting) {
		s.processes.MarkWaiting(ctx, waiting.PID, false)
		s.enqueueReady(waiting.PID)
		s.publish(ctx, OpWait, event.TypeReady, waiting.PID, nil)
		return nil
	}
	s.processes.MarkWaiting(ctx, waiting.PID, true)
	s.enqueueReady(waiting.PID)
	s.publish(ctx, OpWait, event.TypeWaiting, waiting.PID, nil)
	return nil
}

func (s *Service) hasZombieChild(ctx context.Context, parent *model.Process) bool {
	for _, pid := range parent.Children {
		if child, ok := s.processes.Lookup(ctx, pid); ok && child.Zombie {
			return true
		}
	}
	return false
}

// DiskReadRequest blocks the running process on device until the matching
// DiskJobCompleted.
func (s *Service) DiskReadRequest(ctx context.Context, device int, fileName string) (model.ReadRequest, error) {
	requester, err := s.runner(ctx)
	if err != nil {
		return model.ReadRequest{}, s.reject(ctx, OpRead, err)
	}
	request := s.disks.Enqueue(device, model.ReadRequest{PID: requester.PID, FileName: fileName})
	s.cpu = model.NoPID
	s.publish(ctx, OpRead, event.TypeBlocked, requester.PID, func(c *event.Context) {
		c.Device = &device
		c.FileName = fileName
	})
	return request, nil
}

// DiskJobCompleted finishes the head request of device. The requester runs
// when the CPU is idle, otherwise it joins the ready queue. Requests of
// processes that exited meanwhile are discarded.
func (s *Service) DiskJobCompleted(ctx context.Context, device int) (model.ReadRequest, error) {
	request, ok := s.disks.DequeueFront(device)
	if !ok {
		return model.ReadRequest{}, s.reject(ctx, OpComplete, fmt.Errorf("%w: device %d", ErrEmptyQueue, device))
	}
	if p, ok := s.processes.Lookup(ctx, request.PID); !ok || p.Zombie {
		s.publish(ctx, OpComplete, event.TypeDiscarded, request.PID, deviceRef(device))
		return request, nil
	}
	s.publish(ctx, OpComplete, event.TypeUnblocked, request.PID, deviceRef(device))
	s.schedule(ctx, OpComplete, request.PID)
	return request, nil
}

// Dispatch hands an idle CPU to the head of the ready queue.
func (s *Service) Dispatch(ctx context.Context) (model.PID, error) {
	if !s.idle() {
		return model.NoPID, s.reject(ctx, OpDispatch, ErrCPUBusy)
	}
	msg, ok := s.ready.Consume()
	if !ok {
		return model.NoPID, s.reject(ctx, OpDispatch, ErrReadyEmpty)
	}
	s.cpu = *msg.T()
	s.publish(ctx, OpDispatch, event.TypeRunning, s.cpu, nil)
	return s.cpu, nil
}

package scheduler

import "errors"

// Rejection reasons. A rejected operation leaves all state unchanged.
var (
	ErrOutOfMemory = errors.New("scheduler: out of memory")
	ErrNoProcess   = errors.New("scheduler: no running process")
	ErrOSProcess   = errors.New("scheduler: not permitted for the OS process")
	ErrZombie      = errors.New("scheduler: running process is a zombie")
	ErrEmptyQueue  = errors.New("scheduler: no pending disk request")
	ErrCPUBusy     = errors.New("scheduler: cpu is busy")
	ErrReadyEmpty  = errors.New("scheduler: ready queue is empty")
)

// IsRejection returns true when err is one of the rejection reasons
func IsRejection(err error) bool {
	for _, candidate := range []error{ErrOutOfMemory, ErrNoProcess, ErrOSProcess, ErrZombie, ErrEmptyQueue, ErrCPUBusy, ErrReadyEmpty} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

package model

import "strconv"

// PID identifies a simulated process. PIDs are assigned monotonically and are
// never reused.
type PID int

const (
	// NoPID is the "none" sentinel: no parent, no CPU holder, empty request.
	NoPID PID = 0
	// OSPID is the reserved identity owning the OS memory region.
	OSPID PID = 1
	// FirstPID is the first PID handed out to a simulated process.
	FirstPID PID = 2
)

// IsOS returns true for the reserved OS identity
func (p PID) IsOS() bool {
	return p == OSPID
}

// IsNone returns true for the NoPID sentinel
func (p PID) IsNone() bool {
	return p == NoPID
}

func (p PID) String() string {
	if p == NoPID {
		return "none"
	}
	return strconv.Itoa(int(p))
}

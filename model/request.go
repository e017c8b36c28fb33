package model

import "time"

// ReadRequest is a pending disk read issued by a process
type ReadRequest struct {
	ID         string    `json:"id,omitempty" yaml:"id,omitempty"`
	Device     int       `json:"device" yaml:"device"`
	PID        PID       `json:"pid" yaml:"pid"`
	FileName   string    `json:"fileName" yaml:"fileName"`
	EnqueuedAt time.Time `json:"enqueuedAt" yaml:"-"`
}

// IsEmpty returns true for the "no pending request" sentinel
func (r ReadRequest) IsEmpty() bool {
	return r.PID == NoPID && r.FileName == ""
}

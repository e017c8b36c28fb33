package model

import "time"

// Process status constants, derived from the record flags.
const (
	StatusActive  = "active"
	StatusWaiting = "waiting"
	StatusZombie  = "zombie"
)

// Process represents a process table record
type Process struct {
	PID       PID       `json:"pid" yaml:"pid"`
	Parent    PID       `json:"parent,omitempty" yaml:"parent,omitempty"`
	Priority  int       `json:"priority" yaml:"priority"`
	Size      uint64    `json:"size" yaml:"size"`
	Zombie    bool      `json:"zombie" yaml:"zombie"`
	Waiting   bool      `json:"waiting" yaml:"waiting"`
	Children  []PID     `json:"children,omitempty" yaml:"children,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
}

// Status returns the process status derived from its flags
func (p *Process) Status() string {
	switch {
	case p.Zombie:
		return StatusZombie
	case p.Waiting:
		return StatusWaiting
	default:
		return StatusActive
	}
}

// HasParent returns true when the process was forked
func (p *Process) HasParent() bool {
	return p.Parent != NoPID
}

// Clone returns a deep copy, so callers can't mutate the table through it.
func (p *Process) Clone() *Process {
	if p == nil {
		return nil
	}
	ret := *p
	if p.Children != nil {
		ret.Children = append([]PID(nil), p.Children...)
	}
	return &ret
}

package model

import "fmt"

// Region is a contiguous byte range owned by a single process.
// Address is informational only: the ledger never reuses freed offsets.
type Region struct {
	Address uint64 `json:"address" yaml:"address"`
	Size    uint64 `json:"size" yaml:"size"`
	PID     PID    `json:"pid" yaml:"pid"`
}

// End returns the first address past the region
func (r Region) End() uint64 {
	return r.Address + r.Size
}

func (r Region) String() string {
	return fmt.Sprintf("pid %v [%d, %d)", r.PID, r.Address, r.End())
}

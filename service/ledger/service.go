package ledger

import (
	"github.com/viant/simos/model"
)

// Config represents ledger configuration
type Config struct {
	// ReclaimOnRelease returns released bytes to the free-capacity counter.
	// Off by default: the counter only ever shrinks.
	ReclaimOnRelease bool `json:"reclaimOnRelease" yaml:"reclaimOnRelease"`
}

// DefaultConfig returns the default ledger configuration
func DefaultConfig() Config {
	return Config{}
}

// Service owns the allocated memory regions
type Service struct {
	config  Config
	total   uint64
	osSize  uint64
	free    uint64
	regions []model.Region
}

// New creates a ledger of total bytes whose first osSize bytes belong to the OS
func New(total, osSize uint64, config Config) *Service {
	if osSize > total {
		osSize = total
	}
	return &Service{
		config:  config,
		total:   total,
		osSize:  osSize,
		free:    total - osSize,
		regions: []model.Region{{Address: 0, Size: osSize, PID: model.OSPID}},
	}
}

// Allocate appends a region of size bytes owned by owner. It fails without
// side effects when size exceeds the free capacity.
func (s *Service) Allocate(size uint64, owner model.PID) bool {
	if size > s.free {
		return false
	}
	s.regions = append(s.regions, model.Region{Address: s.osSize, Size: size, PID: owner})
	s.free -= size
	return true
}

// Release removes every region owned by owner and returns the number of bytes
// released. The OS region is never released.
func (s *Service) Release(owner model.PID) uint64 {
	if owner.IsOS() {
		return 0
	}
	var released uint64
	kept := s.regions[:0]
	for _, region := range s.regions {
		if region.PID == owner {
			released += region.Size
			continue
		}
		kept = append(kept, region)
	}
	s.regions = kept
	if s.config.ReclaimOnRelease {
		s.free += released
	}
	return released
}

// Snapshot returns the regions in allocation order
func (s *Service) Snapshot() []model.Region {
	return append([]model.Region(nil), s.regions...)
}

// Owned returns the number of bytes currently held by owner
func (s *Service) Owned(owner model.PID) uint64 {
	var ret uint64
	for _, region := range s.regions {
		if region.PID == owner {
			ret += region.Size
		}
	}
	return ret
}

// Free returns the free-capacity counter
func (s *Service) Free() uint64 {
	return s.free
}

// Used returns the sum of all currently allocated region sizes, OS included
func (s *Service) Used() uint64 {
	var ret uint64
	for _, region := range s.regions {
		ret += region.Size
	}
	return ret
}

// Total returns the configured RAM size
func (s *Service) Total() uint64 {
	return s.total
}

// OSSize returns the size of the OS region
func (s *Service) OSSize() uint64 {
	return s.osSize
}

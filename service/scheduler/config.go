package scheduler

import (
	"github.com/viant/simos/service/ledger"
)

// Config represents scheduler configuration
type Config struct {
	// Disks is the number of device queues created upfront
	Disks int
	// RAM is the total simulated memory in bytes
	RAM uint64
	// OSSize is the size of the OS region at address 0
	OSSize uint64
	// Memory configures the ledger
	Memory ledger.Config
	// JournalSize bounds the event journal
	JournalSize int
}

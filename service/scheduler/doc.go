// Package scheduler is the single-CPU scheduling core of the simulator.
//
// It owns the CPU holder slot and the ready queue and drives the process
// table, the memory ledger and the disk queue bank through the process
// lifecycle:
//
//	running -> ready             (another process took the CPU first)
//	running -> blocked-on-disk   (DiskReadRequest)
//	running -> waiting-for-child (Wait with no exited child)
//	running -> zombie            (Exit, cascading to descendants)
//
// Every operation runs to completion synchronously; the Service is not safe
// for concurrent use, callers serialize access.
package scheduler

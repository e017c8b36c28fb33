// Package ledger tracks simulated memory as an append-only list of regions.
//
// The ledger never compacts or reuses freed offsets: every allocation is
// reported right after the OS block and only the free-capacity counter
// decides whether an allocation fits.
package ledger

// Package model contains the in-memory representation of the simulated
// kernel state: process records, memory regions and disk read requests.
//
// The types are plain values so that snapshots returned by the scheduler can
// be handed to callers without exposing internal bookkeeping.  Parent/child
// links are stored as PIDs and resolved through the process table.
package model

// Package simos provides a single-CPU kernel bookkeeping simulator.
//
// The simulator models process creation, fork, exit and wait, a FIFO ready
// queue, an append-only memory ledger and per-disk read request queues.
// Nothing runs in the background: every call mutates the state synchronously
// and returns.
//
//	srv, _ := simos.New(simos.WithMemory(1024, 100))
//	srv.NewProcess(ctx, 500, 1)        // pid 2 takes the CPU
//	srv.Fork(ctx)                       // pid 3 joins the ready queue
//	srv.DiskReadRequest(ctx, 0, "a")    // pid 2 blocks on disk 0
//	srv.Dispatch(ctx)                   // pid 3 runs
//
// Operations that the kernel would refuse (no memory, the OS forking, an
// empty disk queue, ...) are rejected: they return false or do nothing and
// leave the state untouched.
package simos

// Package allocator provides port allocation for portman projects.
//
// An Allocator owns the set of ports that are still unassigned during one
// command invocation. The pool is built from the configured port ranges minus
// the reserved list, and every port handed out or discarded is removed from it.
//
//	alloc := allocator.New(cfg.ValidPorts(), allocator.RandomChooser{})
//	port, err := alloc.Allocate(3001) // keeps 3001 if it is still free
//
// # Choosing Ports
//
// When the desired port is unavailable (or zero), a Chooser picks a port from
// the remaining pool. RandomChooser draws uniformly and is used in production;
// MinChooser picks the lowest port and keeps tests deterministic.
//
// # Exhaustion
//
// Allocate returns ErrExhausted once the pool is empty.
package allocator

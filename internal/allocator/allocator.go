package allocator

import (
	"errors"
	"math/rand/v2"
	"slices"
)

// ErrExhausted is returned when no ports remain in the pool.
var ErrExhausted = errors.New("no ports left in the pool")

// Chooser selects one port out of a non-empty, ascending list of candidates.
type Chooser interface {
	Choose(available []uint16) uint16
}

// RandomChooser draws uniformly from the available ports.
type RandomChooser struct{}

// Choose returns a uniformly random element of available.
func (RandomChooser) Choose(available []uint16) uint16 {
	return available[rand.IntN(len(available))]
}

// MinChooser always picks the lowest available port.
type MinChooser struct{}

// Choose returns the lowest available port.
func (MinChooser) Choose(available []uint16) uint16 {
	return available[0]
}

// Allocator hands out ports from a fixed pool.
type Allocator struct {
	available map[uint16]struct{}
	chooser   Chooser
}

// New creates an allocator over the given ports. A nil chooser defaults to RandomChooser.
func New(ports []uint16, chooser Chooser) *Allocator {
	if chooser == nil {
		chooser = RandomChooser{}
	}
	available := make(map[uint16]struct{}, len(ports))
	for _, p := range ports {
		available[p] = struct{}{}
	}
	return &Allocator{
		available: available,
		chooser:   chooser,
	}
}

// Allocate removes and returns a port from the pool. If desired is non-zero
// and still available it is returned; otherwise the chooser picks one.
func (a *Allocator) Allocate(desired uint16) (uint16, error) {
	if desired != 0 {
		if _, ok := a.available[desired]; ok {
			delete(a.available, desired)
			return desired, nil
		}
	}

	if len(a.available) == 0 {
		return 0, ErrExhausted
	}

	port := a.chooser.Choose(a.Available())
	delete(a.available, port)
	return port, nil
}

// Discard removes a port from the pool without returning it.
func (a *Allocator) Discard(port uint16) {
	delete(a.available, port)
}

// Contains reports whether a port is still in the pool.
func (a *Allocator) Contains(port uint16) bool {
	_, ok := a.available[port]
	return ok
}

// Available returns the remaining ports in ascending order.
func (a *Allocator) Available() []uint16 {
	ports := make([]uint16, 0, len(a.available))
	for p := range a.available {
		ports = append(ports, p)
	}
	slices.Sort(ports)
	return ports
}

// Len returns the number of ports left in the pool.
func (a *Allocator) Len() int {
	return len(a.available)
}

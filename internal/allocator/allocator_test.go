package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portRange(from, to uint16) []uint16 {
	var ports []uint16
	for p := from; p <= to; p++ {
		ports = append(ports, p)
	}
	return ports
}

func TestAllocate_RandomInRange(t *testing.T) {
	alloc := New(portRange(3000, 3999), RandomChooser{})

	port, err := alloc.Allocate(0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, port, uint16(3000))
	assert.LessOrEqual(t, port, uint16(3999))
	assert.False(t, alloc.Contains(port))
}

func TestAllocate_Exhaustion(t *testing.T) {
	alloc := New(portRange(3000, 3001), MinChooser{})

	_, err := alloc.Allocate(0)
	require.NoError(t, err)
	_, err = alloc.Allocate(0)
	require.NoError(t, err)

	_, err = alloc.Allocate(0)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestAllocate_NPlusOne(t *testing.T) {
	const n = 25
	alloc := New(portRange(5000, 5000+n-1), RandomChooser{})

	seen := make(map[uint16]bool)
	for i := 0; i < n; i++ {
		port, err := alloc.Allocate(0)
		require.NoError(t, err)
		assert.False(t, seen[port], "port %d allocated twice", port)
		seen[port] = true
	}

	_, err := alloc.Allocate(0)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestDiscard(t *testing.T) {
	alloc := New(portRange(3000, 3001), MinChooser{})
	alloc.Discard(3000)

	port, err := alloc.Allocate(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(3001), port)

	_, err = alloc.Allocate(0)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestDiscard_UnknownPort(t *testing.T) {
	alloc := New(portRange(3000, 3001), MinChooser{})
	alloc.Discard(8080)

	assert.Equal(t, 2, alloc.Len())
}

func TestAllocate_DesiredPort(t *testing.T) {
	alloc := New(portRange(3000, 3002), MinChooser{})

	port, err := alloc.Allocate(3001)
	require.NoError(t, err)
	assert.Equal(t, uint16(3001), port)

	port, err = alloc.Allocate(4000)
	require.NoError(t, err)
	assert.Equal(t, uint16(3000), port, "out-of-pool desired port falls back to the chooser")

	port, err = alloc.Allocate(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(3002), port)

	_, err = alloc.Allocate(0)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestAllocate_DesiredPortAlreadyTaken(t *testing.T) {
	alloc := New(portRange(3000, 3002), MinChooser{})

	_, err := alloc.Allocate(3002)
	require.NoError(t, err)

	port, err := alloc.Allocate(3002)
	require.NoError(t, err)
	assert.Equal(t, uint16(3000), port)
}

func TestAvailable_Sorted(t *testing.T) {
	alloc := New([]uint16{3005, 3001, 3003}, nil)

	assert.Equal(t, []uint16{3001, 3003, 3005}, alloc.Available())
}

func TestRandomChooser_Uniformish(t *testing.T) {
	ports := []uint16{1, 2, 3, 4}
	counts := make(map[uint16]int)
	for i := 0; i < 4000; i++ {
		counts[RandomChooser{}.Choose(ports)]++
	}

	for _, p := range ports {
		assert.Greater(t, counts[p], 600, "port %d drawn too rarely", p)
	}
}

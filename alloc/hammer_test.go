package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/rtio/internal/testing/hammer"
)

func TestCounting_Hammer(t *testing.T) {
	P, N := 8, 1000
	if testing.Short() {
		P, N = 4, 100
	}

	c := NewCounting(Heap{})
	hammer.Run(t, P, N, func(p, n int) {
		b := c.Alloc(p + 1)
		b = c.Resize(b, n+1)
		c.Free(b)
	})
	if t.Failed() {
		return
	}

	total := uint64(P * N)
	require.Equal(t, Stats{Allocs: total, Resizes: total, Frees: total}, c.Stats())
}

func TestCurrent_Hammer(t *testing.T) {
	P, N := 8, 100
	if testing.Short() {
		P, N = 4, 10
	}

	first := Current()
	hammer.Run(t, P, N, func(int, int) {
		require.Equal(t, first, Current())
	})
}

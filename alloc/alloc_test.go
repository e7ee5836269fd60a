package alloc

import (
	"bytes"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrent_DefaultsToHeap(t *testing.T) {
	require.Equal(t, Heap{}, Current())

	b := Alloc(8)
	require.Equal(t, 8, len(b))
	b = Resize(b, 16)
	require.Equal(t, 16, len(b))
	Free(b)
}

func TestInstall(t *testing.T) {
	require.PanicsWithValue(t, "alloc: Install with nil Allocator", func() { Install(nil) })

	_ = Current() // latches the default
	require.PanicsWithValue(t, "alloc: Install(*alloc.Counting) after the allocator was already in use", func() {
		Install(NewCounting(Heap{}))
	})
}

func TestHeap(t *testing.T) {
	var h Heap

	b := h.AllocZeroed(4)
	require.Equal(t, []byte{0, 0, 0, 0}, b)

	copy(b, "abcd")
	grown := h.Resize(b, 8)
	require.Equal(t, []byte("abcd\x00\x00\x00\x00"), grown)

	shrunk := h.Resize(grown, 2)
	require.Equal(t, []byte("ab"), shrunk)

	require.Nil(t, h.Alloc(-1))
	require.Nil(t, h.Resize(shrunk, -1))
	require.Equal(t, []byte("ab"), shrunk, "failed resize leaves the region alone")

	require.NotNil(t, h.Alloc(0))
}

func TestHeap_Unsatisfiable(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("every int size is addressable on 32-bit hosts")
	}
	var h Heap

	require.Nil(t, h.Alloc(math.MaxInt))
	require.Nil(t, h.AllocZeroed(math.MaxInt))

	b := h.Alloc(4)
	copy(b, "abcd")
	require.Nil(t, h.Resize(b, math.MaxInt))
	require.Equal(t, []byte("abcd"), b, "failed resize leaves the region alone")

	c := NewCounting(h)
	require.Nil(t, c.Alloc(math.MaxInt))
	require.Equal(t, Stats{Allocs: 1, Failures: 1}, c.Stats())
}

func TestPages(t *testing.T) {
	var p Pages

	b := p.Alloc(100)
	if b == nil {
		t.Skip("host has no page mapping")
	}
	require.Equal(t, 100, len(b))
	require.Equal(t, make([]byte, 100), b, "host mappings are zero-filled")

	copy(b, "hello")
	grown := p.Resize(b, 10000)
	require.NotNil(t, grown)
	require.Equal(t, 10000, len(grown))
	require.True(t, bytes.HasPrefix(grown, []byte("hello")))

	shrunk := p.Resize(grown, 3)
	require.Equal(t, []byte("hel"), shrunk)
	p.Free(shrunk)

	require.Nil(t, p.Alloc(0))
}

func TestCounting(t *testing.T) {
	c := NewCounting(Heap{})

	a := c.Alloc(10)
	z := c.AllocZeroed(5)
	require.Equal(t, Stats{Allocs: 2, LiveBytes: 15}, c.Stats())

	a = c.Resize(a, 20)
	require.Equal(t, Stats{Allocs: 2, Resizes: 1, LiveBytes: 25}, c.Stats())

	c.Free(a)
	c.Free(z)
	require.Equal(t, Stats{Allocs: 2, Resizes: 1, Frees: 2}, c.Stats())

	require.Nil(t, c.Alloc(-1))
	require.Nil(t, c.Resize(nil, -1))
	require.Equal(t, Stats{Allocs: 3, Resizes: 2, Frees: 2, Failures: 2}, c.Stats())
}

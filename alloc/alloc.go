// Package alloc is the single indirection every rtio component uses to obtain
// memory it manages explicitly.
//
// One Allocator serves the whole process. It is chosen with Install before
// the first allocation and is never swapped afterwards, so regions returned by
// Alloc, AllocZeroed and Resize can always be handed back to Resize and Free.
//
// A nil slice is the failure indicator for every operation that returns one.
package alloc

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Allocator is a source of explicitly released memory regions.
//
// All four methods must be served by one underlying allocator so regions are
// interchangeable between them.
type Allocator interface {
	// Alloc returns a region of n bytes whose contents are unspecified, or
	// nil when the request cannot be satisfied.
	Alloc(n int) []byte

	// AllocZeroed is like Alloc, except all bytes are zero.
	AllocZeroed(n int) []byte

	// Resize returns a region of n bytes that starts with the overlapping
	// prefix of b, releasing b. On failure it returns nil and b remains
	// valid.
	Resize(b []byte, n int) []byte

	// Free releases a region returned by this allocator. Releasing a region
	// from elsewhere, or releasing one twice, is undefined.
	Free(b []byte)
}

var (
	mu        sync.Mutex
	installed Allocator
	// latched is set once installed can no longer change.
	latched atomic.Bool
)

// Install makes a the process-wide allocator. It panics when called more than
// once, or after any allocation has been served by the default.
func Install(a Allocator) {
	if a == nil {
		panic("alloc: Install with nil Allocator")
	}
	mu.Lock()
	defer mu.Unlock()
	if latched.Load() {
		panic(fmt.Sprintf("alloc: Install(%T) after the allocator was already in use", a))
	}
	installed = a
	latched.Store(true)
}

// Current returns the process-wide allocator, latching Heap when nothing was
// installed.
func Current() Allocator {
	if latched.Load() {
		return installed
	}
	mu.Lock()
	defer mu.Unlock()
	if !latched.Load() {
		installed = Heap{}
		latched.Store(true)
	}
	return installed
}

// Alloc calls Allocator.Alloc on the process-wide allocator.
func Alloc(n int) []byte {
	return Current().Alloc(n)
}

// AllocZeroed calls Allocator.AllocZeroed on the process-wide allocator.
func AllocZeroed(n int) []byte {
	return Current().AllocZeroed(n)
}

// Resize calls Allocator.Resize on the process-wide allocator.
func Resize(b []byte, n int) []byte {
	return Current().Resize(b, n)
}

// Free calls Allocator.Free on the process-wide allocator.
func Free(b []byte) {
	Current().Free(b)
}

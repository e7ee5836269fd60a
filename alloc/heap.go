package alloc

import (
	"log/slog"

	"github.com/tetratelabs/rtio/internal/logging"
)

// Heap allocates from the Go runtime heap, which is the native allocator of
// a Go process. Free hands the region back to the garbage collector.
//
// A size the runtime can never satisfy fails with nil. Exhausting memory
// below that size is fatal to a Go process and can't be reported.
type Heap struct{}

func (Heap) Alloc(n int) (b []byte) {
	if n < 0 {
		logging.Logger(logging.LogScopeMemory).Debug("alloc failed", slog.Int("size", n))
		return nil
	}
	// make panics with "len out of range" above the runtime's address limit.
	defer func() {
		if recovered := recover(); recovered != nil {
			logging.Logger(logging.LogScopeMemory).Debug("alloc failed",
				slog.Int("size", n), slog.Any("cause", recovered))
			b = nil
		}
	}()
	return make([]byte, n)
}

// AllocZeroed is the same as Alloc: the Go heap never returns dirty memory.
func (h Heap) AllocZeroed(n int) []byte {
	return h.Alloc(n)
}

func (h Heap) Resize(b []byte, n int) []byte {
	if n < 0 {
		return nil
	}
	if n <= cap(b) {
		return b[:n]
	}
	grown := h.Alloc(n)
	if grown == nil {
		return nil
	}
	copy(grown, b)
	return grown
}

func (Heap) Free([]byte) {}

package alloc

import (
	"log/slog"

	"github.com/tetratelabs/rtio/internal/logging"
	"github.com/tetratelabs/rtio/internal/platform"
)

// Pages allocates anonymous page mappings straight from the host kernel,
// bypassing the Go heap. Every region costs at least one page, so this suits
// few, large, long-lived buffers.
//
// Mappings are zero-filled by the host and a zero-size mapping is refused by
// it, so Alloc(0) fails.
type Pages struct{}

func (Pages) Alloc(n int) []byte {
	b, errno := platform.MapPages(n)
	if errno != 0 {
		logging.Logger(logging.LogScopeMemory).Debug("map pages failed",
			slog.Int("size", n), slog.Any("errno", errno))
		return nil
	}
	return b[:n]
}

func (p Pages) AllocZeroed(n int) []byte {
	return p.Alloc(n)
}

func (p Pages) Resize(b []byte, n int) []byte {
	grown := p.Alloc(n)
	if grown == nil {
		return nil
	}
	copy(grown, b)
	p.Free(b)
	return grown
}

func (Pages) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	if errno := platform.UnmapPages(b[:cap(b)]); errno != 0 {
		logging.Logger(logging.LogScopeMemory).Debug("unmap pages failed",
			slog.Int("size", cap(b)), slog.Any("errno", errno))
	}
}

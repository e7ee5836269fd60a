//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd || aix || solaris

package platform

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// MapPages returns size bytes of zero-filled, readable and writable memory
// owned by the host rather than the Go heap.
func MapPages(size int) ([]byte, syscall.Errno) {
	// Anonymous as this is not an actual file, but a memory,
	// Private as this is in-process memory region.
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, unwrapErrno(err)
	}
	return b, 0
}

// UnmapPages releases memory returned by MapPages. b must be the exact slice
// MapPages returned.
func UnmapPages(b []byte) syscall.Errno {
	return unwrapErrno(unix.Munmap(b))
}

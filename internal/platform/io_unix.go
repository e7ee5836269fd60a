//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd || aix || solaris

package platform

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// Supported is true when this host has an implementation of the primitives.
const Supported = true

// Origins accepted by Seek.
const (
	SeekStart   = unix.SEEK_SET
	SeekCurrent = unix.SEEK_CUR
	SeekEnd     = unix.SEEK_END
)

// DefaultPerm is the mode used for files created by Open, before umask.
const DefaultPerm uint32 = 0o666

// Read exposes read(2). A zero-length buf short-circuits without a syscall.
func Read(fd int, buf []byte) (int, syscall.Errno) {
	if len(buf) == 0 {
		return 0, 0
	}
	n, err := unix.Read(fd, buf)
	if err != nil {
		return n, unwrapErrno(err)
	}
	return n, 0
}

// Write exposes write(2). The returned count may be less than len(buf).
func Write(fd int, buf []byte) (int, syscall.Errno) {
	if len(buf) == 0 {
		return 0, 0
	}
	n, err := unix.Write(fd, buf)
	if err != nil {
		return n, unwrapErrno(err)
	}
	return n, 0
}

// Seek exposes lseek(2), which is 64-bit on every supported host.
func Seek(fd int, offset int64, whence int) (int64, syscall.Errno) {
	pos, err := unix.Seek(fd, offset, whence)
	if err != nil {
		return -1, unwrapErrno(err)
	}
	return pos, 0
}

// Close exposes close(2).
func Close(fd int) syscall.Errno {
	return unwrapErrno(unix.Close(fd))
}

// Handle returns the OS handle behind a descriptor, which on unix is itself.
func Handle(fd int) uintptr {
	return uintptr(fd)
}

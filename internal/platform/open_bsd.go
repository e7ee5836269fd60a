//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package platform

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Open invokes open(path, flag, perm). path must point to a NUL-terminated
// byte sequence; flag is passed unmodified.
func Open(path *byte, flag int, perm uint32) (int, syscall.Errno) {
	fd, _, errno := unix.Syscall(unix.SYS_OPEN,
		uintptr(unsafe.Pointer(path)), uintptr(flag), uintptr(perm))
	if errno != 0 {
		return -1, errno
	}
	return int(fd), 0
}

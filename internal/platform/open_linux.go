package platform

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// atFDCWD is a variable so the negative constant can be converted to a
// syscall argument.
var atFDCWD = unix.AT_FDCWD

// Open invokes openat(AT_FDCWD, path, flag, perm). path must point to a
// NUL-terminated byte sequence.
//
// O_LARGEFILE is added like syscall.Open does, so 32-bit hosts can open files
// over 2GiB. It is zero where off_t is already 64-bit.
func Open(path *byte, flag int, perm uint32) (int, syscall.Errno) {
	fd, _, errno := unix.Syscall6(unix.SYS_OPENAT, uintptr(atFDCWD),
		uintptr(unsafe.Pointer(path)), uintptr(flag|unix.O_LARGEFILE), uintptr(perm), 0, 0)
	if errno != 0 {
		return -1, errno
	}
	return int(fd), 0
}

//go:build aix || solaris

package platform

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// Open is like the other unix variants, except these hosts have no raw
// syscall entry point in x/sys, so the path goes through unix.Open. The
// trailing NUL is not part of the string handed over.
func Open(path *byte, flag int, perm uint32) (int, syscall.Errno) {
	fd, err := unix.Open(unix.BytePtrToString(path), flag, perm)
	if err != nil {
		return -1, unwrapErrno(err)
	}
	return fd, 0
}

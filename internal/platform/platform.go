// Package platform is the host boundary: the few kernel and C runtime
// primitives the rest of rtio is built on, selected per GOOS at build time.
//
// Every function returns a syscall.Errno, which is zero on success. Callers
// above this package decide how much of that detail to surface.
package platform

import (
	"errors"
	"syscall"
)

// Descriptors of the standard streams, the same on every supported host.
const (
	FdStdin = iota
	FdStdout
	FdStderr
)

// unwrapErrno returns the syscall.Errno wrapped by err, or EIO when err is
// not nil but carries no errno.
func unwrapErrno(err error) syscall.Errno {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return syscall.EIO
}

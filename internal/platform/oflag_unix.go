//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd || aix || solaris

package platform

import "golang.org/x/sys/unix"

// Portable open flags, as the host encodes them.
const (
	O_RDONLY = unix.O_RDONLY
	O_WRONLY = unix.O_WRONLY
	O_RDWR   = unix.O_RDWR
	O_CREAT  = unix.O_CREAT
	O_EXCL   = unix.O_EXCL
	O_APPEND = unix.O_APPEND
	O_TRUNC  = unix.O_TRUNC
)

// Refinements every unix host defines.
const (
	O_CLOEXEC = unix.O_CLOEXEC
	O_SYNC    = unix.O_SYNC
)

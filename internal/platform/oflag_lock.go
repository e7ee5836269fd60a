//go:build darwin || freebsd || netbsd || openbsd

package platform

import "golang.org/x/sys/unix"

// Open-time advisory locks, a BSD extension.
const (
	O_SHLOCK = unix.O_SHLOCK
	O_EXLOCK = unix.O_EXLOCK
)

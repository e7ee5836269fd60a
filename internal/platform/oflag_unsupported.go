//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd || aix || solaris || windows)

package platform

import "os"

// Portable open flags. Without host primitives these only need to be
// distinct, so they reuse the os package encoding.
const (
	O_RDONLY = os.O_RDONLY
	O_WRONLY = os.O_WRONLY
	O_RDWR   = os.O_RDWR
	O_CREAT  = os.O_CREATE
	O_EXCL   = os.O_EXCL
	O_APPEND = os.O_APPEND
	O_TRUNC  = os.O_TRUNC
)

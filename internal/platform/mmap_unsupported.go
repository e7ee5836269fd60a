//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd || aix || solaris || windows)

package platform

import "syscall"

func MapPages(size int) ([]byte, syscall.Errno) {
	return nil, syscall.ENOSYS
}

func UnmapPages(b []byte) syscall.Errno {
	return syscall.ENOSYS
}

//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd || aix || solaris) && !(windows && (amd64 || arm64))

package platform

import "syscall"

// Supported is false: every primitive fails with ENOSYS.
const Supported = false

const (
	SeekStart   = 0
	SeekCurrent = 1
	SeekEnd     = 2
)

const DefaultPerm uint32 = 0o666

func Open(path *byte, flag int, perm uint32) (int, syscall.Errno) {
	return -1, syscall.ENOSYS
}

func Read(fd int, buf []byte) (int, syscall.Errno) {
	return 0, syscall.ENOSYS
}

func Write(fd int, buf []byte) (int, syscall.Errno) {
	return 0, syscall.ENOSYS
}

func Seek(fd int, offset int64, whence int) (int64, syscall.Errno) {
	return -1, syscall.ENOSYS
}

func Close(fd int) syscall.Errno {
	return syscall.ENOSYS
}

func Handle(fd int) uintptr {
	return uintptr(fd)
}

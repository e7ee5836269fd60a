//go:build windows && (amd64 || arm64)

package platform

import (
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Supported is true when this host has an implementation of the primitives.
const Supported = true

const (
	SeekStart   = 0
	SeekCurrent = 1
	SeekEnd     = 2
)

// DefaultPerm is _S_IREAD|_S_IWRITE.
const DefaultPerm uint32 = 0x0100 | 0x0080

var (
	msvcrt        = windows.NewLazySystemDLL("msvcrt.dll")
	procOpen      = msvcrt.NewProc("_open")
	procRead      = msvcrt.NewProc("_read")
	procWrite     = msvcrt.NewProc("_write")
	procLseeki64  = msvcrt.NewProc("_lseeki64")
	procClose     = msvcrt.NewProc("_close")
	procErrnoAddr = msvcrt.NewProc("_errno")
	procOsfHandle = msvcrt.NewProc("_get_osfhandle")
)

// Open invokes msvcrt _open. path must point to a NUL-terminated byte
// sequence; flag is passed unmodified.
func Open(path *byte, flag int, perm uint32) (int, syscall.Errno) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	r, _, _ := procOpen.Call(uintptr(unsafe.Pointer(path)), uintptr(flag), uintptr(perm))
	if fd := int32(r); fd < 0 {
		return -1, crtErrno()
	}
	return int(int32(r)), 0
}

func Read(fd int, buf []byte) (int, syscall.Errno) {
	if len(buf) == 0 {
		return 0, 0
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	r, _, _ := procRead.Call(uintptr(fd), uintptr(unsafe.Pointer(&buf[0])), uintptr(uint32(len(buf))))
	if n := int32(r); n < 0 {
		return 0, crtErrno()
	}
	return int(int32(r)), 0
}

func Write(fd int, buf []byte) (int, syscall.Errno) {
	if len(buf) == 0 {
		return 0, 0
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	r, _, _ := procWrite.Call(uintptr(fd), uintptr(unsafe.Pointer(&buf[0])), uintptr(uint32(len(buf))))
	if n := int32(r); n < 0 {
		return 0, crtErrno()
	}
	return int(int32(r)), 0
}

func Seek(fd int, offset int64, whence int) (int64, syscall.Errno) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	r, _, _ := procLseeki64.Call(uintptr(fd), uintptr(offset), uintptr(whence))
	if pos := int64(r); pos < 0 {
		return -1, crtErrno()
	}
	return int64(r), 0
}

func Close(fd int) syscall.Errno {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if r, _, _ := procClose.Call(uintptr(fd)); int32(r) != 0 {
		return crtErrno()
	}
	return 0
}

// crtErrno reads the calling thread's msvcrt errno. The caller must hold the
// OS thread locked since the failing call.
func crtErrno() syscall.Errno {
	p, _, _ := procErrnoAddr.Call()
	if p == 0 {
		return syscall.EINVAL
	}
	crt := *(*int32)(unsafe.Pointer(p))
	if errno, ok := crtErrnos[crt]; ok {
		return errno
	}
	return syscall.Errno(crt)
}

// crtErrnos maps <errno.h> values to the syscall package's names, which
// differ on windows.
var crtErrnos = map[int32]syscall.Errno{
	2:  syscall.ENOENT,
	9:  syscall.EBADF,
	12: syscall.ENOMEM,
	13: syscall.EACCES,
	17: syscall.EEXIST,
	22: syscall.EINVAL,
	24: syscall.EMFILE,
	28: syscall.ENOSPC,
	32: syscall.EPIPE,
}

// Handle returns the Win32 handle msvcrt associates with fd, or
// INVALID_HANDLE_VALUE.
func Handle(fd int) uintptr {
	h, _, _ := procOsfHandle.Call(uintptr(fd))
	return h
}

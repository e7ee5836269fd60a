package platform

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// MapPages returns size bytes of zero-filled, readable and writable memory
// committed by VirtualAlloc.
func MapPages(size int) ([]byte, syscall.Errno) {
	if size <= 0 {
		return nil, syscall.EINVAL
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, unwrapErrno(err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), 0
}

// UnmapPages releases memory returned by MapPages.
func UnmapPages(b []byte) syscall.Errno {
	if len(b) == 0 {
		return syscall.EINVAL
	}
	return unwrapErrno(windows.VirtualFree(uintptr(unsafe.Pointer(&b[0])), 0, windows.MEM_RELEASE))
}

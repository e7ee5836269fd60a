// Package file is a descriptor-owning file handle over the host's open, read,
// write, lseek and close primitives.
//
// A File is created by a successful Open and owns its descriptor until Close,
// which callers arrange to run exactly once with defer:
//
//	f, ok := file.OpenString("data.bin", file.NewFlags().ReadOnly())
//	if !ok {
//		return
//	}
//	defer f.Close()
//
// Failures of open, seek and read are reported only as a false result. The
// host errno is logged under the filesystem scope and not surfaced further.
// A failed close is fatal.
package file

import (
	"bytes"
	"io"
	"log/slog"
	"syscall"
	"unsafe"

	"github.com/tetratelabs/rtio/abort"
	"github.com/tetratelabs/rtio/alloc"
	"github.com/tetratelabs/rtio/internal/cstring"
	"github.com/tetratelabs/rtio/internal/logging"
	"github.com/tetratelabs/rtio/internal/platform"
	"github.com/tetratelabs/rtio/rio"
)

// StackPathMax is the length below which Open terminates a path in a fixed
// buffer instead of asking the allocator.
const StackPathMax = cstring.StackMax

// File owns exactly one open descriptor. Use it through the pointer returned
// by Open; copies would share ownership of the descriptor.
type File struct {
	fd int
}

// hostOpen replaces the host open in tests. It receives a copy of the path,
// so the path never escapes to the heap through this indirect call.
var hostOpen func(path []byte, flag int, perm uint32) (int, syscall.Errno)

// Open opens path, which is raw bytes in no particular encoding, with flags.
// New files get permission 0666 before umask (read/write on Windows).
//
// The host needs a NUL-terminated path. When path already ends in NUL it is
// used as is. Otherwise it is copied with a trailing NUL: into a fixed buffer
// when shorter than StackPathMax, else into a region from the process
// allocator, released before Open returns. Only the last allocates.
//
// It returns false when path is empty, or the host refused the open for any
// reason.
func Open(path []byte, flags Flags) (*File, bool) {
	if len(path) == 0 {
		if debugEnabled() {
			logger().Debug("open failed: empty path", slog.String("flags", flags.String()))
		}
		return nil, false
	}
	switch strategy := cstring.StrategyFor(path); strategy {
	case cstring.Borrowed:
		return openTerminated(path, flags, strategy)
	case cstring.Stack:
		var stack [StackPathMax]byte
		return openTerminated(cstring.TerminateStack(&stack, path), flags, strategy)
	}

	term := cstring.TerminateHeap(path)
	if term == nil {
		if debugEnabled() {
			logger().Debug("open failed: path buffer", slog.Int("size", len(path)+1))
		}
		return nil, false
	}
	defer alloc.Free(term)
	return openTerminated(term, flags, cstring.Heap)
}

// OpenString is like Open, except the path is a string. No copy of the string
// is made beyond the one Open itself may need.
func OpenString(path string, flags Flags) (*File, bool) {
	return Open(unsafe.Slice(unsafe.StringData(path), len(path)), flags)
}

// OpenNullTerminated is like Open, except path must already end in NUL. It
// returns false when it doesn't.
func OpenNullTerminated(path []byte, flags Flags) (*File, bool) {
	if !cstring.IsTerminated(path) {
		if debugEnabled() {
			logger().Debug("open failed: path not terminated", slog.String("flags", flags.String()))
		}
		return nil, false
	}
	return openTerminated(path, flags, cstring.Borrowed)
}

func openTerminated(path []byte, flags Flags, strategy cstring.Strategy) (*File, bool) {
	var fd int
	var errno syscall.Errno
	if hostOpen != nil {
		fd, errno = hostOpen(bytes.Clone(path), flags.Native(), platform.DefaultPerm)
	} else {
		fd, errno = platform.Open(&path[0], flags.Native(), platform.DefaultPerm)
	}
	if errno != 0 {
		if debugEnabled() {
			logger().Debug("open failed",
				slog.String("path", string(cstring.Trim(path))),
				slog.String("flags", flags.String()),
				slog.Any("errno", errno))
		}
		return nil, false
	}
	if debugEnabled() {
		logger().Debug("open",
			slog.String("path", string(cstring.Trim(path))),
			slog.String("flags", flags.String()),
			slog.String("strategy", strategy.String()),
			slog.Int("fd", fd))
	}
	return &File{fd: fd}, true
}

// Fd returns the descriptor owned by f.
func (f *File) Fd() int {
	return f.fd
}

// Seek moves the file position to offset relative to whence and returns the
// new position from the start. It returns false when the host refuses, for
// example when the result would be negative. Seeking past the end is allowed.
func (f *File) Seek(offset int64, whence Origin) (int64, bool) {
	pos, errno := platform.Seek(f.fd, offset, int(whence))
	if errno != 0 {
		if debugEnabled() {
			logger().Debug("seek failed", slog.Int("fd", f.fd),
				slog.Int64("offset", offset), slog.String("whence", whence.String()),
				slog.Any("errno", errno))
		}
		return 0, false
	}
	return pos, true
}

// ReadBytes implements rio.ByteReader.
func (f *File) ReadBytes(p []byte) (int, bool) {
	n, errno := platform.Read(f.fd, p)
	if errno != 0 {
		if debugEnabled() {
			logger().Debug("read failed", slog.Int("fd", f.fd), slog.Any("errno", errno))
		}
		return 0, false
	}
	return n, true
}

// Reader returns f as an io.Reader, see rio.AsReader.
func (f *File) Reader() io.Reader {
	return rio.AsReader(f)
}

// Write implements io.Writer with a single host write. Unless all of p is
// accepted it fails, with io.ErrShortWrite when only part of it was.
func (f *File) Write(p []byte) (int, error) {
	return rio.WriteAll(f.fd, p)
}

// WriteString implements io.StringWriter, see Write.
func (f *File) WriteString(s string) (int, error) {
	return rio.WriteAll(f.fd, unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Close releases the descriptor. A failed close leaves the descriptor table
// in an unknown state, so it terminates the process through abort.Fatal.
//
// Close must be called exactly once; f is unusable afterwards.
func (f *File) Close() {
	if errno := platform.Close(f.fd); errno != 0 {
		abort.Fatalf("failed to close file descriptor %d: %v", f.fd, errno)
	}
	if debugEnabled() {
		logger().Debug("close", slog.Int("fd", f.fd))
	}
	f.fd = -1
}

func debugEnabled() bool {
	return logging.Enabled(logging.LogScopeFilesystem, slog.LevelDebug)
}

func logger() *slog.Logger {
	return logging.Logger(logging.LogScopeFilesystem)
}

// Package rio holds the byte-level read contract shared by every rtio source,
// the recoverable text decoder built on it, and the standard stream endpoints.
package rio

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tetratelabs/rtio/internal/logging"
	"github.com/tetratelabs/rtio/internal/platform"
)

// ByteReader is implemented by any source of bytes.
type ByteReader interface {
	// ReadBytes reads up to len(p) bytes into p and returns the count read.
	// Zero with ok means end of stream. ok is false when the host read
	// failed, in which case the contents of p are unspecified.
	ReadBytes(p []byte) (n int, ok bool)
}

// ErrRead is the cause reported when a ByteReader fails.
var ErrRead = errors.New("read failed")

// AsReader adapts r to io.Reader, reporting end of stream as io.EOF and a
// failed read as ErrRead.
func AsReader(r ByteReader) io.Reader {
	return reader{r}
}

type reader struct{ r ByteReader }

func (r reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, ok := r.r.ReadBytes(p)
	switch {
	case !ok:
		return 0, ErrRead
	case n == 0:
		return 0, io.EOF
	}
	return n, nil
}

// Stdin is the process's standard input, descriptor 0.
var Stdin ByteReader = fdReader(platform.FdStdin)

type fdReader int

func (fd fdReader) ReadBytes(p []byte) (int, bool) {
	n, errno := platform.Read(int(fd), p)
	if errno != 0 {
		logging.Logger(logging.LogScopeFilesystem).Debug("read failed",
			slog.Int("fd", int(fd)), slog.Any("errno", errno))
		return 0, false
	}
	return n, true
}

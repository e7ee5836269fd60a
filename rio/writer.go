package rio

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mattn/go-isatty"

	"github.com/tetratelabs/rtio/internal/logging"
	"github.com/tetratelabs/rtio/internal/platform"
)

// Writer writes straight to a descriptor with one host write per call.
//
// A write that the host only partially accepts is a failure: it is neither
// retried nor reported with the count that landed.
type Writer struct {
	fd int
}

// NewWriter returns a Writer for an already open descriptor it doesn't own.
func NewWriter(fd int) Writer {
	return Writer{fd: fd}
}

// Stdout returns a Writer for descriptor 1.
func Stdout() Writer {
	return Writer{fd: platform.FdStdout}
}

// Stderr returns a Writer for descriptor 2.
func Stderr() Writer {
	return Writer{fd: platform.FdStderr}
}

// Fd returns the descriptor this writes to.
func (w Writer) Fd() int {
	return w.fd
}

// Write implements io.Writer. A short write returns io.ErrShortWrite.
func (w Writer) Write(p []byte) (int, error) {
	return WriteAll(w.fd, p)
}

// WriteString implements io.StringWriter.
func (w Writer) WriteString(s string) (int, error) {
	return WriteAll(w.fd, []byte(s))
}

// WriteAll issues a single host write of p to fd. Anything but the whole of p
// being accepted is an error: the host errno, or io.ErrShortWrite.
func WriteAll(fd int, p []byte) (int, error) {
	n, errno := platform.Write(fd, p)
	if errno != 0 {
		logging.Logger(logging.LogScopeFilesystem).Debug("write failed",
			slog.Int("fd", fd), slog.Int("len", len(p)), slog.Any("errno", errno))
		return 0, errno
	}
	if n != len(p) {
		logging.Logger(logging.LogScopeFilesystem).Debug("short write",
			slog.Int("fd", fd), slog.Int("len", len(p)), slog.Int("written", n))
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Printf formats to standard output.
func Printf(format string, a ...any) error {
	_, err := fmt.Fprintf(Stdout(), format, a...)
	return err
}

// Println formats to standard output, appending a newline.
func Println(a ...any) error {
	_, err := fmt.Fprintln(Stdout(), a...)
	return err
}

// Eprintf formats to standard error.
func Eprintf(format string, a ...any) error {
	_, err := fmt.Fprintf(Stderr(), format, a...)
	return err
}

// Eprintln formats to standard error, appending a newline.
func Eprintln(a ...any) error {
	_, err := fmt.Fprintln(Stderr(), a...)
	return err
}

// IsTerminal returns true if fd refers to a terminal, including the Cygwin
// and MSYS pseudo terminals on Windows.
func IsTerminal(fd int) bool {
	h := platform.Handle(fd)
	return isatty.IsTerminal(h) || isatty.IsCygwinTerminal(h)
}

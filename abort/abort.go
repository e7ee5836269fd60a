// Package abort is the fatal path: a diagnostic line on standard error, then
// process termination without unwinding.
//
// Nothing here returns an error. Conditions routed to this package are ones
// the program cannot recover from, such as a descriptor table in an unknown
// state after a failed close.
package abort

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/tetratelabs/rtio/internal/logging"
	"github.com/tetratelabs/rtio/rio"
)

// ExitCode is the status of a process terminated by Fatal: 128 + SIGABRT,
// what a shell reports for abort(3).
const ExitCode = 134

var exit atomic.Pointer[func(int)]

func init() {
	f := os.Exit
	exit.Store(&f)
}

// SetExit replaces the function that ends the process and returns the
// previous one. It exists so tests can observe termination; fn must not
// return normally, or Fatal panics in its place.
func SetExit(fn func(code int)) func(code int) {
	return *exit.Swap(&fn)
}

// Fatal writes "fatal: msg" and a newline to standard error and terminates
// the process with ExitCode. Deferred functions do not run.
func Fatal(msg string) {
	logging.Logger(logging.LogScopeProc).Error("fatal", slog.String("msg", msg))
	// A failed diagnostic write has nowhere to be reported.
	_, _ = rio.Stderr().WriteString("fatal: " + msg + "\n")
	(*exit.Load())(ExitCode)
	panic("abort: exit function returned")
}

// Fatalf is like Fatal with fmt.Sprintf formatting.
func Fatalf(format string, args ...any) {
	Fatal(fmt.Sprintf(format, args...))
}

// Recover turns a panic into Fatal. Defer it first thing in main:
//
//	func main() {
//		defer abort.Recover()
//		...
//	}
func Recover() {
	if r := recover(); r != nil {
		Fatal(fmt.Sprintf("panicked at: %v", r))
	}
}

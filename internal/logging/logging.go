// Package logging routes rtio's internal diagnostics to log/slog, filtered by
// scope. This is in an independent package to avoid dependency cycles.
//
// Nothing is logged until Configure is called: the layer is silent by
// default, the same as the host primitives it wraps.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
)

type LogScopes uint64

const (
	LogScopeNone                 = LogScopes(0)
	LogScopeFilesystem LogScopes = 1 << iota
	LogScopeMemory
	LogScopeProc
	LogScopeAll = LogScopes(0xffffffffffffffff)
)

func scopeName(s LogScopes) string {
	switch s {
	case LogScopeFilesystem:
		return "filesystem"
	case LogScopeMemory:
		return "memory"
	case LogScopeProc:
		return "proc"
	default:
		return fmt.Sprintf("<unknown=%d>", s)
	}
}

// IsEnabled returns true if the scope (or group of scopes) is enabled.
func (f LogScopes) IsEnabled(scope LogScopes) bool {
	return f&scope != 0
}

// String implements fmt.Stringer by returning each enabled log scope.
func (f LogScopes) String() string {
	if f == LogScopeAll {
		return "all"
	}
	var builder strings.Builder
	for i := 0; i <= 63; i++ { // cycle through all bits to reduce code and maintenance
		target := LogScopes(1 << i)
		if f.IsEnabled(target) {
			if name := scopeName(target); name != "" {
				if builder.Len() > 0 {
					builder.WriteByte('|')
				}
				builder.WriteString(name)
			}
		}
	}
	return builder.String()
}

// ErrUnknownScope is returned by ParseScopes for a name it doesn't know.
var ErrUnknownScope = errors.New("not a log scope")

// ParseScopes parses a comma-separated list such as "filesystem,memory".
// "all" enables every scope. Empty elements are ignored.
func ParseScopes(input string) (LogScopes, error) {
	var scopes LogScopes
	for _, s := range strings.Split(input, ",") {
		switch strings.TrimSpace(s) {
		case "":
			continue
		case "all":
			scopes |= LogScopeAll
		case "filesystem":
			scopes |= LogScopeFilesystem
		case "memory":
			scopes |= LogScopeMemory
		case "proc":
			scopes |= LogScopeProc
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownScope, s)
		}
	}
	return scopes, nil
}

type state struct {
	scopes LogScopes
	logger *slog.Logger
}

var (
	discard = slog.New(slog.DiscardHandler)
	current atomic.Pointer[state]
)

// Configure sends records of the given scopes, at or above level, to w as
// slog text records. A nil w or LogScopeNone turns logging off.
func Configure(w io.Writer, scopes LogScopes, level slog.Level) {
	if w == nil || scopes == LogScopeNone {
		current.Store(nil)
		return
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	current.Store(&state{scopes: scopes, logger: slog.New(h)})
}

// Enabled returns true if a record of scope at level would be written. Hot
// paths check it first, so attributes aren't built for nothing.
func Enabled(scope LogScopes, level slog.Level) bool {
	s := current.Load()
	return s != nil && s.scopes.IsEnabled(scope) && s.logger.Enabled(context.Background(), level)
}

// Logger returns the logger for a single scope. The result discards
// everything when that scope isn't enabled.
func Logger(scope LogScopes) *slog.Logger {
	s := current.Load()
	if s == nil || !s.scopes.IsEnabled(scope) {
		return discard
	}
	return s.logger.With(slog.String("scope", scopeName(scope)))
}

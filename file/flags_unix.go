//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd || aix || solaris

package file

import "github.com/tetratelabs/rtio/internal/platform"

func init() {
	flagNames = append(flagNames,
		flagName{platform.O_CLOEXEC, "O_CLOEXEC"},
		flagName{platform.O_SYNC, "O_SYNC"},
	)
}

// CloseOnExec closes the descriptor in child processes after exec.
func (f Flags) CloseOnExec() Flags { return f.with(platform.O_CLOEXEC) }

// Sync completes each write only once data and metadata reach the device.
func (f Flags) Sync() Flags { return f.with(platform.O_SYNC) }

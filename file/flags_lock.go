//go:build darwin || freebsd || netbsd || openbsd

package file

import "github.com/tetratelabs/rtio/internal/platform"

func init() {
	flagNames = append(flagNames,
		flagName{platform.O_SHLOCK, "O_SHLOCK"},
		flagName{platform.O_EXLOCK, "O_EXLOCK"},
	)
}

// SharedLock takes a shared advisory lock as part of the open.
func (f Flags) SharedLock() Flags { return f.with(platform.O_SHLOCK) }

// ExclusiveLock takes an exclusive advisory lock as part of the open.
func (f Flags) ExclusiveLock() Flags { return f.with(platform.O_EXLOCK) }

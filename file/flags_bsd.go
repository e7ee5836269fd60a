//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package file

import "github.com/tetratelabs/rtio/internal/platform"

func init() {
	flagNames = append(flagNames,
		flagName{platform.O_DIRECTORY, "O_DIRECTORY"},
		flagName{platform.O_NOFOLLOW, "O_NOFOLLOW"},
	)
}

// Directory fails unless the path is a directory.
func (f Flags) Directory() Flags { return f.with(platform.O_DIRECTORY) }

// NoFollow fails when the final path element is a symbolic link.
func (f Flags) NoFollow() Flags { return f.with(platform.O_NOFOLLOW) }

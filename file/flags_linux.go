package file

import "github.com/tetratelabs/rtio/internal/platform"

func init() {
	flagNames = append(flagNames,
		flagName{platform.O_DIRECTORY, "O_DIRECTORY"},
		flagName{platform.O_NOFOLLOW, "O_NOFOLLOW"},
		flagName{platform.O_DSYNC, "O_DSYNC"},
		flagName{platform.O_DIRECT, "O_DIRECT"},
		flagName{platform.O_NOATIME, "O_NOATIME"},
		flagName{platform.O_PATH, "O_PATH"},
	)
	// O_RSYNC shares its bits with O_SYNC on linux, so it isn't named.
}

// Directory fails unless the path is a directory.
func (f Flags) Directory() Flags { return f.with(platform.O_DIRECTORY) }

// NoFollow fails when the final path element is a symbolic link.
func (f Flags) NoFollow() Flags { return f.with(platform.O_NOFOLLOW) }

// DataSync completes each write once the data, but not all metadata, reach
// the device.
func (f Flags) DataSync() Flags { return f.with(platform.O_DSYNC) }

// ReadSync applies the write synchronization mode to reads as well.
func (f Flags) ReadSync() Flags { return f.with(platform.O_RSYNC) }

// Direct bypasses the page cache where the filesystem allows it.
func (f Flags) Direct() Flags { return f.with(platform.O_DIRECT) }

// NoAtime doesn't update the access time on reads.
func (f Flags) NoAtime() Flags { return f.with(platform.O_NOATIME) }

// Path resolves the path without opening the file for I/O.
func (f Flags) Path() Flags { return f.with(platform.O_PATH) }

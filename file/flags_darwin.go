package file

import "github.com/tetratelabs/rtio/internal/platform"

func init() {
	flagNames = append(flagNames, flagName{platform.O_DSYNC, "O_DSYNC"})
}

// DataSync completes each write once the data, but not all metadata, reach
// the device.
func (f Flags) DataSync() Flags { return f.with(platform.O_DSYNC) }

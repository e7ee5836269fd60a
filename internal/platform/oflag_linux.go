package platform

import "golang.org/x/sys/unix"

const (
	O_DIRECTORY = unix.O_DIRECTORY
	O_NOFOLLOW  = unix.O_NOFOLLOW
	O_DSYNC     = unix.O_DSYNC
	O_RSYNC     = unix.O_RSYNC
	O_DIRECT    = unix.O_DIRECT
	O_NOATIME   = unix.O_NOATIME
	O_PATH      = unix.O_PATH
)

package platform

import "golang.org/x/sys/unix"

const O_DSYNC = unix.O_DSYNC

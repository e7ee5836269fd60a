package file

import (
	"math/bits"
	"slices"
	"strconv"
	"strings"

	"github.com/tetratelabs/rtio/internal/platform"
)

// Flags accumulates open intents. Each method returns a copy with one more
// flag set, so calls chain and their order doesn't matter:
//
//	f, ok := file.OpenString("out.log", file.NewFlags().WriteOnly().Create().Append())
//
// There is no way to clear a flag. Methods for flags that only exist on some
// hosts are only defined when building for those hosts.
//
// # Notes
//
//   - ReadOnly, WriteOnly and ReadWrite are an access mode, not bits: on
//     most hosts ReadOnly is zero, and combining two access modes is left
//     to the host to interpret.
//   - This is like `flag` in os.OpenFile and `oflag` in POSIX. See
//     https://pubs.opengroup.org/onlinepubs/9699919799/functions/open.html
type Flags struct {
	bits int
}

// NewFlags returns an empty accumulator.
func NewFlags() Flags {
	return Flags{}
}

// FlagsFrom returns an accumulator starting from a host encoded value.
func FlagsFrom(native int) Flags {
	return Flags{bits: native}
}

// Native returns the host encoding: the bitwise OR of every flag set.
func (f Flags) Native() int {
	return f.bits
}

func (f Flags) with(bit int) Flags {
	return Flags{bits: f.bits | bit}
}

// ReadOnly requests read access, the default access mode.
func (f Flags) ReadOnly() Flags { return f.with(platform.O_RDONLY) }

// WriteOnly requests write access.
func (f Flags) WriteOnly() Flags { return f.with(platform.O_WRONLY) }

// ReadWrite requests read and write access.
func (f Flags) ReadWrite() Flags { return f.with(platform.O_RDWR) }

// Create creates the file when it doesn't exist.
func (f Flags) Create() Flags { return f.with(platform.O_CREAT) }

// Exclusive, with Create, fails when the file already exists.
func (f Flags) Exclusive() Flags { return f.with(platform.O_EXCL) }

// Append positions every write at the end of the file.
func (f Flags) Append() Flags { return f.with(platform.O_APPEND) }

// Truncate empties an existing regular file opened for writing.
func (f Flags) Truncate() Flags { return f.with(platform.O_TRUNC) }

type flagName struct {
	bit  int
	name string
}

// String returns the names of the flags set, joined by '|', for example
// "O_WRONLY|O_CREAT". Unnamed bits are printed in hex.
func (f Flags) String() string {
	var builder strings.Builder
	rest := f.bits
	switch rest & accessMask {
	case platform.O_RDONLY:
		builder.WriteString("O_RDONLY")
	case platform.O_WRONLY:
		builder.WriteString("O_WRONLY")
	case platform.O_RDWR:
		builder.WriteString("O_RDWR")
	default:
		builder.WriteString("0x")
		builder.WriteString(strconv.FormatInt(int64(rest&accessMask), 16))
	}
	rest &^= accessMask
	// Wider masks first, as some flags contain others (O_SYNC and O_DSYNC).
	names := slices.Clone(flagNames)
	slices.SortStableFunc(names, func(a, b flagName) int {
		return bits.OnesCount(uint(b.bit)) - bits.OnesCount(uint(a.bit))
	})
	for _, fn := range names {
		if fn.bit != 0 && rest&fn.bit == fn.bit {
			builder.WriteByte('|')
			builder.WriteString(fn.name)
			rest &^= fn.bit
		}
	}
	if rest != 0 {
		builder.WriteString("|0x")
		builder.WriteString(strconv.FormatInt(int64(rest), 16))
	}
	return strings.TrimPrefix(builder.String(), "|")
}

const accessMask = platform.O_RDONLY | platform.O_WRONLY | platform.O_RDWR

// flagNames lists the portable flags; host files append their refinements.
var flagNames = []flagName{
	{platform.O_CREAT, "O_CREAT"},
	{platform.O_EXCL, "O_EXCL"},
	{platform.O_APPEND, "O_APPEND"},
	{platform.O_TRUNC, "O_TRUNC"},
}

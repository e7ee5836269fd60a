package file

import "github.com/tetratelabs/rtio/internal/platform"

// Origin is the reference point of a Seek offset.
type Origin int

const (
	// Start is the beginning of the file, SEEK_SET.
	Start Origin = platform.SeekStart
	// Current is the current position, SEEK_CUR.
	Current Origin = platform.SeekCurrent
	// End is the end of the file, SEEK_END.
	End Origin = platform.SeekEnd
)

func (o Origin) String() string {
	switch o {
	case Start:
		return "start"
	case Current:
		return "current"
	case End:
		return "end"
	}
	return "unknown"
}

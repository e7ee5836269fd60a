package file

import "github.com/tetratelabs/rtio/internal/platform"

func init() {
	flagNames = append(flagNames,
		flagName{platform.O_RANDOM, "O_RANDOM"},
		flagName{platform.O_SEQUENTIAL, "O_SEQUENTIAL"},
		flagName{platform.O_TEMPORARY, "O_TEMPORARY"},
		flagName{platform.O_NOINHERIT, "O_NOINHERIT"},
		flagName{platform.O_SHORT_LIVED, "O_SHORT_LIVED"},
		flagName{platform.O_TEXT, "O_TEXT"},
		flagName{platform.O_BINARY, "O_BINARY"},
		flagName{platform.O_WTEXT, "O_WTEXT"},
		flagName{platform.O_U16TEXT, "O_U16TEXT"},
		flagName{platform.O_U8TEXT, "O_U8TEXT"},
	)
}

// Binary opens in untranslated mode: no CRLF conversion, no ^Z handling.
func (f Flags) Binary() Flags { return f.with(platform.O_BINARY) }

// Raw is the same as Binary.
func (f Flags) Raw() Flags { return f.with(platform.O_RAW) }

// Text opens in translated (CRLF) mode.
func (f Flags) Text() Flags { return f.with(platform.O_TEXT) }

// WideText opens in translated UTF-16 mode.
func (f Flags) WideText() Flags { return f.with(platform.O_WTEXT) }

// Utf8Text opens in translated mode, converting to and from UTF-8.
func (f Flags) Utf8Text() Flags { return f.with(platform.O_U8TEXT) }

// Utf16Text opens in translated mode, converting to and from UTF-16.
func (f Flags) Utf16Text() Flags { return f.with(platform.O_U16TEXT) }

// NoInherit keeps the descriptor from child processes.
func (f Flags) NoInherit() Flags { return f.with(platform.O_NOINHERIT) }

// Random hints that access is mostly random.
func (f Flags) Random() Flags { return f.with(platform.O_RANDOM) }

// Sequential hints that access is mostly sequential.
func (f Flags) Sequential() Flags { return f.with(platform.O_SEQUENTIAL) }

// Temporary deletes the file when its last descriptor is closed.
func (f Flags) Temporary() Flags { return f.with(platform.O_TEMPORARY) }

// ShortLived hints the file is temporary and should stay in cache.
func (f Flags) ShortLived() Flags { return f.with(platform.O_SHORT_LIVED) }

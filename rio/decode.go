package rio

import (
	"fmt"
	"unicode/utf8"
	"unsafe"
)

// Utf8Error describes where a byte sequence stopped being valid UTF-8.
type Utf8Error struct {
	// ValidUpTo is the length of the longest valid prefix.
	ValidUpTo int
	// ErrorLen is the length of the invalid sequence at ValidUpTo, or zero
	// when the input ended in the middle of an otherwise valid sequence.
	ErrorLen int
}

func (e *Utf8Error) Error() string {
	if e.ErrorLen == 0 {
		return fmt.Sprintf("incomplete utf-8 byte sequence from index %d", e.ValidUpTo)
	}
	return fmt.Sprintf("invalid utf-8 sequence of %d bytes from index %d", e.ErrorLen, e.ValidUpTo)
}

// Error is returned by ReadString. It hands back the buffer that was passed
// in, so nothing is lost when decoding fails.
type Error struct {
	buf  []byte
	utf8 *Utf8Error
}

// Bytes returns the buffer given to ReadString: untouched when the read
// failed, truncated to the bytes read when they were not valid UTF-8.
func (e *Error) Bytes() []byte {
	return e.buf
}

// Utf8Error returns the decoding failure, or nil when the read itself failed.
func (e *Error) Utf8Error() *Utf8Error {
	return e.utf8
}

func (e *Error) Error() string {
	if e.utf8 == nil {
		return ErrRead.Error()
	}
	return e.utf8.Error()
}

// Unwrap allows errors.Is(err, ErrRead) and errors.As(err, **Utf8Error).
func (e *Error) Unwrap() error {
	if e.utf8 == nil {
		return ErrRead
	}
	return e.utf8
}

// ReadString reads once from r into buf and returns the bytes read as text.
//
// Ownership of buf moves to ReadString. On success the returned string
// aliases buf without copying, so the caller must not modify buf afterwards.
// On failure buf comes back through Error.Bytes.
//
// Only len(buf) bytes are read: size the buffer with make([]byte, n).
func ReadString(r ByteReader, buf []byte) (string, error) {
	n, ok := r.ReadBytes(buf)
	if !ok {
		return "", &Error{buf: buf}
	}
	buf = buf[:n]
	if err := validate(buf); err != nil {
		return "", &Error{buf: buf, utf8: err}
	}
	if n == 0 {
		return "", nil
	}
	return unsafe.String(&buf[0], n), nil
}

// validate returns nil when p is valid UTF-8.
func validate(p []byte) *Utf8Error {
	if utf8.Valid(p) {
		return nil
	}
	for i := 0; i < len(p); {
		if p[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(p[i:])
		if r != utf8.RuneError || size > 1 {
			i += size
			continue
		}
		return &Utf8Error{ValidUpTo: i, ErrorLen: invalidLen(p[i:])}
	}
	return nil
}

// invalidLen returns how many bytes of p, which starts with an invalid
// sequence, to skip: the maximal prefix of a well-formed sequence, or zero
// when that prefix runs to the end of p.
func invalidLen(p []byte) int {
	need, lo, hi := 0, byte(0x80), byte(0xBF)
	switch b := p[0]; {
	case b >= 0xC2 && b <= 0xDF:
		need = 1
	case b == 0xE0:
		need, lo = 2, 0xA0
	case b >= 0xE1 && b <= 0xEC, b == 0xEE, b == 0xEF:
		need = 2
	case b == 0xED:
		need, hi = 2, 0x9F
	case b == 0xF0:
		need, lo = 3, 0x90
	case b >= 0xF1 && b <= 0xF3:
		need = 3
	case b == 0xF4:
		need, hi = 3, 0x8F
	default:
		return 1
	}
	for i := 1; i <= need; i++ {
		if i == len(p) {
			return 0
		}
		if p[i] < lo || p[i] > hi {
			return i
		}
		lo, hi = 0x80, 0xBF
	}
	return need + 1 // unreachable: DecodeRune accepted it
}

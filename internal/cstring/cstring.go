// Package cstring is named cstring because null-terminated strings are also known as CString and that avoids using
// clashing package names like "strings" or a really long one like "null-terminated-strings"
//
// A Null-terminated string is a byte string with a NULL suffix ("\x00").
// See https://en.wikipedia.org/wiki/Null-terminated_string
package cstring

import (
	"bytes"
	"os"
	"unsafe"

	"github.com/tetratelabs/rtio/alloc"
)

// StackMax is the size of the fixed buffer callers keep for short strings.
// Anything shorter than this is terminated without touching the allocator.
const StackMax = 256

// Strategy is how a byte string gets its trailing NUL.
type Strategy uint8

const (
	// Borrowed means the input already ended in NUL and was returned as is.
	Borrowed Strategy = iota
	// Stack means the input was copied into the caller's fixed buffer.
	Stack
	// Heap means a region was obtained from alloc.Alloc, which the caller
	// must release with alloc.Free.
	Heap
)

func (s Strategy) String() string {
	switch s {
	case Borrowed:
		return "borrowed"
	case Stack:
		return "stack"
	case Heap:
		return "heap"
	}
	return "unknown"
}

// IsTerminated returns true if p is non-empty and its last byte is NUL.
func IsTerminated(p []byte) bool {
	return len(p) > 0 && p[len(p)-1] == 0
}

// StrategyFor returns the cheapest way to terminate p: Borrowed when it
// already ends in NUL, Stack when shorter than StackMax, otherwise Heap.
//
// Callers switch on the result and call the matching function, so that a
// stack buffer only flows into its own branch and stays on the stack.
func StrategyFor(p []byte) Strategy {
	switch {
	case IsTerminated(p):
		return Borrowed
	case len(p) < StackMax:
		return Stack
	}
	return Heap
}

// TerminateStack copies p and a NUL into stack and returns that prefix of it.
// p must be shorter than StackMax.
func TerminateStack(stack *[StackMax]byte, p []byte) []byte {
	n := copy(stack[:], p)
	stack[n] = 0
	return stack[:n+1]
}

// TerminateHeap copies p and a NUL into a region from alloc.Alloc, which the
// caller releases with alloc.Free. It returns nil when the allocator fails.
func TerminateHeap(p []byte) []byte {
	buf := alloc.Alloc(len(p) + 1)
	if buf == nil {
		return nil
	}
	n := copy(buf, p)
	buf[n] = 0
	return buf[:n+1]
}

// Trim returns p without its trailing NUL, if any.
func Trim(p []byte) []byte {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		return p[:i]
	}
	return p
}

// Views borrows the NUL-terminated strings of a main-shaped argument vector.
// Each view includes its trailing NUL and aliases the memory argv points to;
// nothing is copied.
//
// The caller guarantees argv holds argc valid, NUL-terminated strings that
// outlive the views, as the argument vector of a process does.
func Views(argc int, argv **byte) [][]byte {
	if argc <= 0 || argv == nil {
		return nil
	}
	ptrs := unsafe.Slice(argv, argc)
	views := make([][]byte, argc)
	for i, p := range ptrs {
		views[i] = unsafe.Slice(p, strlen(p)+1)
	}
	return views
}

func strlen(p *byte) (n int) {
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return
}

// Args returns the process arguments as NUL-terminated byte strings, ready to
// pass to functions that would otherwise terminate them again.
func Args() [][]byte {
	args := make([][]byte, len(os.Args))
	for i, arg := range os.Args {
		args[i] = append([]byte(arg), 0)
	}
	return args
}

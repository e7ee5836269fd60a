package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/rtio/alloc"
	"github.com/tetratelabs/rtio/internal/logging"
	"github.com/tetratelabs/rtio/internal/platform"
)

func TestHelp(t *testing.T) {
	exitCode, _, stdErr := runMain(t, "", "-h")
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdErr, "Usage:\n  rtio <options> <command>")
	require.Contains(t, stdErr, "--hostlogging")
}

func TestVersion(t *testing.T) {
	exitCode, stdOut, _ := runMain(t, "", "version")
	require.Equal(t, 0, exitCode)
	require.Equal(t, "dev\n", stdOut)
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{name: "command", args: []string{"frob"}, message: "invalid command"},
		{name: "flag", args: []string{"--frob", "cat"}, message: "unknown flag: --frob"},
		{name: "allocator", args: []string{"--allocator", "malloc", "cat", "x"}, message: `invalid allocator: "malloc" is not heap or pages`},
		{name: "hostlogging", args: []string{"--hostlogging", "clock", "cat", "x"}, message: "not a log scope"},
		{name: "missing config", args: []string{"--config", "missing.hujson", "cat", "x"}, message: "invalid config: cannot read config"},
		{name: "cat without path", args: []string{"cat"}, message: "missing path"},
		{name: "cat chunk", args: []string{"cat", "--chunk", "0", "x"}, message: "invalid chunk size: 0"},
		{name: "seek whence", args: []string{"seek", "--whence", "middle", "x"}, message: `invalid whence "middle"`},
		{name: "write two paths", args: []string{"write", "x", "y"}, message: "expected exactly one path"},
		{name: "config", args: []string{"config", "edit"}, message: "rtio config init [path]"},
		{name: "repl args", args: []string{"repl", "x"}, message: "rtio repl"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			exitCode, _, stdErr := runMain(t, "", tc.args...)
			require.Equal(t, 1, exitCode)
			require.Contains(t, stdErr, tc.message)
		})
	}
}

func TestCat(t *testing.T) {
	requireHost(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a", "hello ")
	b := writeFile(t, dir, "b", "world")

	exitCode, stdOut, stdErr := runMain(t, "", "cat", "--chunk", "3", a, b)
	require.Equal(t, 0, exitCode, stdErr)
	require.Equal(t, "hello world", stdOut)
}

func TestCat_NotExist(t *testing.T) {
	requireHost(t)
	missing := filepath.Join(t.TempDir(), "missing")

	exitCode, _, stdErr := runMain(t, "", "cat", missing)
	require.Equal(t, 1, exitCode)
	require.Equal(t, "cannot open "+missing+"\n", stdErr)
}

func TestCat_HostLogging(t *testing.T) {
	requireHost(t)
	a := writeFile(t, t.TempDir(), "a", "a")

	exitCode, stdOut, stdErr := runMain(t, "", "--hostlogging", "filesystem", "cat", a)
	require.Equal(t, 0, exitCode)
	require.Equal(t, "a", stdOut)
	require.Contains(t, stdErr, "scope=filesystem")
	require.Contains(t, stdErr, "strategy=borrowed")
}

func TestWrite(t *testing.T) {
	requireHost(t)
	path := filepath.Join(t.TempDir(), "out")

	exitCode, _, stdErr := runMain(t, "hello", "write", path)
	require.Equal(t, 0, exitCode, stdErr)
	requireFile(t, path, "hello")

	exitCode, _, stdErr = runMain(t, " world", "write", "--append", path)
	require.Equal(t, 0, exitCode, stdErr)
	requireFile(t, path, "hello world")

	exitCode, _, stdErr = runMain(t, "bye", "write", "--truncate", path)
	require.Equal(t, 0, exitCode, stdErr)
	requireFile(t, path, "bye")

	exitCode, _, stdErr = runMain(t, "", "write", "--exclusive", path)
	require.Equal(t, 1, exitCode)
	require.Contains(t, stdErr, "cannot open "+path)
	requireFile(t, path, "bye")
}

func TestWrite_NotUTF8(t *testing.T) {
	requireHost(t)
	path := filepath.Join(t.TempDir(), "out")

	exitCode, _, stdErr := runMain(t, "a\xffb", "write", path)
	require.Equal(t, 0, exitCode)
	require.Equal(t, "warning: stdin is not utf-8: invalid utf-8 sequence of 1 bytes from index 1\n", stdErr)
	requireFile(t, path, "a\xffb")
}

func TestWrite_SplitCharacters(t *testing.T) {
	requireHost(t)

	tests := []struct {
		name           string
		input          string
		chunk          int
		expectedStdErr string
	}{
		{name: "two bytes", input: "héllo wörld €", chunk: 2},
		{name: "three bytes", input: "€€ 𝄞𝄞", chunk: 3},
		{name: "one byte", input: "𝄞", chunk: 1},
		{
			name:           "truncated at end",
			input:          "ab\xe2\x82",
			chunk:          2,
			expectedStdErr: "warning: stdin is not utf-8: incomplete utf-8 byte sequence from index 0\n",
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out")
			exitCode, _, stdErr := runMainChunked(t, tc.input, tc.chunk, "write", path)
			require.Equal(t, 0, exitCode, stdErr)
			require.Equal(t, tc.expectedStdErr, stdErr)
			requireFile(t, path, tc.input)
		})
	}
}

func TestSeek(t *testing.T) {
	requireHost(t)
	path := writeFile(t, t.TempDir(), "a", "hello world")

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "start", args: []string{"--offset", "6"}, expected: "6\nworld"},
		{name: "end", args: []string{"--offset", "-5", "--whence", "end"}, expected: "6\nworld"},
		{name: "past end", args: []string{"--offset", "100"}, expected: "100\n"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			exitCode, stdOut, stdErr := runMain(t, "", append(append([]string{"seek"}, tc.args...), path)...)
			require.Equal(t, 0, exitCode, stdErr)
			require.Equal(t, tc.expected, stdOut)
		})
	}
}

func TestREPL(t *testing.T) {
	requireHost(t)
	path := filepath.Join(t.TempDir(), "repl")

	script := `read 1
open ` + path + ` rw create
info
write "a\tb"
seek 0
read 64
seek -1 end
read 64
bogus
close
close
quit
write ignored
`
	exitCode, stdOut, stdErr := runMain(t, script, "repl")
	require.Equal(t, 0, exitCode, stdErr)
	require.Regexp(t, regexp.MustCompile(`^error: no file open
opened .+ fd=\d+
.+ fd=\d+ flags=O_RDWR\|O_CREAT
wrote 3
0
"a\\tb"
2
"b"
error: unknown command "bogus" \(type 'help' for commands\)
error: no file open
$`), stdOut)
	requireFile(t, path, "a\tb")
}

func TestREPL_NotUTF8(t *testing.T) {
	requireHost(t)
	path := writeFile(t, t.TempDir(), "a", "ok\x80")

	exitCode, stdOut, _ := runMain(t, "open "+path+"\nread 8\n", "repl")
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdOut, `"ok\x80" (invalid utf-8 sequence of 1 bytes from index 2)`)
}

func TestREPL_Unsatisfiable(t *testing.T) {
	requireHost(t)
	if strconv.IntSize < 64 {
		t.Skip("needs a size above the address limit")
	}
	path := writeFile(t, t.TempDir(), "a", "ok")

	exitCode, stdOut, stdErr := runMain(t, "open "+path+"\nread 9223372036854775807\nread 8\n", "repl")
	require.Equal(t, 0, exitCode, stdErr)
	require.Contains(t, stdOut, "error: cannot allocate 9223372036854775807 bytes\n")
	require.Contains(t, stdOut, `"ok"`)
}

func TestConfig(t *testing.T) {
	requireHost(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "rtio.hujson")

	exitCode, _, stdErr := runMain(t, "", "config", "init", configPath)
	require.Equal(t, 0, exitCode, stdErr)
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"allocator": "heap"`)

	// Edit the defaults, keeping comments.
	data = bytes.Replace(data, []byte(`"allocator": "heap"`), []byte(`"allocator": "pages"`), 1)
	require.NoError(t, os.WriteFile(configPath, data, 0o600))

	a := writeFile(t, dir, "a", "a")
	exitCode, stdOut, stdErr := runMain(t, "", "--config", configPath, "cat", a)
	require.Equal(t, 0, exitCode, stdErr)
	require.Equal(t, "a", stdOut)
	require.Equal(t, alloc.Pages{}, installed)

	// The flag wins over the file.
	exitCode, _, stdErr = runMain(t, "", "--config", configPath, "--allocator", "heap", "cat", a)
	require.Equal(t, 0, exitCode, stdErr)
	require.Equal(t, alloc.Heap{}, installed)
}

// installed is the allocator the last runMain would have installed. Only the
// first install in a process can take effect, so tests record it instead.
var installed alloc.Allocator

func runMain(t *testing.T, input string, args ...string) (int, string, string) {
	t.Helper()
	return runMainChunked(t, input, 0, args...)
}

// runMainChunked is like runMain, except stdin returns at most chunk bytes
// per read when chunk is positive.
func runMainChunked(t *testing.T, input string, chunk int, args ...string) (int, string, string) {
	t.Helper()
	oldArgs, oldStdin, oldIsTerminal, oldInstall := os.Args, stdin, isTerminal, installAllocator
	t.Cleanup(func() {
		os.Args, stdin, isTerminal, installAllocator = oldArgs, oldStdin, oldIsTerminal, oldInstall
		logging.Configure(nil, logging.LogScopeNone, 0)
	})
	os.Args = append([]string{"rtio"}, args...)
	stdin = &stringReader{s: input, max: chunk}
	isTerminal = func(int) bool { return false }
	installed = nil
	installAllocator = func(a alloc.Allocator) { installed = a }

	var exitCode int
	stdOut := &bytes.Buffer{}
	stdErr := &bytes.Buffer{}
	var exited bool
	func() {
		defer func() {
			if r := recover(); r != nil {
				exited = true
			}
		}()
		doMain(stdOut, stdErr, func(code int) {
			exitCode = code
			panic(code)
		})
	}()

	require.True(t, exited)

	return exitCode, stdOut.String(), stdErr.String()
}

type stringReader struct {
	s   string
	max int
}

func (r *stringReader) ReadBytes(p []byte) (int, bool) {
	if r.max > 0 && len(p) > r.max {
		p = p[:r.max]
	}
	n := copy(p, r.s)
	r.s = r.s[n:]
	return n, true
}

func requireHost(t *testing.T) {
	if !platform.Supported {
		t.Skip("no host primitives on this platform")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func requireFile(t *testing.T, path, expected string) {
	actual, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, expected, string(actual))
}

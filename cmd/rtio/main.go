package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"unicode/utf8"

	flag "github.com/spf13/pflag"

	"github.com/tetratelabs/rtio/abort"
	"github.com/tetratelabs/rtio/alloc"
	"github.com/tetratelabs/rtio/file"
	"github.com/tetratelabs/rtio/internal/config"
	"github.com/tetratelabs/rtio/internal/cstring"
	"github.com/tetratelabs/rtio/internal/logging"
	"github.com/tetratelabs/rtio/rio"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

var (
	stdin            = rio.Stdin
	isTerminal       = rio.IsTerminal
	installAllocator = alloc.Install
)

func main() {
	defer abort.Recover()
	doMain(rio.Stdout(), rio.Stderr(), os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut, stdErr io.Writer, exit func(code int)) {
	flags := flag.NewFlagSet("rtio", flag.ContinueOnError)
	flags.SetOutput(stdErr)
	flags.SetInterspersed(false)

	var help bool
	flags.BoolVarP(&help, "help", "h", false, "print usage")

	configPath := flags.String("config", config.DefaultPath,
		"Path to a JSON (with comments) settings file. Missing is fine unless set explicitly.")

	allocator := flags.String("allocator", "",
		"Memory for buffers and long paths: heap or pages. Overrides the config file.")

	var hostLogging logScopesFlag
	flags.Var(&hostLogging, "hostlogging",
		"A comma-separated list of scopes to log to stderr, added to the config file's. "+
			"Supported values: filesystem,memory,proc,all")

	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(stdErr, err)
		printUsage(stdErr, flags)
		exit(1)
	}

	if help || flags.NArg() == 0 {
		printUsage(stdErr, flags)
		exit(0)
	}

	subCmd := flags.Arg(0)
	switch subCmd {
	case "version":
		fmt.Fprintln(stdOut, versionString())
		exit(0)
	case "config":
		doConfig(flags.Args()[1:], stdErr, exit)
		return
	}

	cfg, err := config.Load(*configPath, flags.Changed("config"))
	if err != nil {
		fmt.Fprintf(stdErr, "invalid config: %v\n", err)
		exit(1)
	}
	if flags.Changed("allocator") {
		cfg.Allocator = *allocator
	}
	setup(cfg, logging.LogScopes(hostLogging), stdErr, exit)

	args := flags.Args()[1:]
	switch subCmd {
	case "cat":
		doCat(args, cfg, stdOut, stdErr, exit)
	case "write":
		doWrite(args, cfg, stdErr, exit)
	case "seek":
		doSeek(args, cfg, stdOut, stdErr, exit)
	case "repl":
		doREPL(args, cfg, stdOut, stdErr, exit)
	default:
		fmt.Fprintln(stdErr, "invalid command")
		printUsage(stdErr, flags)
		exit(1)
	}
}

// setup installs the process allocator and log output. It must run before
// anything allocates through package alloc.
func setup(cfg config.Config, extraScopes logging.LogScopes, stdErr io.Writer, exit func(code int)) {
	a, err := newAllocator(cfg.Allocator)
	if err != nil {
		fmt.Fprintf(stdErr, "invalid allocator: %v\n", err)
		exit(1)
	}
	installAllocator(a)

	scopes, err := cfg.Log.LogScopes()
	if err != nil {
		fmt.Fprintf(stdErr, "invalid config: %v\n", err)
		exit(1)
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		fmt.Fprintf(stdErr, "invalid config: %v\n", err)
		exit(1)
	}
	// Host calls log at debug.
	if extraScopes != logging.LogScopeNone {
		level = min(level, slog.LevelDebug)
	}
	logging.Configure(stdErr, scopes|extraScopes, level)
}

func newAllocator(name string) (alloc.Allocator, error) {
	switch name {
	case "", "heap":
		return alloc.Heap{}, nil
	case "pages":
		return alloc.Pages{}, nil
	}
	return nil, fmt.Errorf("%q is not heap or pages", name)
}

func doCat(args []string, cfg config.Config, stdOut, stdErr io.Writer, exit func(code int)) {
	flags := flag.NewFlagSet("cat", flag.ContinueOnError)
	flags.SetOutput(stdErr)
	flags.SetInterspersed(false)

	chunk := flags.Int("chunk", cfg.ChunkSize, "Bytes requested from the host per read.")

	parseCommandFlags(flags, args, "cat <options> <path>...", stdErr, exit)
	if flags.NArg() == 0 {
		fmt.Fprintln(stdErr, "missing path")
		printCommandUsage(stdErr, flags, "cat <options> <path>...")
		exit(1)
	}

	buf := allocChunk(*chunk, stdErr, exit)
	defer alloc.Free(buf)

	for _, path := range trailingArgs(flags.NArg()) {
		f, ok := file.OpenNullTerminated(path, file.NewFlags().ReadOnly())
		if !ok {
			fmt.Fprintf(stdErr, "cannot open %s\n", cstring.Trim(path))
			exit(1)
		}
		err := copyOut(stdOut, f, buf)
		f.Close()
		if err != nil {
			fmt.Fprintf(stdErr, "cannot read %s: %v\n", cstring.Trim(path), err)
			exit(1)
		}
	}
	exit(0)
}

func doWrite(args []string, cfg config.Config, stdErr io.Writer, exit func(code int)) {
	flags := flag.NewFlagSet("write", flag.ContinueOnError)
	flags.SetOutput(stdErr)
	flags.SetInterspersed(false)

	appendMode := flags.Bool("append", false, "Write at the end of an existing file.")
	exclusive := flags.Bool("exclusive", false, "Fail if the file already exists.")
	truncate := flags.Bool("truncate", false, "Empty an existing file first.")

	parseCommandFlags(flags, args, "write <options> <path>", stdErr, exit)
	if flags.NArg() != 1 {
		fmt.Fprintln(stdErr, "expected exactly one path")
		printCommandUsage(stdErr, flags, "write <options> <path>")
		exit(1)
	}

	oflags := file.NewFlags().WriteOnly().Create()
	if *appendMode {
		oflags = oflags.Append()
	}
	if *exclusive {
		oflags = oflags.Exclusive()
	}
	if *truncate {
		oflags = oflags.Truncate()
	}

	path := trailingArgs(1)[0]
	f, ok := file.OpenNullTerminated(path, oflags)
	if !ok {
		fmt.Fprintf(stdErr, "cannot open %s with %v\n", cstring.Trim(path), oflags)
		exit(1)
	}
	// Room for a character held back from the previous read plus one byte.
	buf := allocChunk(max(cfg.ChunkSize, utf8.UTFMax), stdErr, exit)
	fail := func(format string, a ...any) {
		f.Close()
		alloc.Free(buf)
		fmt.Fprintf(stdErr, format, a...)
		exit(1)
	}

	in := &pendingReader{r: stdin}
	warned := false
	for {
		s, err := rio.ReadString(in, buf)
		if err != nil {
			var readErr *rio.Error
			if !errors.As(err, &readErr) || readErr.Utf8Error() == nil {
				fail("cannot read stdin: %v\n", err)
			}
			data, utf8Err := readErr.Bytes(), readErr.Utf8Error()
			if utf8Err.ErrorLen == 0 && !in.eof {
				// A character split by the read: finish it on the next one.
				in.hold(data[utf8Err.ValidUpTo:])
				data = data[:utf8Err.ValidUpTo]
			} else if !warned {
				// Not text, but nothing was lost: write the bytes as read.
				fmt.Fprintf(stdErr, "warning: stdin is not utf-8: %v\n", err)
				warned = true
			}
			if _, err = f.Write(data); err != nil {
				fail("cannot write %s: %v\n", cstring.Trim(path), err)
			}
			continue
		}
		if s == "" {
			break
		}
		if _, err = f.WriteString(s); err != nil {
			fail("cannot write %s: %v\n", cstring.Trim(path), err)
		}
	}
	// exit may not return, so nothing is deferred.
	f.Close()
	alloc.Free(buf)
	exit(0)
}

// pendingReader prefixes each read with the bytes held back from the last.
type pendingReader struct {
	r       rio.ByteReader
	pending [utf8.UTFMax]byte
	n       int
	eof     bool
}

func (p *pendingReader) hold(b []byte) {
	p.n = copy(p.pending[:], b)
}

func (p *pendingReader) ReadBytes(buf []byte) (int, bool) {
	k := copy(buf, p.pending[:p.n])
	p.n = 0
	if p.eof {
		return k, true
	}
	n, ok := p.r.ReadBytes(buf[k:])
	if !ok {
		return 0, false
	}
	if n == 0 {
		p.eof = true
	}
	return k + n, true
}

func doSeek(args []string, cfg config.Config, stdOut, stdErr io.Writer, exit func(code int)) {
	flags := flag.NewFlagSet("seek", flag.ContinueOnError)
	flags.SetOutput(stdErr)
	flags.SetInterspersed(false)

	offset := flags.Int64("offset", 0, "Position relative to --whence.")
	whence := flags.String("whence", "start", "One of start, current or end.")

	parseCommandFlags(flags, args, "seek <options> <path>", stdErr, exit)
	if flags.NArg() != 1 {
		fmt.Fprintln(stdErr, "expected exactly one path")
		printCommandUsage(stdErr, flags, "seek <options> <path>")
		exit(1)
	}
	origin, err := parseOrigin(*whence)
	if err != nil {
		fmt.Fprintln(stdErr, err)
		exit(1)
	}

	path := trailingArgs(1)[0]
	f, ok := file.OpenNullTerminated(path, file.NewFlags().ReadOnly())
	if !ok {
		fmt.Fprintf(stdErr, "cannot open %s\n", cstring.Trim(path))
		exit(1)
	}

	pos, ok := f.Seek(*offset, origin)
	if !ok {
		f.Close()
		fmt.Fprintf(stdErr, "cannot seek %s to %d from %v\n", cstring.Trim(path), *offset, origin)
		exit(1)
	}
	fmt.Fprintln(stdOut, pos)

	buf := allocChunk(cfg.ChunkSize, stdErr, exit)
	err = copyOut(stdOut, f, buf)
	// exit may not return, so nothing is deferred.
	f.Close()
	alloc.Free(buf)
	if err != nil {
		fmt.Fprintf(stdErr, "cannot read %s: %v\n", cstring.Trim(path), err)
		exit(1)
	}
	exit(0)
}

func doConfig(args []string, stdErr io.Writer, exit func(code int)) {
	if len(args) == 0 || args[0] != "init" || len(args) > 2 {
		fmt.Fprintln(stdErr, "Usage:\n  rtio config init [path]")
		exit(1)
	}
	path := config.DefaultPath
	if len(args) == 2 {
		path = args[1]
	}
	if err := config.WriteDefault(path); err != nil {
		fmt.Fprintln(stdErr, err)
		exit(1)
	}
	exit(0)
}

// trailingArgs returns the last n process arguments, NUL-terminated so they
// open without another copy. Positional arguments are always a suffix of
// os.Args, as no flag set here accepts interspersed flags.
func trailingArgs(n int) [][]byte {
	argv := cstring.Args()
	return argv[len(argv)-n:]
}

func allocChunk(n int, stdErr io.Writer, exit func(code int)) []byte {
	if n <= 0 {
		fmt.Fprintf(stdErr, "invalid chunk size: %d\n", n)
		exit(1)
	}
	buf := alloc.Alloc(n)
	if buf == nil {
		fmt.Fprintf(stdErr, "cannot allocate %d bytes\n", n)
		exit(1)
	}
	return buf
}

// copyOut writes the rest of r to w, one read of len(buf) at a time.
func copyOut(w io.Writer, r rio.ByteReader, buf []byte) error {
	for {
		n, ok := r.ReadBytes(buf)
		if !ok {
			return rio.ErrRead
		}
		if n == 0 {
			return nil
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}
}

func parseOrigin(s string) (file.Origin, error) {
	for _, o := range []file.Origin{file.Start, file.Current, file.End} {
		if s == o.String() {
			return o, nil
		}
	}
	return 0, fmt.Errorf("invalid whence %q: use start, current or end", s)
}

func versionString() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

func printUsage(stdErr io.Writer, flags *flag.FlagSet) {
	fmt.Fprintln(stdErr, "rtio CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  rtio <options> <command>")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Commands:")
	fmt.Fprintln(stdErr, "  cat\t\tWrites files to stdout")
	fmt.Fprintln(stdErr, "  write\t\tWrites stdin to a file")
	fmt.Fprintln(stdErr, "  seek\t\tWrites a file from an offset to stdout")
	fmt.Fprintln(stdErr, "  repl\t\tOpens, reads, writes and seeks files interactively")
	fmt.Fprintln(stdErr, "  config init\tWrites a default settings file")
	fmt.Fprintln(stdErr, "  version\tDisplays the version of rtio CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Options:")
	fmt.Fprint(stdErr, flags.FlagUsages())
}

// parseCommandFlags parses args or exits: zero for -h, otherwise one.
func parseCommandFlags(flags *flag.FlagSet, args []string, usage string, stdErr io.Writer, exit func(code int)) {
	err := flags.Parse(args)
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		printCommandUsage(stdErr, flags, usage)
		exit(0)
	}
	fmt.Fprintln(stdErr, err)
	printCommandUsage(stdErr, flags, usage)
	exit(1)
}

func printCommandUsage(stdErr io.Writer, flags *flag.FlagSet, usage string) {
	fmt.Fprintln(stdErr, "rtio CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  rtio "+usage)
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Options:")
	fmt.Fprint(stdErr, flags.FlagUsages())
}

type logScopesFlag logging.LogScopes

func (f *logScopesFlag) String() string {
	return logging.LogScopes(*f).String()
}

func (f *logScopesFlag) Set(input string) error {
	scopes, err := logging.ParseScopes(input)
	if err != nil {
		return err
	}
	*f |= logScopesFlag(scopes)
	return nil
}

func (f *logScopesFlag) Type() string {
	return "scopes"
}

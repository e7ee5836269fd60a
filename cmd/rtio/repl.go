package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/tetratelabs/rtio/alloc"
	"github.com/tetratelabs/rtio/file"
	"github.com/tetratelabs/rtio/internal/config"
	"github.com/tetratelabs/rtio/rio"
)

const stdinFd = 0

var replCommands = []string{"open", "read", "seek", "write", "info", "close", "help", "quit"}

// lineSource yields input lines without their newline. io.EOF ends the
// session.
type lineSource interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// linerSource edits lines in a terminal, with history.
type linerSource struct {
	*liner.State
}

func newLinerSource() *linerSource {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	l.SetCompleter(func(line string) (c []string) {
		for _, cmd := range replCommands {
			if strings.HasPrefix(cmd, strings.ToLower(line)) {
				c = append(c, cmd)
			}
		}
		return
	})
	return &linerSource{l}
}

func (s *linerSource) Prompt(prompt string) (string, error) {
	line, err := s.State.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err == nil && strings.TrimSpace(line) != "" {
		s.AppendHistory(line)
	}
	return line, err
}

// scanSource reads plain lines, for piped input. Nothing is echoed.
type scanSource struct {
	scanner *bufio.Scanner
}

func (s scanSource) Prompt(string) (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (scanSource) Close() error { return nil }

func doREPL(args []string, cfg config.Config, stdOut, stdErr io.Writer, exit func(code int)) {
	if len(args) != 0 {
		fmt.Fprintln(stdErr, "Usage:\n  rtio repl")
		exit(1)
	}

	var lines lineSource
	if isTerminal(stdinFd) {
		lines = newLinerSource()
	} else {
		lines = scanSource{bufio.NewScanner(rio.AsReader(stdin))}
	}

	s := &session{out: stdOut}
	code := 0
	for {
		line, err := lines.Prompt("rtio> ")
		if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintf(stdErr, "cannot read stdin: %v\n", err)
			code = 1
			break
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := strings.ToLower(fields[0])
		if cmd == "quit" || cmd == "exit" {
			break
		}
		if err = s.run(cmd, fields[1:], line); err != nil {
			fmt.Fprintf(stdOut, "error: %v\n", err)
		}
	}

	s.closeFile()
	_ = lines.Close()
	exit(code)
}

// session is the state of one REPL: at most one open file.
type session struct {
	out   io.Writer
	f     *file.File
	path  string
	flags file.Flags
}

func (s *session) run(cmd string, args []string, line string) error {
	switch cmd {
	case "help", "?":
		s.printHelp()
		return nil
	case "open":
		return s.open(args)
	case "info":
		if s.f == nil {
			fmt.Fprintln(s.out, "no file open")
		} else {
			fmt.Fprintf(s.out, "%s fd=%d flags=%v\n", s.path, s.f.Fd(), s.flags)
		}
		return nil
	case "read", "seek", "write", "close":
	default:
		return fmt.Errorf("unknown command %q (type 'help' for commands)", cmd)
	}

	if s.f == nil {
		return errors.New("no file open")
	}
	switch cmd {
	case "read":
		return s.read(args)
	case "seek":
		return s.seek(args)
	case "write":
		return s.write(line)
	}
	s.closeFile()
	return nil
}

func (s *session) open(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: open <path> [r|w|rw|create|excl|append|trunc]...")
	}
	flags, err := parseOpenFlags(args[1:])
	if err != nil {
		return err
	}
	f, ok := file.OpenString(args[0], flags)
	if !ok {
		return fmt.Errorf("cannot open %s with %v", args[0], flags)
	}
	s.closeFile()
	s.f, s.path, s.flags = f, args[0], flags
	fmt.Fprintf(s.out, "opened %s fd=%d\n", s.path, f.Fd())
	return nil
}

func parseOpenFlags(words []string) (file.Flags, error) {
	flags := file.NewFlags()
	if len(words) == 0 {
		return flags.ReadOnly(), nil
	}
	for _, w := range words {
		switch w {
		case "r":
			flags = flags.ReadOnly()
		case "w":
			flags = flags.WriteOnly()
		case "rw":
			flags = flags.ReadWrite()
		case "create":
			flags = flags.Create()
		case "excl":
			flags = flags.Exclusive()
		case "append":
			flags = flags.Append()
		case "trunc":
			flags = flags.Truncate()
		default:
			return flags, fmt.Errorf("unknown open flag %q", w)
		}
	}
	return flags, nil
}

func (s *session) read(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: read <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid byte count %q", args[0])
	}
	buf := alloc.Alloc(n)
	if buf == nil {
		return fmt.Errorf("cannot allocate %d bytes", n)
	}
	defer alloc.Free(buf)

	text, err := rio.ReadString(s.f, buf)
	if err != nil {
		var readErr *rio.Error
		if errors.As(err, &readErr) && readErr.Utf8Error() != nil {
			fmt.Fprintf(s.out, "%q (%v)\n", readErr.Bytes(), readErr.Utf8Error())
			return nil
		}
		return err
	}
	fmt.Fprintf(s.out, "%q\n", text)
	return nil
}

func (s *session) seek(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errors.New("usage: seek <offset> [start|current|end]")
	}
	offset, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid offset %q", args[0])
	}
	origin := file.Start
	if len(args) == 2 {
		if origin, err = parseOrigin(args[1]); err != nil {
			return err
		}
	}
	pos, ok := s.f.Seek(offset, origin)
	if !ok {
		return fmt.Errorf("cannot seek to %d from %v", offset, origin)
	}
	fmt.Fprintln(s.out, pos)
	return nil
}

// write takes the text after the command word verbatim, or unquotes it when
// it is a Go string literal.
func (s *session) write(line string) error {
	_, text, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	if strings.HasPrefix(text, `"`) {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			return fmt.Errorf("invalid quoted text: %w", err)
		}
		text = unquoted
	}
	n, err := s.f.WriteString(text)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "wrote %d\n", n)
	return nil
}

func (s *session) closeFile() {
	if s.f != nil {
		s.f.Close()
		s.f = nil
	}
}

func (s *session) printHelp() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  open <path> [r|w|rw|create|excl|append|trunc]...")
	fmt.Fprintln(s.out, "  read <n>\t\tReads up to n bytes as text")
	fmt.Fprintln(s.out, "  seek <offset> [start|current|end]")
	fmt.Fprintln(s.out, "  write <text>\t\tText may be a quoted Go string, e.g. \"a\\n\"")
	fmt.Fprintln(s.out, "  info")
	fmt.Fprintln(s.out, "  close")
	fmt.Fprintln(s.out, "  quit")
}

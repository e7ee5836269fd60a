// Package maintester runs code that ends the process inside a child copy of
// the test binary, capturing what it wrote to the standard streams at the
// descriptor level.
package maintester

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const envKey = "RTIO_MAINTESTER"

// Child returns true inside the process Run started for the test name.
func Child(name string) bool {
	return os.Getenv(envKey) == name
}

// Run re-executes the current test binary, running only the test name with
// Child(name) true, and returns its exit code and output.
func Run(t *testing.T, name, stdin string, env ...string) (exitCode int, stdout, stderr string) {
	t.Helper()

	cmd := exec.Command(os.Args[0], "-test.run=^"+name+"$", "-test.count=1")
	cmd.Env = append(append(os.Environ(), envKey+"="+name), env...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdoutB, stderrB bytes.Buffer
	cmd.Stdout = &stdoutB
	cmd.Stderr = &stderrB

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		exitCode = exitErr.ExitCode()
	default:
		require.NoError(t, err)
	}

	// Capture any output in a portable way (ex without windows newlines)
	stdout = strings.ReplaceAll(stdoutB.String(), "\r\n", "\n")
	stderr = strings.ReplaceAll(stderrB.String(), "\r\n", "\n")
	return
}

package llm

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// IOStreams abstracts standard I/O for testability and dependency injection.
//
// Question acquisition reads from In, answers go to Out, and the spinner and
// diagnostics go to ErrOut. TTY detection is a function field so tests can
// simulate a terminal or a pipe.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	isTerminalFunc func(fd int) bool
	stdinFd        int
	stdoutFd       int
	stderrFd       int
}

// NewIOStreams creates IOStreams connected to os.Stdin/Stdout/Stderr.
func NewIOStreams() *IOStreams {
	return &IOStreams{
		In:             os.Stdin,
		Out:            os.Stdout,
		ErrOut:         os.Stderr,
		isTerminalFunc: term.IsTerminal,
		stdinFd:        int(os.Stdin.Fd()),
		stdoutFd:       int(os.Stdout.Fd()),
		stderrFd:       int(os.Stderr.Fd()),
	}
}

// IsInteractive returns true if stdin is a TTY (terminal). When false the
// question is read from a pipe or redirect instead of prompted for.
func (s *IOStreams) IsInteractive() bool {
	return s.isTerminal(s.stdinFd)
}

// IsOutputTerminal returns true if stdout is a TTY, i.e. ANSI sequences will
// be interpreted rather than captured.
func (s *IOStreams) IsOutputTerminal() bool {
	return s.isTerminal(s.stdoutFd)
}

// IsErrTerminal returns true if stderr is a TTY.
func (s *IOStreams) IsErrTerminal() bool {
	return s.isTerminal(s.stderrFd)
}

func (s *IOStreams) isTerminal(fd int) bool {
	if s.isTerminalFunc == nil {
		return false
	}
	return s.isTerminalFunc(fd)
}

// TestIOStreams creates IOStreams for testing with in-memory buffers.
// Returns the streams and the input/output buffers for assertions.
// Simulates a TTY by default (isTerminalFunc returns true).
func TestIOStreams() (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	return testIOStreams(true)
}

// TestIOStreamsNonInteractive creates IOStreams for testing non-interactive scenarios.
// Similar to TestIOStreams but simulates a non-TTY environment (pipes, CI/CD).
func TestIOStreamsNonInteractive() (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	return testIOStreams(false)
}

func testIOStreams(tty bool) (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	return &IOStreams{
		In:             in,
		Out:            out,
		ErrOut:         out,
		isTerminalFunc: func(int) bool { return tty },
		stdinFd:        0,
		stdoutFd:       1,
		stderrFd:       2,
	}, in, out
}

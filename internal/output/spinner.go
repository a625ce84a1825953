// Package output holds the cosmetic effects around printing an answer.
package output

import (
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/connorhough/qq/internal/llm"
)

// Spinner shows progress on stderr while a question is in flight. A nil
// *Spinner is valid and does nothing.
type Spinner struct {
	sp *spinner.Spinner
}

// NewSpinner returns a spinner writing to streams.ErrOut, or nil when stderr
// is not a terminal so pipes and logs stay clean.
func NewSpinner(streams *llm.IOStreams, suffix string) *Spinner {
	if !streams.IsErrTerminal() {
		return nil
	}

	opt := spinner.WithWriter(streams.ErrOut)
	if f, ok := streams.ErrOut.(*os.File); ok {
		opt = spinner.WithWriterFile(f)
	}

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, opt, spinner.WithHiddenCursor(true))
	sp.Suffix = suffix
	return &Spinner{sp: sp}
}

// Start begins animating.
func (s *Spinner) Start() {
	if s == nil {
		return
	}
	s.sp.Start()
}

// Stop halts the animation and erases it.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}
	s.sp.Stop()
}

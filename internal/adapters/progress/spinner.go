package progress

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// SpinnerSink renders step progress as a terminal spinner.
type SpinnerSink struct {
	spinner *spinner.Spinner
}

// NewSpinnerSink creates a spinner-based progress sink.
func NewSpinnerSink() *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.HideCursor = false
	return &SpinnerSink{spinner: s}
}

func (r *SpinnerSink) Start(message string) {
	r.spinner.Suffix = " " + message
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

func (r *SpinnerSink) Update(message string) {
	r.spinner.Suffix = " " + message
}

func (r *SpinnerSink) Done(message string) {
	r.stopWith(color.New(color.FgGreen).Sprint("✓ ") + message)
}

func (r *SpinnerSink) Fail(message string) {
	r.stopWith(color.New(color.FgRed).Sprint("✗ ") + message)
}

func (r *SpinnerSink) stopWith(line string) {
	if r.spinner.Active() {
		r.spinner.FinalMSG = line + "\n"
		r.spinner.Stop()
		r.spinner.FinalMSG = ""
		return
	}
	fmt.Println(line)
}

// NopSink discards progress. Used in non-interactive and JSON output modes.
type NopSink struct{}

func (NopSink) Start(string)  {}
func (NopSink) Update(string) {}
func (NopSink) Done(string)   {}
func (NopSink) Fail(string)   {}

// Package ui holds the terminal presentation layer: spinner-based progress
// reporting and the startup banner.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Reporter receives progress notifications from long-running steps. It is a
// pure side-effect collaborator; callers never read anything back.
type Reporter interface {
	Start(message string)
	Update(message string)
	Succeed(message string)
	Fail(message string)
	Stop()
}

// SpinnerReporter renders progress with a terminal spinner.
type SpinnerReporter struct {
	s *spinner.Spinner
}

// NewSpinnerReporter creates a Reporter writing to stderr.
func NewSpinnerReporter() *SpinnerReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	return &SpinnerReporter{s: s}
}

func (r *SpinnerReporter) Start(message string) {
	r.s.Suffix = " " + message
	r.s.Start()
}

func (r *SpinnerReporter) Update(message string) {
	r.s.Suffix = " " + message
}

func (r *SpinnerReporter) Succeed(message string) {
	r.s.FinalMSG = fmt.Sprintf("✔ %s\n", message)
	r.s.Stop()
}

func (r *SpinnerReporter) Fail(message string) {
	r.s.FinalMSG = fmt.Sprintf("✖ %s\n", message)
	r.s.Stop()
}

func (r *SpinnerReporter) Stop() {
	r.s.FinalMSG = ""
	r.s.Stop()
}

// NopReporter discards all progress notifications. Used in tests and when
// output is not a terminal.
type NopReporter struct{}

func (NopReporter) Start(string)   {}
func (NopReporter) Update(string)  {}
func (NopReporter) Succeed(string) {}
func (NopReporter) Fail(string)    {}
func (NopReporter) Stop()          {}

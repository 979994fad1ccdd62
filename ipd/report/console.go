package report

import (
	"context"
	"fmt"
	"io"

	"github.com/baldhumanity/ipd-go/ipd"
)

// ConsoleReporter prints the score chart, winner label and summary of every
// generation.
type ConsoleReporter struct {
	Out      io.Writer
	Color    bool
	BarWidth int
	Summary  bool
}

// NewConsoleReporter creates a console reporter writing plain text tables.
func NewConsoleReporter(out io.Writer, color bool) *ConsoleReporter {
	return &ConsoleReporter{Out: out, Color: color, BarWidth: 40, Summary: true}
}

// ReportGeneration implements ipd.Reporter.
func (c *ConsoleReporter) ReportGeneration(_ context.Context, r *ipd.GenerationReport) error {
	opts := Options{Format: FormatText, Color: c.Color}
	if _, err := fmt.Fprintln(c.Out, ScoreTable(r, opts, c.BarWidth)); err != nil {
		return err
	}
	if !c.Summary {
		return nil
	}
	_, err := fmt.Fprintln(c.Out, SummaryTable(r, opts))
	return err
}

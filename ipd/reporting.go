package ipd

import (
	"context"
	"fmt"
)

// Reporter receives each generation's report after play and before breeding.
type Reporter interface {
	ReportGeneration(ctx context.Context, report *GenerationReport) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, report *GenerationReport) error

// ReportGeneration calls f.
func (f ReporterFunc) ReportGeneration(ctx context.Context, report *GenerationReport) error {
	return f(ctx, report)
}

// ReporterSet fans a report out to several reporters in registration order.
type ReporterSet struct {
	reporters []Reporter
}

// Add registers a reporter.
func (s *ReporterSet) Add(r Reporter) {
	s.reporters = append(s.reporters, r)
}

// Len returns the number of registered reporters.
func (s *ReporterSet) Len() int {
	return len(s.reporters)
}

// ReportGeneration stops at the first reporter that fails.
func (s *ReporterSet) ReportGeneration(ctx context.Context, report *GenerationReport) error {
	for i, r := range s.reporters {
		if err := r.ReportGeneration(ctx, report); err != nil {
			return fmt.Errorf("reporter %d: %w", i, err)
		}
	}
	return nil
}

package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/baldhumanity/ipd-go/ipd"
)

const (
	defaultAttempts = 5
	defaultBackoff  = 500 * time.Millisecond
)

// FileReporter writes one genome table and one interaction table per
// generation into Dir. A failed write (for instance a file locked by another
// program) is retried with a linearly growing delay.
type FileReporter struct {
	Dir      string
	Options  Options
	Attempts int
	Backoff  time.Duration
	Logger   *slog.Logger

	// writeFile is swapped out in tests.
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// NewFileReporter creates a reporter writing into dir, creating it if needed.
func NewFileReporter(dir string, opts Options, logger *slog.Logger) (*FileReporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir '%s': %w", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileReporter{
		Dir:       dir,
		Options:   opts,
		Attempts:  defaultAttempts,
		Backoff:   defaultBackoff,
		Logger:    logger.With(slog.String("component", "file-reporter")),
		writeFile: os.WriteFile,
	}, nil
}

// GenomePath returns the genome table path for a generation.
func (f *FileReporter) GenomePath(generation int) string {
	return filepath.Join(f.Dir, fmt.Sprintf("genomes-%03d.%s", generation, f.Options.Format.Ext()))
}

// InteractionPath returns the interaction table path for a generation.
func (f *FileReporter) InteractionPath(generation int) string {
	return filepath.Join(f.Dir, fmt.Sprintf("interactions-%03d.%s", generation, f.Options.Format.Ext()))
}

// ReportGeneration implements ipd.Reporter.
func (f *FileReporter) ReportGeneration(ctx context.Context, r *ipd.GenerationReport) error {
	if err := f.write(ctx, f.GenomePath(r.Generation), GenomeTable(r, f.Options)); err != nil {
		return err
	}
	return f.write(ctx, f.InteractionPath(r.Generation), InteractionTable(r, f.Options))
}

func (f *FileReporter) write(ctx context.Context, path, content string) error {
	attempts := f.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		if err = f.writeFile(path, []byte(content), 0o644); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		f.Logger.Warn("report write failed, retrying",
			slog.String("path", path),
			slog.Int("attempt", i),
			slog.Any("error", err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i) * f.Backoff):
		}
	}
	return fmt.Errorf("write '%s' failed after %d attempts: %w", path, attempts, err)
}

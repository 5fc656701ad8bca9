package domain

import "time"

// ConversionReport records the outcome of converting one directory.
type ConversionReport struct {
	// RunID uniquely identifies the conversion run.
	RunID string

	// SourceDir is the directory files were read from.
	SourceDir string

	// OutputDir is the directory files were written to.
	OutputDir string

	// Target is the format files were converted into.
	Target Format

	// Converted holds the paths of written files, in processing order.
	Converted []string

	// Skipped holds source file names that could not be converted.
	Skipped []string

	StartedAt   time.Time
	CompletedAt time.Time
}

// Duration returns how long the run took.
func (r *ConversionReport) Duration() time.Duration {
	if r.CompletedAt.IsZero() {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

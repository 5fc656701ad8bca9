package driven

import (
	"context"

	"github.com/custodia-labs/propjson/internal/core/domain"
)

// HistoryStore persists conversion reports.
type HistoryStore interface {
	// Save records a completed conversion run.
	Save(ctx context.Context, report domain.ConversionReport) error

	// Get returns the run with the given ID, or domain.ErrNotFound.
	Get(ctx context.Context, runID string) (*domain.ConversionReport, error)

	// List returns up to limit runs, newest first. A limit <= 0 returns all runs.
	List(ctx context.Context, limit int) ([]domain.ConversionReport, error)
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/propjson/internal/core/domain"
	"github.com/custodia-labs/propjson/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore for testing.
type HistoryStore struct {
	mu   sync.RWMutex
	runs map[string]domain.ConversionReport
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{runs: make(map[string]domain.ConversionReport)}
}

// Save records a run, replacing any run with the same ID.
func (s *HistoryStore) Save(_ context.Context, report domain.ConversionReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[report.RunID] = cloneReport(report)
	return nil
}

// Get returns the run with the given ID.
func (s *HistoryStore) Get(_ context.Context, runID string) (*domain.ConversionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.runs[runID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := cloneReport(report)
	return &clone, nil
}

// List returns runs newest first, ties broken by ID.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.ConversionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]domain.ConversionReport, 0, len(s.runs))
	for _, r := range s.runs {
		reports = append(reports, cloneReport(r))
	}
	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].StartedAt.Equal(reports[j].StartedAt) {
			return reports[i].StartedAt.After(reports[j].StartedAt)
		}
		return reports[i].RunID < reports[j].RunID
	})

	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

func cloneReport(r domain.ConversionReport) domain.ConversionReport {
	r.Converted = append([]string(nil), r.Converted...)
	r.Skipped = append([]string(nil), r.Skipped...)
	return r
}

package driving

import (
	"context"

	"github.com/custodia-labs/propjson/internal/core/domain"
)

// ConversionService converts every file of one format in a directory
// into the other format.
type ConversionService interface {
	// ToProperties converts each .json file in srcDir into a .properties file in outDir.
	ToProperties(ctx context.Context, srcDir, outDir string) (*domain.ConversionReport, error)

	// ToJSON converts each .properties file in srcDir into a .json file in outDir.
	ToJSON(ctx context.Context, srcDir, outDir string) (*domain.ConversionReport, error)

	// Convert dispatches to ToProperties or ToJSON based on target.
	Convert(ctx context.Context, target domain.Format, srcDir, outDir string) (*domain.ConversionReport, error)

	// History returns up to limit recorded runs, newest first. A limit <= 0 returns all.
	History(ctx context.Context, limit int) ([]domain.ConversionReport, error)

	// Run returns a recorded run by ID, or an error wrapping domain.ErrNotFound.
	Run(ctx context.Context, runID string) (*domain.ConversionReport, error)
}

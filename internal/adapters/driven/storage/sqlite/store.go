package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/propjson/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/propjson/internal/core/domain"
	"github.com/custodia-labs/propjson/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// Store is a SQLite-backed conversion history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the history database in dataDir.
// If dataDir is empty, defaults to ~/.propjson/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".propjson", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_conversion_runs.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Save records a conversion run. Saving an existing run ID replaces it.
func (s *Store) Save(ctx context.Context, report domain.ConversionReport) error {
	converted, err := marshalList(report.Converted)
	if err != nil {
		return fmt.Errorf("marshalling converted: %w", err)
	}
	skipped, err := marshalList(report.Skipped)
	if err != nil {
		return fmt.Errorf("marshalling skipped: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversion_runs (id, source_dir, output_dir, target, converted, skipped, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_dir = excluded.source_dir,
			output_dir = excluded.output_dir,
			target = excluded.target,
			converted = excluded.converted,
			skipped = excluded.skipped,
			started_at = excluded.started_at,
			completed_at = excluded.completed_at
	`, report.RunID, report.SourceDir, report.OutputDir, string(report.Target),
		converted, skipped, toNanos(report.StartedAt), toNanos(report.CompletedAt))
	if err != nil {
		return fmt.Errorf("saving conversion run: %w", err)
	}
	return nil
}

// Get retrieves a conversion run by ID.
func (s *Store) Get(ctx context.Context, runID string) (*domain.ConversionReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_dir, output_dir, target, converted, skipped, started_at, completed_at
		FROM conversion_runs WHERE id = ?
	`, runID)

	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting conversion run: %w", err)
	}
	return report, nil
}

// List returns conversion runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.ConversionReport, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_dir, output_dir, target, converted, skipped, started_at, completed_at
		FROM conversion_runs ORDER BY started_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing conversion runs: %w", err)
	}
	defer rows.Close()

	var reports []domain.ConversionReport
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning conversion run: %w", err)
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*domain.ConversionReport, error) {
	var (
		report              domain.ConversionReport
		target              string
		converted, skipped  string
		startedAt, complete int64
	)

	err := row.Scan(&report.RunID, &report.SourceDir, &report.OutputDir, &target,
		&converted, &skipped, &startedAt, &complete)
	if err != nil {
		return nil, err
	}

	report.Target = domain.Format(target)
	if err := json.Unmarshal([]byte(converted), &report.Converted); err != nil {
		return nil, fmt.Errorf("unmarshalling converted: %w", err)
	}
	if err := json.Unmarshal([]byte(skipped), &report.Skipped); err != nil {
		return nil, fmt.Errorf("unmarshalling skipped: %w", err)
	}
	report.StartedAt = fromNanos(startedAt)
	report.CompletedAt = fromNanos(complete)
	return &report, nil
}

func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	return string(data), err
}

func toNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/propjson/internal/core/domain"
	"github.com/custodia-labs/propjson/internal/core/ports/driven"
	"github.com/custodia-labs/propjson/internal/core/ports/driving"
	"github.com/custodia-labs/propjson/internal/logger"
)

// Ensure ConversionService implements the interface.
var _ driving.ConversionService = (*ConversionService)(nil)

// ConversionService converts directories of .json files to .properties files
// and back using a driven.FileStore.
type ConversionService struct {
	store   driven.FileStore
	history driven.HistoryStore
	now     func() time.Time
}

// NewConversionService creates a conversion service over store.
func NewConversionService(store driven.FileStore) *ConversionService {
	return &ConversionService{
		store: store,
		now:   time.Now,
	}
}

// WithHistory records every completed run in history.
func (s *ConversionService) WithHistory(history driven.HistoryStore) *ConversionService {
	s.history = history
	return s
}

// History returns up to limit recorded runs, newest first.
// Without a history store it returns no runs.
func (s *ConversionService) History(ctx context.Context, limit int) ([]domain.ConversionReport, error) {
	if s.history == nil {
		return []domain.ConversionReport{}, nil
	}
	runs, err := s.history.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	if runs == nil {
		runs = []domain.ConversionReport{}
	}
	return runs, nil
}

// Run returns a recorded run by ID.
func (s *ConversionService) Run(ctx context.Context, runID string) (*domain.ConversionReport, error) {
	if runID == "" {
		return nil, fmt.Errorf("%w: run ID", domain.ErrMissingArgument)
	}
	if s.history == nil {
		return nil, fmt.Errorf("run %s: %w", runID, domain.ErrNotFound)
	}
	report, err := s.history.Get(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return report, nil
}

// Convert dispatches on the target format.
func (s *ConversionService) Convert(
	ctx context.Context,
	target domain.Format,
	srcDir, outDir string,
) (*domain.ConversionReport, error) {
	switch target {
	case domain.FormatProperties:
		return s.ToProperties(ctx, srcDir, outDir)
	case domain.FormatJSON:
		return s.ToJSON(ctx, srcDir, outDir)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, target)
	}
}

// ToProperties writes one .properties file per .json file in srcDir.
// Each JSON object is flattened to dot-notation keys and written as
// key=value entries sorted by key. Files that do not hold a JSON object
// are skipped.
func (s *ConversionService) ToProperties(ctx context.Context, srcDir, outDir string) (*domain.ConversionReport, error) {
	return s.run(ctx, domain.FormatProperties, srcDir, outDir, func(name string) (string, error) {
		content, err := s.store.ReadAsString(srcDir, name)
		if err != nil {
			return "", err
		}

		entries, err := JSONToEntries(content)
		if err != nil {
			return "", err
		}

		return s.store.WriteProperties(outDir, name, entries)
	})
}

// ToJSON writes one .json file per .properties file in srcDir.
// The surviving lines of each file are written as a JSON array of strings.
func (s *ConversionService) ToJSON(ctx context.Context, srcDir, outDir string) (*domain.ConversionReport, error) {
	return s.run(ctx, domain.FormatJSON, srcDir, outDir, func(name string) (string, error) {
		lines, err := s.store.ReadAsLines(ctx, srcDir, name)
		if err != nil {
			return "", err
		}

		payload, err := LinesToJSON(lines)
		if err != nil {
			return "", err
		}

		return s.store.WriteJSON(outDir, name, payload)
	})
}

// run lists the source files for target and converts each with convert.
// Invalid input skips the file; any other error stops the run.
func (s *ConversionService) run(
	ctx context.Context,
	target domain.Format,
	srcDir, outDir string,
	convert func(name string) (string, error),
) (*domain.ConversionReport, error) {
	source := target.Other()
	report := &domain.ConversionReport{
		RunID:     uuid.New().String(),
		SourceDir: srcDir,
		OutputDir: outDir,
		Target:    target,
		StartedAt: s.now(),
	}

	logger.Section("Convert " + string(source) + " to " + string(target))
	logger.Debug("run=%s src=%s out=%s", report.RunID, srcDir, outDir)

	names, err := s.store.ListByExtension(srcDir, string(source))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", source, err)
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		path, err := convert(name)
		switch {
		case err == nil:
			report.Converted = append(report.Converted, path)
			logger.Info("converted %s -> %s", name, path)
		case errors.Is(err, domain.ErrInvalidInput):
			report.Skipped = append(report.Skipped, name)
			logger.Warn("skipping %s: %v", name, err)
		default:
			return report, fmt.Errorf("failed to convert %s: %w", name, err)
		}
	}

	report.CompletedAt = s.now()
	logger.Info("converted %d file(s), skipped %d in %s",
		len(report.Converted), len(report.Skipped), report.Duration())

	// The files are already written; a history failure does not fail the run.
	if s.history != nil {
		if err := s.history.Save(ctx, *report); err != nil {
			logger.Warn("failed to record run %s: %v", report.RunID, err)
		}
	}
	return report, nil
}

// JSONToEntries decodes a JSON object and returns its leaves as key=value
// entries sorted by key. Nested objects contribute dot-notation keys;
// strings are written raw, every other value as its JSON text.
func JSONToEntries(content string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON object: %v", domain.ErrInvalidInput, err)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: expected a JSON object, got null", domain.ErrInvalidInput)
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the JSON object", domain.ErrInvalidInput)
	}

	leaves := make(map[string]string)
	if err := flatten(root, "", leaves); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(leaves))
	for k := range leaves {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, k+"="+leaves[k])
	}
	return entries, nil
}

func flatten(obj map[string]any, prefix string, out map[string]string) error {
	for key, value := range obj {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			if err := flatten(v, fullKey, out); err != nil {
				return err
			}
		case string:
			out[fullKey] = v
		case nil:
			out[fullKey] = ""
		default:
			raw, err := encode(v, "")
			if err != nil {
				return fmt.Errorf("%w: key %s: %v", domain.ErrInvalidInput, fullKey, err)
			}
			out[fullKey] = strings.TrimSuffix(raw, "\n")
		}
	}
	return nil
}

// LinesToJSON encodes lines as an indented JSON array with a trailing newline.
func LinesToJSON(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}
	return encode(lines, "  ")
}

// encode marshals v without HTML escaping; the result ends in a newline.
func encode(v any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

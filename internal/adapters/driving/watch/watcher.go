// Package watch re-runs a directory conversion whenever a source file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/propjson/internal/core/domain"
	"github.com/custodia-labs/propjson/internal/core/ports/driving"
	"github.com/custodia-labs/propjson/internal/logger"
)

// Options configures a Watcher.
type Options struct {
	// EventsPerSecond is the sustained number of conversions per second.
	EventsPerSecond float64

	// Burst is the number of conversions allowed back to back.
	Burst int

	// OnReport is called after every conversion, successful or not.
	OnReport func(*domain.ConversionReport, error)
}

// DefaultOptions returns conservative throttle settings.
func DefaultOptions() Options {
	return Options{EventsPerSecond: 2, Burst: 1}
}

// Watcher converts SourceDir into OutputDir on start and again after each
// relevant filesystem event. Bursts of events collapse into one conversion.
type Watcher struct {
	svc      driving.ConversionService
	target   domain.Format
	srcDir   string
	outDir   string
	limiter  *rate.Limiter
	onReport func(*domain.ConversionReport, error)
}

// New creates a watcher. Zero throttle values fall back to DefaultOptions.
func New(svc driving.ConversionService, target domain.Format, srcDir, outDir string, opts Options) *Watcher {
	defaults := DefaultOptions()
	if opts.EventsPerSecond <= 0 {
		opts.EventsPerSecond = defaults.EventsPerSecond
	}
	if opts.Burst <= 0 {
		opts.Burst = defaults.Burst
	}

	return &Watcher{
		svc:      svc,
		target:   target,
		srcDir:   srcDir,
		outDir:   outDir,
		limiter:  rate.NewLimiter(rate.Limit(opts.EventsPerSecond), opts.Burst),
		onReport: opts.OnReport,
	}
}

// Run blocks until ctx is cancelled or the underlying watcher fails.
// Conversion errors are logged and reported, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.target.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, w.target)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.srcDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.srcDir, err)
	}

	logger.Info("watching %s for %s changes", w.srcDir, w.target.Other().Extension())
	w.convert(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.isRelevant(event) {
				continue
			}
			logger.Debug("change detected: %s %s", event.Op, event.Name)

			if err := w.limiter.Wait(ctx); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				return err
			}
			drain(fsw.Events)
			w.convert(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// isRelevant reports whether event touches a source-format file.
func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(filepath.Base(event.Name), w.target.Other().Extension()) {
		return false
	}
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}

func (w *Watcher) convert(ctx context.Context) {
	report, err := w.svc.Convert(ctx, w.target, w.srcDir, w.outDir)
	if err != nil && ctx.Err() == nil {
		logger.Error("conversion of %s failed: %v", w.srcDir, err)
	}
	if w.onReport != nil {
		w.onReport(report, err)
	}
}

// drain discards events already queued; the next conversion covers them.
func drain(events <-chan fsnotify.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

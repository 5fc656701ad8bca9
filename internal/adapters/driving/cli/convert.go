package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/propjson/internal/adapters/driving/watch"
	"github.com/custodia-labs/propjson/internal/core/domain"
	"github.com/custodia-labs/propjson/internal/core/ports/driven"
)

var convertCmd = &cobra.Command{
	Use:   "convert [src-dir] [out-dir]",
	Short: "Convert every file in a directory to the other format",
	Long: `Convert every .json file to .properties (--to properties), or every
.properties file to .json (--to json).

JSON objects are flattened to dot-notation keys and written as sorted key=value
entries. Properties files are written as a JSON array of their non-comment lines.

Directories default to convert.source_dir and convert.output_dir from the config file.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConvert,
}

var watchCmd = &cobra.Command{
	Use:   "watch [src-dir] [out-dir]",
	Short: "Convert a directory and re-convert whenever a source file changes",
	Long: `Run a conversion like "convert", then keep watching the source directory
and convert again after files are created, written, renamed or removed.
Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runWatch,
}

// convertTo is the --to flag shared by convert and watch.
var convertTo string

func init() {
	for _, c := range []*cobra.Command{convertCmd, watchCmd} {
		c.Flags().StringVarP(&convertTo, "to", "t", string(domain.FormatProperties), "Target format (properties or json)")
		rootCmd.AddCommand(c)
	}
}

// resolveDirs returns the source and output directories from args,
// falling back to the config file.
func resolveDirs(args []string) (string, string, error) {
	var srcDir, outDir string
	if len(args) > 0 {
		srcDir = args[0]
	}
	if len(args) > 1 {
		outDir = args[1]
	}

	if srcDir == "" || outDir == "" {
		cfg, err := config()
		if err != nil {
			return "", "", fmt.Errorf("failed to open config: %w", err)
		}
		if srcDir == "" {
			srcDir = cfg.GetString(driven.KeySourceDir)
		}
		if outDir == "" {
			outDir = cfg.GetString(driven.KeyOutputDir)
		}
	}

	if srcDir == "" {
		return "", "", errors.New("no source directory given and convert.source_dir is not set")
	}
	if outDir == "" {
		outDir = srcDir
	}
	return srcDir, outDir, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}

	target, err := domain.ParseFormat(convertTo)
	if err != nil {
		return err
	}

	srcDir, outDir, err := resolveDirs(args)
	if err != nil {
		return err
	}

	report, err := conversionService.Convert(cmd.Context(), target, srcDir, outDir)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	printReport(cmd.OutOrStdout(), report)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}

	target, err := domain.ParseFormat(convertTo)
	if err != nil {
		return err
	}

	srcDir, outDir, err := resolveDirs(args)
	if err != nil {
		return err
	}

	opts := watch.DefaultOptions()
	if cfg, err := config(); err == nil {
		if v := cfg.GetFloat(driven.KeyEventsPerSecond); v > 0 {
			opts.EventsPerSecond = v
		}
		if v := cfg.GetInt(driven.KeyBurst); v > 0 {
			opts.Burst = v
		}
	}

	out := cmd.OutOrStdout()
	opts.OnReport = func(report *domain.ConversionReport, err error) {
		if err == nil {
			printReport(out, report)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", srcDir)
	return watch.New(conversionService, target, srcDir, outDir, opts).Run(ctx)
}

// printReport writes a human-readable summary of a conversion run.
func printReport(w io.Writer, report *domain.ConversionReport) {
	s := outputStyles(w)

	fmt.Fprintln(w, s.Title.Render(fmt.Sprintf("Converted %s -> %s", report.SourceDir, report.OutputDir)))
	for _, path := range report.Converted {
		fmt.Fprintf(w, "  %s %s\n", s.Success.Render("wrote"), path)
	}
	for _, name := range report.Skipped {
		fmt.Fprintf(w, "  %s %s\n", s.Warning.Render("skipped"), name)
	}
	fmt.Fprintln(w, s.Muted.Render(fmt.Sprintf("%d converted, %d skipped (run %s, %s)",
		len(report.Converted), len(report.Skipped), report.RunID, report.Duration())))
}

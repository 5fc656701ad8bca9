package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded conversion runs",
	Long: `Without arguments, list recent conversion runs, newest first.
With a run ID, print the full report for that run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		report, err := conversionService.Run(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printReport(out, report)
		return nil
	}

	runs, err := conversionService.History(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No conversion runs recorded.")
		return nil
	}

	s := outputStyles(out)
	for _, r := range runs {
		fmt.Fprintf(out, "%s  %s  %-10s  %d converted, %d skipped  %s -> %s\n",
			s.Muted.Render(r.RunID),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Target,
			len(r.Converted), len(r.Skipped),
			r.SourceDir, r.OutputDir)
	}
	return nil
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/propjson/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List .json or .properties files in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

var catCmd = &cobra.Command{
	Use:   "cat [dir] [file]",
	Short: "Print a file's contents",
	Args:  cobra.ExactArgs(2),
	RunE:  runCat,
}

var linesCmd = &cobra.Command{
	Use:   "lines [dir] [file]",
	Short: "Print a file's lines without comments or blank lines",
	Long: `Print every line of a file except empty or whitespace-only lines and
lines starting with '#' or '!'. Lines are printed verbatim, in file order.`,
	Args: cobra.ExactArgs(2),
	RunE: runLines,
}

var writeJSONCmd = &cobra.Command{
	Use:   "write-json [dir] [file] [payload]",
	Short: "Write a JSON payload to <dir>/<file>.json",
	Long: `Write a payload verbatim to <dir>/<file>.json, replacing any .json or
.properties extension on file. The payload is read from stdin when omitted or "-".`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runWriteJSON,
}

var writePropertiesCmd = &cobra.Command{
	Use:   "write-properties [dir] [file] [entry...]",
	Short: "Write entries to <dir>/<file>.properties",
	Long: `Write entries to <dir>/<file>.properties, one entry per record with a blank
line between entries. Newlines inside an entry are written as a literal \n.
When no entries are given, each line of stdin is an entry.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runWriteProperties,
}

// listExt is the --ext flag of the list command.
var listExt string

func init() {
	listCmd.Flags().StringVarP(&listExt, "ext", "e", string(domain.FormatJSON), "Extension to list (json or properties)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(linesCmd)
	rootCmd.AddCommand(writeJSONCmd)
	rootCmd.AddCommand(writePropertiesCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if err := requireFileStore(); err != nil {
		return err
	}

	format, err := domain.ParseFormat(listExt)
	if err != nil {
		return err
	}

	dir := args[0]
	names, err := fileStore.ListByExtension(dir, string(format))
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No %s files found in %s\n", format.Extension(), dir)
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

func runCat(cmd *cobra.Command, args []string) error {
	if err := requireFileStore(); err != nil {
		return err
	}

	content, err := fileStore.ReadAsString(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), content)
	return nil
}

func runLines(cmd *cobra.Command, args []string) error {
	if err := requireFileStore(); err != nil {
		return err
	}

	linesChan, errsChan := fileStore.StreamLines(cmd.Context(), args[0], args[1])

	out := cmd.OutOrStdout()
	for line := range linesChan {
		fmt.Fprintln(out, line)
	}
	if err := <-errsChan; err != nil {
		return fmt.Errorf("failed to read lines: %w", err)
	}
	return nil
}

func runWriteJSON(cmd *cobra.Command, args []string) error {
	if err := requireFileStore(); err != nil {
		return err
	}

	var payload string
	if len(args) == 3 && args[2] != "-" {
		payload = args[2]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		payload = string(data)
	}

	path, err := fileStore.WriteJSON(args[0], args[1], payload)
	if err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}

	s := outputStyles(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), s.Success.Render("Wrote "+path))
	return nil
}

func readEntries(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 2 {
		return args[2:], nil
	}

	// ReadString has no line length limit, unlike bufio.Scanner.
	var entries []string
	br := bufio.NewReader(cmd.InOrStdin())
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			entries = append(entries, strings.TrimSuffix(line, "\r"))
		}
		if err != nil {
			return entries, nil
		}
	}
}

func runWriteProperties(cmd *cobra.Command, args []string) error {
	if err := requireFileStore(); err != nil {
		return err
	}

	entries, err := readEntries(cmd, args)
	if err != nil {
		return err
	}

	path, err := fileStore.WriteProperties(args[0], args[1], entries)
	if err != nil {
		return fmt.Errorf("failed to write properties: %w", err)
	}

	s := outputStyles(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), s.Success.Render(fmt.Sprintf("Wrote %d entries to %s", len(entries), path)))
	return nil
}

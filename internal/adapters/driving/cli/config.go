package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/propjson/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show or change values in the TOML config file.

Known keys:
  convert.source_dir        default source directory for convert and watch
  convert.output_dir        default output directory for convert and watch
  watch.events_per_second   sustained conversions per second while watching
  watch.burst               conversions allowed back to back while watching`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a config value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	cfg, err := config()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cfg.Path())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config()
	if err != nil {
		return err
	}

	val, ok := cfg.Get(args[0])
	if !ok {
		return fmt.Errorf("config key %q is not set", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config()
	if err != nil {
		return err
	}

	key, value := args[0], parseValue(args[0], args[1])
	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
	return nil
}

// parseValue stores numbers as numbers so typed getters can read them back.
// Directory keys always stay strings; "0700" is a name, not 448.
func parseValue(key, s string) any {
	switch key {
	case driven.KeySourceDir, driven.KeyOutputDir:
		return s
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

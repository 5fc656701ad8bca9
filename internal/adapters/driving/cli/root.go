// Package cli implements the propjson command line interface with cobra.
//
// Commands reach the core only through the ports configured with Configure;
// cmd/propjson wires the concrete adapters.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/propjson/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/propjson/internal/core/ports/driven"
	"github.com/custodia-labs/propjson/internal/core/ports/driving"
	"github.com/custodia-labs/propjson/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

// Ports used by the commands.
var (
	fileStore         driven.FileStore
	conversionService driving.ConversionService
	configStore       driven.ConfigStore
	openConfig        func(dir string) (driven.ConfigStore, error)
)

// Dependencies holds the adapters the CLI runs against.
type Dependencies struct {
	FileStore  driven.FileStore
	Conversion driving.ConversionService
	// OpenConfig opens the config store for the --config directory.
	// An empty directory selects the default location.
	OpenConfig func(dir string) (driven.ConfigStore, error)
}

// Configure installs the adapters used by every command.
func Configure(deps Dependencies) {
	fileStore = deps.FileStore
	conversionService = deps.Conversion
	openConfig = deps.OpenConfig
	configStore = nil
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "propjson",
	Short: "Convert between JSON and .properties files",
	Long: `propjson lists, reads and writes flat .json and .properties files in a directory,
and converts whole directories from one format to the other.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Config directory (default ~/.propjson)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	return nil
}

// config returns the config store, opening it on first use.
func config() (driven.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}
	if openConfig == nil {
		return nil, errors.New("config store not configured")
	}

	store, err := openConfig(configDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("using config %s", store.Path())
	configStore = store
	return store, nil
}

func requireFileStore() error {
	if fileStore == nil {
		return errors.New("file store not configured")
	}
	return nil
}

// outputStyles returns coloured styles when w is a terminal.
func outputStyles(w io.Writer) *styles.Styles {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return styles.NewStyles(nil)
	}
	return styles.Plain()
}

// Command propjson converts between JSON and .properties files.
package main

import (
	"os"

	"github.com/custodia-labs/propjson/internal/adapters/driven/config/file"
	"github.com/custodia-labs/propjson/internal/adapters/driven/storage/fs"
	"github.com/custodia-labs/propjson/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/propjson/internal/adapters/driving/cli"
	"github.com/custodia-labs/propjson/internal/core/ports/driven"
	"github.com/custodia-labs/propjson/internal/core/services"
	"github.com/custodia-labs/propjson/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version string

func main() {
	os.Exit(run())
}

func run() int {
	store := fs.New()
	conversion := services.NewConversionService(store)

	// Conversions still work when the history database cannot be opened.
	history, err := sqlite.NewStore(os.Getenv("PROPJSON_DATA_DIR"))
	if err != nil {
		logger.Error("run history disabled: %v", err)
	} else {
		defer history.Close()
		conversion.WithHistory(history)
	}

	cli.SetVersion(version)
	cli.Configure(cli.Dependencies{
		FileStore:  store,
		Conversion: conversion,
		OpenConfig: func(dir string) (driven.ConfigStore, error) {
			return file.NewConfigStore(dir)
		},
	})

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}

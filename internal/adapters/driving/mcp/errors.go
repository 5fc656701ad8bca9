// Package mcp provides an MCP (Model Context Protocol) server adapter for propjson.
// It lets AI assistants list, read, write and convert .json and .properties files.
package mcp

import "errors"

// ErrMissingFileStore is returned when the file store is not provided.
var ErrMissingFileStore = errors.New("mcp: file store is required")

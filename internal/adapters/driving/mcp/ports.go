package mcp

import (
	"github.com/custodia-labs/propjson/internal/core/ports/driven"
	"github.com/custodia-labs/propjson/internal/core/ports/driving"
)

// Ports aggregates the interfaces required by the MCP server.
type Ports struct {
	// Files backs the file tools.
	Files driven.FileStore

	// Conversion backs the convert tool. Optional; the tool is not
	// registered without it.
	Conversion driving.ConversionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Files == nil {
		return ErrMissingFileStore
	}
	return nil
}

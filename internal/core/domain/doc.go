// Package domain defines the core types for propjson.
//
// This package is the innermost layer of the hexagonal architecture.
// It has NO external dependencies and defines:
//
//   - Format: the two supported file formats and their extensions
//   - ConversionReport: the outcome of converting a directory
//   - Sentinel errors shared by every layer
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

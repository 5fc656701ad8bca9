// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - FileStore: directory listing, reads and writes of .json and .properties files
//   - ConfigStore: application configuration
//   - HistoryStore: record of past conversion runs (optional)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

// Package sqlite provides a SQLite-based implementation of driven.HistoryStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.propjson/data/history.db; cmd/propjson
// honours PROPJSON_DATA_DIR to move it.
package sqlite

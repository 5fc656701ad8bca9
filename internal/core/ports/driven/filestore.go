package driven

import "context"

// FileStore reads and writes flat .json and .properties files in a directory.
// Every call is independent: nothing is cached, and each call opens and
// releases its own file handle. Concurrent writers to one file race.
type FileStore interface {
	// ListByExtension returns the names of entries in dir ending in "."+ext,
	// in directory-listing order. Returns domain.ErrPathNotFound if dir
	// does not exist, and an empty slice if nothing matches.
	ListByExtension(dir, ext string) ([]string, error)

	// ReadAsString returns the whole file as a UTF-8 string.
	// Returns domain.ErrPathNotFound if the file does not exist.
	ReadAsString(dir, file string) (string, error)

	// ReadAsLines reads the file line by line, in order, dropping lines that
	// are empty, whitespace-only, or start with '#' or '!'.
	// Returns domain.ErrPathNotFound before reading if the file does not exist.
	ReadAsLines(ctx context.Context, dir, file string) ([]string, error)

	// StreamLines delivers the same lines as ReadAsLines as they are read.
	// Both channels are closed when reading ends; at most one error is sent.
	StreamLines(ctx context.Context, dir, file string) (<-chan string, <-chan error)

	// WriteProperties writes entries to <dir>/<file without extension>.properties.
	// Embedded newlines are escaped as a literal backslash-n and each entry
	// is followed by a blank line. Returns the written path.
	WriteProperties(dir, file string, entries []string) (string, error)

	// WriteJSON writes payload verbatim to <dir>/<file without extension>.json.
	// Returns the written path.
	WriteJSON(dir, file, payload string) (string, error)
}

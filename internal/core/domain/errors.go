package domain

import "errors"

// Domain errors represent failures callers are expected to branch on.
// Adapters wrap them with context; use errors.Is to test.
var (
	// ErrMissingArgument indicates a required argument, such as a file name, was empty.
	ErrMissingArgument = errors.New("missing argument")

	// ErrPathNotFound indicates a directory or file does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrNotADirectory indicates a path exists but is not a directory.
	ErrNotADirectory = errors.New("not a directory")

	// ErrInvalidInput indicates malformed input, such as undecodable JSON.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested record, such as a conversion run, does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedFormat indicates a format other than json or properties.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

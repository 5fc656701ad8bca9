// Package fs implements driven.FileStore on the local filesystem.
//
// Missing directories and files are reported as domain.ErrPathNotFound and
// logged as warnings. Writes create or truncate the target in place; there is
// no atomic replace and no locking.
package fs

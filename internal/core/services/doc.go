// Package services implements the driving port interfaces.
// Services contain the conversion logic and reach the filesystem only
// through driven.FileStore.
package services

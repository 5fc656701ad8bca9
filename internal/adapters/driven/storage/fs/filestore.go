package fs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/propjson/internal/core/domain"
	"github.com/custodia-labs/propjson/internal/core/ports/driven"
	"github.com/custodia-labs/propjson/internal/logger"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

const filePerm = 0644

// FileStore is a stateless driven.FileStore backed by the os package.
type FileStore struct{}

// New creates a filesystem-backed file store.
func New() *FileStore {
	return &FileStore{}
}

// ListByExtension returns the names in dir that end in "."+ext.
func (s *FileStore) ListByExtension(dir, ext string) ([]string, error) {
	if err := requireDir(dir, "source"); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	suffix := "." + strings.TrimPrefix(ext, ".")
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		names = append(names, entry.Name())
	}

	logger.Debug("found %d %s file(s) in %s", len(names), suffix, dir)
	return names, nil
}

// ReadAsString returns the contents of dir/file.
func (s *FileStore) ReadAsString(dir, file string) (string, error) {
	path, err := requireFile(dir, file)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(data), nil
}

// ReadAsLines returns the non-comment, non-blank lines of dir/file in order.
func (s *FileStore) ReadAsLines(ctx context.Context, dir, file string) ([]string, error) {
	path, err := requireFile(dir, file)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	lines := []string{}
	err = scanLines(ctx, f, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read lines from %s: %w", path, err)
	}
	return lines, nil
}

// StreamLines sends the lines ReadAsLines would return as they are read.
// A missing file is reported on the error channel before any line is sent.
func (s *FileStore) StreamLines(ctx context.Context, dir, file string) (<-chan string, <-chan error) {
	linesChan := make(chan string)
	errsChan := make(chan error, 1)

	go func() {
		defer close(linesChan)
		defer close(errsChan)

		path, err := requireFile(dir, file)
		if err != nil {
			errsChan <- err
			return
		}

		f, err := os.Open(path)
		if err != nil {
			errsChan <- fmt.Errorf("failed to open file %s: %w", path, err)
			return
		}
		defer f.Close()

		err = scanLines(ctx, f, func(line string) error {
			select {
			case linesChan <- line:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			errsChan <- fmt.Errorf("failed to read lines from %s: %w", path, err)
		}
	}()

	return linesChan, errsChan
}

// WriteProperties writes entries to dir as a .properties file.
func (s *FileStore) WriteProperties(dir, file string, entries []string) (string, error) {
	return s.write(dir, file, domain.FormatProperties, func(w *bufio.Writer) error {
		for _, entry := range entries {
			if _, err := w.WriteString(domain.EscapeEntry(entry) + "\n\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteJSON writes payload to dir as a .json file, unmodified.
func (s *FileStore) WriteJSON(dir, file, payload string) (string, error) {
	return s.write(dir, file, domain.FormatJSON, func(w *bufio.Writer) error {
		_, err := w.WriteString(payload)
		return err
	})
}

func (s *FileStore) write(dir, file string, format domain.Format, fill func(*bufio.Writer) error) (string, error) {
	if err := requireDir(dir, "output"); err != nil {
		return "", err
	}

	name, err := format.FileName(file)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file %s: %w", path, err)
	}

	logger.Debug("wrote %s", path)
	return path, nil
}

// scanLines reads r line by line and calls emit for every line that is not
// a comment or blank. "\n", "\r\n" and a lone "\r" all end a line.
func scanLines(ctx context.Context, r io.Reader, emit func(string) error) error {
	br := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := readLine(br)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}

		if !domain.IsCommentOrBlank(line) {
			if err := emit(line); err != nil {
				return err
			}
		}

		if readErr != nil {
			return nil
		}
	}
}

// readLine returns the next line without its terminator. At the end of
// input it returns the remaining text with io.EOF.
func readLine(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return sb.String(), err
		}

		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
			if next, err := br.Peek(1); err == nil && next[0] == '\n' {
				_, _ = br.Discard(1)
			}
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

// requireDir checks that dir exists and is a directory.
// role names the directory in the warning ("source" or "output").
func requireDir(dir, role string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("the %s directory [ %s ] does not exist", role, dir)
			return fmt.Errorf("%s directory %s: %w", role, dir, domain.ErrPathNotFound)
		}
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		logger.Warn("the %s directory [ %s ] is not a valid directory", role, dir)
		return fmt.Errorf("%s directory %s: %w", role, dir, domain.ErrNotADirectory)
	}
	return nil
}

// requireFile joins dir and file and checks the result exists.
func requireFile(dir, file string) (string, error) {
	if file == "" {
		return "", fmt.Errorf("%w: no file name was specified", domain.ErrMissingArgument)
	}

	path := filepath.Join(dir, file)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logger.Warn("the file identified by the full path [ %s ] is not found", path)
			return "", fmt.Errorf("file %s: %w", path, domain.ErrPathNotFound)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return path, nil
}

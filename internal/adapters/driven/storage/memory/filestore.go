package memory

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/propjson/internal/core/domain"
	"github.com/custodia-labs/propjson/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore is an in-memory implementation of driven.FileStore.
// Directories must be created with AddDir before they can be listed or
// written to. Names are listed in sorted order, matching os.ReadDir.
type FileStore struct {
	mu   sync.RWMutex
	dirs map[string]map[string]string
}

// NewFileStore creates an empty in-memory file store.
func NewFileStore() *FileStore {
	return &FileStore{
		dirs: make(map[string]map[string]string),
	}
}

// AddDir creates an empty directory if it does not already exist.
func (s *FileStore) AddDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dir = path.Clean(dir)
	if _, ok := s.dirs[dir]; !ok {
		s.dirs[dir] = make(map[string]string)
	}
}

// Put stores a file, creating its directory if needed.
func (s *FileStore) Put(dir, name, content string) {
	s.AddDir(dir)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirs[path.Clean(dir)][name] = content
}

// Contents returns the stored content of dir/name.
func (s *FileStore) Contents(dir, name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files, ok := s.dirs[path.Clean(dir)]
	if !ok {
		return "", false
	}
	content, ok := files[name]
	return content, ok
}

// ListByExtension returns the names in dir that end in "."+ext.
func (s *FileStore) ListByExtension(dir, ext string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, ok := s.dirs[path.Clean(dir)]
	if !ok {
		return nil, fmt.Errorf("directory %s: %w", dir, domain.ErrPathNotFound)
	}

	suffix := "." + strings.TrimPrefix(ext, ".")
	names := make([]string, 0, len(files))
	for name := range files {
		if strings.HasSuffix(name, suffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadAsString returns the content of dir/file.
func (s *FileStore) ReadAsString(dir, file string) (string, error) {
	if file == "" {
		return "", fmt.Errorf("%w: no file name was specified", domain.ErrMissingArgument)
	}
	content, ok := s.Contents(dir, file)
	if !ok {
		return "", fmt.Errorf("file %s: %w", path.Join(dir, file), domain.ErrPathNotFound)
	}
	return content, nil
}

// ReadAsLines returns the non-comment, non-blank lines of dir/file.
func (s *FileStore) ReadAsLines(ctx context.Context, dir, file string) ([]string, error) {
	content, err := s.ReadAsString(dir, file)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return domain.FilterLines(domain.SplitLines(content)), nil
}

// StreamLines sends the lines ReadAsLines would return.
func (s *FileStore) StreamLines(ctx context.Context, dir, file string) (<-chan string, <-chan error) {
	linesChan := make(chan string)
	errsChan := make(chan error, 1)

	go func() {
		defer close(linesChan)
		defer close(errsChan)

		lines, err := s.ReadAsLines(ctx, dir, file)
		if err != nil {
			errsChan <- err
			return
		}
		for _, line := range lines {
			select {
			case linesChan <- line:
			case <-ctx.Done():
				errsChan <- ctx.Err()
				return
			}
		}
	}()

	return linesChan, errsChan
}

// WriteProperties stores entries as a .properties file in dir.
func (s *FileStore) WriteProperties(dir, file string, entries []string) (string, error) {
	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(domain.EscapeEntry(entry))
		b.WriteString("\n\n")
	}
	return s.write(dir, file, domain.FormatProperties, b.String())
}

// WriteJSON stores payload as a .json file in dir.
func (s *FileStore) WriteJSON(dir, file, payload string) (string, error) {
	return s.write(dir, file, domain.FormatJSON, payload)
}

func (s *FileStore) write(dir, file string, format domain.Format, content string) (string, error) {
	name, err := format.FileName(file)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, ok := s.dirs[path.Clean(dir)]
	if !ok {
		return "", fmt.Errorf("output directory %s: %w", dir, domain.ErrPathNotFound)
	}
	files[name] = content
	return path.Join(dir, name), nil
}

package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/propjson/internal/core/domain"
	"github.com/custodia-labs/propjson/internal/core/ports/driven"
	"github.com/custodia-labs/propjson/internal/logger"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestNew(t *testing.T) {
	store := New()
	require.NotNil(t, store)

	var _ driven.FileStore = store
}

func TestFileStore_ListByExtension(t *testing.T) {
	t.Run("returns only matching files", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"a.json", "b.json", "c.json"} {
			writeFile(t, dir, name, "{}")
		}
		for _, name := range []string{"a.properties", "notes.txt", "json", "a.json.bak"} {
			writeFile(t, dir, name, "")
		}

		names, err := New().ListByExtension(dir, "json")
		require.NoError(t, err)

		sort.Strings(names)
		assert.Equal(t, []string{"a.json", "b.json", "c.json"}, names)
	})

	t.Run("accepts extension with leading dot", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "messages.properties", "a=b")

		names, err := New().ListByExtension(dir, ".properties")
		require.NoError(t, err)
		assert.Equal(t, []string{"messages.properties"}, names)
	})

	t.Run("skips directories with matching names", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))
		writeFile(t, dir, "real.json", "{}")

		names, err := New().ListByExtension(dir, "json")
		require.NoError(t, err)
		assert.Equal(t, []string{"real.json"}, names)
	})

	t.Run("empty directory returns empty slice", func(t *testing.T) {
		names, err := New().ListByExtension(t.TempDir(), "json")
		require.NoError(t, err)
		assert.NotNil(t, names)
		assert.Empty(t, names)
	})

	t.Run("missing directory returns ErrPathNotFound", func(t *testing.T) {
		names, err := New().ListByExtension(filepath.Join(t.TempDir(), "missing"), "json")
		assert.ErrorIs(t, err, domain.ErrPathNotFound)
		assert.Nil(t, names)
	})

	t.Run("file instead of directory returns ErrNotADirectory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "plain.json", "{}")

		_, err := New().ListByExtension(filepath.Join(dir, "plain.json"), "json")
		assert.ErrorIs(t, err, domain.ErrNotADirectory)
	})
}

func TestFileStore_ReadAsString(t *testing.T) {
	t.Run("returns file contents", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "greeting.json", `{"hello":"wörld"}`)

		content, err := New().ReadAsString(dir, "greeting.json")
		require.NoError(t, err)
		assert.Equal(t, `{"hello":"wörld"}`, content)
	})

	t.Run("missing file returns ErrPathNotFound", func(t *testing.T) {
		_, err := New().ReadAsString(t.TempDir(), "missing.json")
		assert.ErrorIs(t, err, domain.ErrPathNotFound)
	})

	t.Run("missing directory returns ErrPathNotFound", func(t *testing.T) {
		_, err := New().ReadAsString(filepath.Join(t.TempDir(), "nope"), "a.json")
		assert.ErrorIs(t, err, domain.ErrPathNotFound)
	})

	t.Run("empty file name returns ErrMissingArgument", func(t *testing.T) {
		_, err := New().ReadAsString(t.TempDir(), "")
		assert.ErrorIs(t, err, domain.ErrMissingArgument)
	})
}

func TestFileStore_ReadAsLines(t *testing.T) {
	t.Run("filters comments and blank lines", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "app.properties", "# comment\n\nkeep me\n!note\n  \nend\n")

		lines, err := New().ReadAsLines(context.Background(), dir, "app.properties")
		require.NoError(t, err)
		assert.Equal(t, []string{"keep me", "end"}, lines)
	})

	t.Run("keeps last line without trailing newline", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "app.properties", "first\nlast")

		lines, err := New().ReadAsLines(context.Background(), dir, "app.properties")
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "last"}, lines)
	})

	t.Run("strips carriage returns", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "win.properties", "a=1\r\n\r\n#c\r\nb=2\r\n")

		lines, err := New().ReadAsLines(context.Background(), dir, "win.properties")
		require.NoError(t, err)
		assert.Equal(t, []string{"a=1", "b=2"}, lines)
	})

	t.Run("treats a lone carriage return as a line break", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "mac.properties", "# c\rkeep\r!x\r")

		lines, err := New().ReadAsLines(context.Background(), dir, "mac.properties")
		require.NoError(t, err)
		assert.Equal(t, []string{"keep"}, lines)
	})

	t.Run("mixed line endings", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "mixed.properties", "a\r\nb\rc\n\r\nd")

		lines, err := New().ReadAsLines(context.Background(), dir, "mixed.properties")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, lines)
	})

	t.Run("keeps indented comment markers verbatim", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "app.properties", "  # not at column zero\n")

		lines, err := New().ReadAsLines(context.Background(), dir, "app.properties")
		require.NoError(t, err)
		assert.Equal(t, []string{"  # not at column zero"}, lines)
	})

	t.Run("handles lines longer than the default scanner buffer", func(t *testing.T) {
		dir := t.TempDir()
		long := strings.Repeat("x", 200*1024)
		writeFile(t, dir, "long.properties", long+"\n")

		lines, err := New().ReadAsLines(context.Background(), dir, "long.properties")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, long, lines[0])
	})

	t.Run("empty file returns empty slice", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "empty.properties", "")

		lines, err := New().ReadAsLines(context.Background(), dir, "empty.properties")
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("missing file returns ErrPathNotFound", func(t *testing.T) {
		lines, err := New().ReadAsLines(context.Background(), t.TempDir(), "missing.properties")
		assert.ErrorIs(t, err, domain.ErrPathNotFound)
		assert.Nil(t, lines)
	})

	t.Run("cancelled context stops reading", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "app.properties", "a\nb\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New().ReadAsLines(ctx, dir, "app.properties")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFileStore_StreamLines(t *testing.T) {
	t.Run("streams filtered lines in order", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "app.properties", "# header\none\n\ntwo\n!x\nthree\n")

		linesChan, errsChan := New().StreamLines(context.Background(), dir, "app.properties")

		var lines []string
		for line := range linesChan {
			lines = append(lines, line)
		}
		for err := range errsChan {
			t.Fatalf("unexpected error: %v", err)
		}

		assert.Equal(t, []string{"one", "two", "three"}, lines)
	})

	t.Run("reports missing file on error channel", func(t *testing.T) {
		linesChan, errsChan := New().StreamLines(context.Background(), t.TempDir(), "missing.properties")

		for range linesChan {
			t.Fatal("expected no lines")
		}
		err := <-errsChan
		assert.ErrorIs(t, err, domain.ErrPathNotFound)
	})
}

func TestFileStore_WriteProperties(t *testing.T) {
	t.Run("escapes newlines and separates entries", func(t *testing.T) {
		dir := t.TempDir()

		path, err := New().WriteProperties(dir, "bundle.json", []string{"x", "y\nz"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "bundle.properties"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "x\n\ny\\nz\n\n", string(data))
	})

	t.Run("round trip through a plain line split keeps escapes", func(t *testing.T) {
		dir := t.TempDir()

		path, err := New().WriteProperties(dir, "bundle", []string{"x", "y\nz"})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var lines []string
		for _, line := range strings.Split(string(data), "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}
		assert.Equal(t, []string{"x", `y\nz`}, lines)
	})

	t.Run("truncates an existing file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "bundle.properties", strings.Repeat("old\n", 100))

		path, err := New().WriteProperties(dir, "bundle.properties", []string{"new"})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new\n\n", string(data))
	})

	t.Run("no entries writes an empty file", func(t *testing.T) {
		dir := t.TempDir()

		path, err := New().WriteProperties(dir, "empty.json", nil)
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("missing directory returns ErrPathNotFound", func(t *testing.T) {
		path, err := New().WriteProperties(filepath.Join(t.TempDir(), "missing"), "a.json", []string{"x"})
		assert.ErrorIs(t, err, domain.ErrPathNotFound)
		assert.Empty(t, path)
	})

	t.Run("empty file name returns ErrMissingArgument", func(t *testing.T) {
		_, err := New().WriteProperties(t.TempDir(), "", []string{"x"})
		assert.ErrorIs(t, err, domain.ErrMissingArgument)
	})
}

func TestFileStore_WriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		expected string
	}{
		{name: "properties extension replaced", file: "bundle.properties", expected: "bundle.json"},
		{name: "json extension kept", file: "bundle.json", expected: "bundle.json"},
		{name: "no extension", file: "bundle", expected: "bundle.json"},
		{name: "unknown extension appended", file: "bundle.txt", expected: "bundle.txt.json"},
	}

	payload := "{\n  \"a\": \"line\\nbreak\"\n}"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			path, err := New().WriteJSON(dir, tt.file, payload)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.expected), path)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, payload, string(data))
		})
	}

	t.Run("missing directory returns ErrPathNotFound", func(t *testing.T) {
		_, err := New().WriteJSON(filepath.Join(t.TempDir(), "missing"), "a.json", "{}")
		assert.ErrorIs(t, err, domain.ErrPathNotFound)
	})
}

func TestFileStore_WarnsOnMissingPath(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()

	missing := filepath.Join(t.TempDir(), "missing")
	_, err := New().ListByExtension(missing, "json")
	require.Error(t, err)

	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), missing)
}

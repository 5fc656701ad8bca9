package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/propjson/internal/core/domain"
)

func TestListCmd_HasExtFlag(t *testing.T) {
	flag := listCmd.Flags().Lookup("ext")
	require.NotNil(t, flag, "ext flag should exist")
	assert.Equal(t, "e", flag.Shorthand)
	assert.Equal(t, "json", flag.DefValue)
}

func TestListCmd_RequiresDir(t *testing.T) {
	setupTestServices(t)

	_, _, err := run(t, nil, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestListCmd_ListsJSONByDefault(t *testing.T) {
	env := setupTestServices(t)
	env.store.Put("/dir", "b.json", "{}")
	env.store.Put("/dir", "a.json", "{}")
	env.store.Put("/dir", "c.properties", "")

	stdout, _, err := run(t, nil, "list", "/dir")

	require.NoError(t, err)
	assert.Equal(t, "a.json\nb.json\n", stdout)
}

func TestListCmd_WithExtFlag(t *testing.T) {
	env := setupTestServices(t)
	env.store.Put("/dir", "a.json", "{}")
	env.store.Put("/dir", "c.properties", "")

	stdout, _, err := run(t, nil, "list", "--ext", "properties", "/dir")

	require.NoError(t, err)
	assert.Equal(t, "c.properties\n", stdout)
}

func TestListCmd_NoMatches(t *testing.T) {
	env := setupTestServices(t)
	env.store.AddDir("/dir")

	stdout, stderr, err := run(t, nil, "list", "/dir")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "No .json files found in /dir")
}

func TestListCmd_MissingDir(t *testing.T) {
	setupTestServices(t)

	_, _, err := run(t, nil, "list", "/missing")

	assert.ErrorIs(t, err, domain.ErrPathNotFound)
}

func TestListCmd_UnknownExt(t *testing.T) {
	env := setupTestServices(t)
	env.store.AddDir("/dir")

	_, _, err := run(t, nil, "list", "-e", "yaml", "/dir")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestCatCmd(t *testing.T) {
	env := setupTestServices(t)
	env.store.Put("/dir", "a.json", "{\n  \"a\": 1\n}\n")

	stdout, _, err := run(t, nil, "cat", "/dir", "a.json")

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", stdout)
}

func TestCatCmd_MissingFile(t *testing.T) {
	env := setupTestServices(t)
	env.store.AddDir("/dir")

	_, _, err := run(t, nil, "cat", "/dir", "missing.json")

	assert.ErrorIs(t, err, domain.ErrPathNotFound)
}

func TestLinesCmd(t *testing.T) {
	env := setupTestServices(t)
	env.store.Put("/dir", "a.properties", "# comment\n\nkeep me\n!note\n  \nend\n")

	stdout, _, err := run(t, nil, "lines", "/dir", "a.properties")

	require.NoError(t, err)
	assert.Equal(t, "keep me\nend\n", stdout)
}

func TestLinesCmd_MissingFile(t *testing.T) {
	env := setupTestServices(t)
	env.store.AddDir("/dir")

	stdout, _, err := run(t, nil, "lines", "/dir", "missing.properties")

	assert.ErrorIs(t, err, domain.ErrPathNotFound)
	assert.Empty(t, stdout)
}

func TestWriteJSONCmd_FromArg(t *testing.T) {
	env := setupTestServices(t)
	env.store.AddDir("/out")

	stdout, _, err := run(t, nil, "write-json", "/out", "bundle.properties", `{"a":"b"}`)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote /out/bundle.json")

	content, ok := env.store.Contents("/out", "bundle.json")
	require.True(t, ok)
	assert.Equal(t, `{"a":"b"}`, content)
}

func TestWriteJSONCmd_FromStdin(t *testing.T) {
	for _, args := range [][]string{
		{"write-json", "/out", "bundle"},
		{"write-json", "/out", "bundle", "-"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			env := setupTestServices(t)
			env.store.AddDir("/out")

			_, _, err := run(t, strings.NewReader("[1, 2]\n"), args...)
			require.NoError(t, err)

			content, ok := env.store.Contents("/out", "bundle.json")
			require.True(t, ok)
			assert.Equal(t, "[1, 2]\n", content)
		})
	}
}

func TestWriteJSONCmd_MissingDir(t *testing.T) {
	setupTestServices(t)

	_, _, err := run(t, nil, "write-json", "/missing", "a", "{}")

	assert.ErrorIs(t, err, domain.ErrPathNotFound)
}

func TestWritePropertiesCmd_FromArgs(t *testing.T) {
	env := setupTestServices(t)
	env.store.AddDir("/out")

	stdout, _, err := run(t, nil, "write-properties", "/out", "bundle.json", "x", "y\nz")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 2 entries to /out/bundle.properties")

	content, ok := env.store.Contents("/out", "bundle.properties")
	require.True(t, ok)
	assert.Equal(t, "x\n\ny\\nz\n\n", content)
}

func TestWritePropertiesCmd_FromStdin(t *testing.T) {
	env := setupTestServices(t)
	env.store.AddDir("/out")

	_, _, err := run(t, strings.NewReader("a=1\nb=2\n"), "write-properties", "/out", "bundle")

	require.NoError(t, err)
	content, ok := env.store.Contents("/out", "bundle.properties")
	require.True(t, ok)
	assert.Equal(t, "a=1\n\nb=2\n\n", content)
}

func TestWritePropertiesCmd_FromStdin_LongLines(t *testing.T) {
	env := setupTestServices(t)
	env.store.AddDir("/out")
	long := "k=" + strings.Repeat("v", 200*1024)

	_, _, err := run(t, strings.NewReader(long+"\r\nlast"), "write-properties", "/out", "bundle")

	require.NoError(t, err)
	content, ok := env.store.Contents("/out", "bundle.properties")
	require.True(t, ok)
	assert.Equal(t, long+"\n\nlast\n\n", content)
}

func TestWritePropertiesCmd_RequiresDirAndFile(t *testing.T) {
	setupTestServices(t)

	_, _, err := run(t, nil, "write-properties", "/out")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 2 arg(s)")
}

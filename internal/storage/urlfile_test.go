package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTripIsByteIdentical(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "urls.txt")
	store := NewFileStore(path)

	urls := []string{
		"https://example.com/",
		"https://example.com/posts/hello-world",
		"https://example.com/about?lang=zh",
	}
	require.NoError(t, store.Save(urls))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, urls, loaded)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/\nhttps://example.com/posts/hello-world\nhttps://example.com/about?lang=zh\n", string(raw))
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "urls.txt")
	store := NewFileStore(path)

	require.NoError(t, store.Save([]string{"https://example.com/old-1", "https://example.com/old-2"}))
	require.NoError(t, store.Save([]string{"https://example.com/new"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/new"}, loaded)
}

func TestFileStore_LoadSkipsBlankLinesAndTrims(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://example.com/a\n\n  https://example.com/b  \n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loaded, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, loaded)
}

func TestFileStore_LoadMissingFileErrors(t *testing.T) {
	t.Parallel()
	_, err := NewFileStore(filepath.Join(t.TempDir(), "missing.txt")).Load()
	assert.Error(t, err)
}

func TestFileStore_SaveEmptyListWritesEmptyFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, NewFileStore(path).Save(nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

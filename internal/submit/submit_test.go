package submit

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonanweb/sitepush/internal/storage"
)

func makeURLs(n int) []string {
	urls := make([]string, 0, n)
	for i := 0; i < n; i++ {
		urls = append(urls, fmt.Sprintf("https://example.com/page-%d", i))
	}
	return urls
}

func TestPrepareBatch_FullListWhenUnderLimit(t *testing.T) {
	t.Parallel()
	urls := makeURLs(5)
	batch := PrepareBatch(urls, 0, 10)
	assert.Equal(t, urls, batch)
}

func TestPrepareBatch_TruncatesAtLimitInOrder(t *testing.T) {
	t.Parallel()
	urls := makeURLs(25)
	batch := PrepareBatch(urls, 0, 10)
	assert.Equal(t, urls[:10], batch)
}

func TestPrepareBatch_RandomSampleExactCountNoDuplicates(t *testing.T) {
	t.Parallel()
	urls := makeURLs(50)
	batch := PrepareBatch(urls, 7, 10)

	assert.Len(t, batch, 7)
	assert.Len(t, lo.Uniq(batch), 7)
	for _, u := range batch {
		assert.Contains(t, urls, u)
	}
}

func TestPrepareBatch_SampleLargerThanListSubmitsEverything(t *testing.T) {
	t.Parallel()
	urls := makeURLs(3)
	batch := PrepareBatch(urls, 8, 10)
	assert.Equal(t, urls, batch)
}

func TestPrepareBatch_SampleCappedByEngineLimit(t *testing.T) {
	t.Parallel()
	urls := makeURLs(100)
	batch := PrepareBatch(urls, 40, 10)
	assert.Len(t, batch, 10)
	assert.Len(t, lo.Uniq(batch), 10)
}

func TestLoadURLs_MissingFileIsConfigError(t *testing.T) {
	t.Parallel()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "nope.txt"))
	_, err := LoadURLs(store)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoadURLs_EmptyFileIsConfigError(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0644))

	_, err := LoadURLs(storage.NewFileStore(path))
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoadURLs_ReturnsURLs(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://example.com/a\nhttps://example.com/b\n"), 0644))

	urls, err := LoadURLs(storage.NewFileStore(path))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
}

func TestNormalizeSiteURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already https", in: "https://example.com", want: "https://example.com"},
		{name: "already http", in: "http://example.com", want: "http://example.com"},
		{name: "bare host", in: "example.com", want: "https://example.com"},
		{name: "surrounding whitespace", in: "  example.com ", want: "https://example.com"},
		{name: "empty", in: "", want: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, NormalizeSiteURL(test.in))
		})
	}
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abcd***wxyz", MaskSecret("abcdefgstuvwxyz"))
	assert.Equal(t, "***", MaskSecret("short"))
	assert.NotContains(t, MaskSecret("supersecrettoken"), "secret")
}

package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
)

// FileStore persists the URL list as plain UTF-8 text, one absolute
// URL per line. This is the only artifact shared between pipeline
// steps; there are no other readers or writers.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the URLs one per line, replacing any existing content.
func (s *FileStore) Save(urls []string) error {
	var b strings.Builder
	for _, u := range urls {
		b.WriteString(u)
		b.WriteString("\n")
	}

	if err := os.WriteFile(s.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write URL file %s: %w", s.path, err)
	}
	return nil
}

// Load reads the URL file back, trimming whitespace and skipping
// blank lines.
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL file %s: %w", s.path, err)
	}

	lines := strings.Split(string(data), "\n")
	return lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(line)
		return trimmed, trimmed != ""
	}), nil
}

package onsave

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cristianradulescu/beautify-ls/internal/config"
)

// FileStore persists preferences as key=value lines in a small state
// file under the user config dir.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// DefaultStatePath returns the per-user location of the preference file.
func DefaultStatePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user config dir: %w", err)
	}
	return filepath.Join(configDir, config.Name, "prefs"), nil
}

// NewFileStore loads the state file if present. A missing file is an
// empty store, not an error.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("failed to read preference file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		store.values[key] = value
	}

	return store, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, exists := s.values[key]
	return value, exists
}

func (s *FileStore) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.flush()
}

func (s *FileStore) flush() error {
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteString("=")
		builder.WriteString(s.values[key])
		builder.WriteString("\n")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preference dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(builder.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write preference file: %w", err)
	}

	return nil
}

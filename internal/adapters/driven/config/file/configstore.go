package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/daybook-labs/daybook/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps daybook's configuration in one TOML file. Keys are
// flat dot-notation strings ("ai.provider", "ai.openai.api_key"), so a
// [ai.openai] table in the file and a dotted Set from the CLI land on
// the same entry. Writes go through a temp file and rename, keeping the
// file parseable even if daybook dies mid-save.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore opens the config file under configDir, creating the
// directory when needed. An empty configDir means ~/.daybook.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".daybook")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Load reads the TOML file, flattening nested tables to dotted keys.
// A missing file is not an error; the store starts empty.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var tree map[string]any
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return err
	}

	flat := make(map[string]any)
	flatten(flat, "", tree)
	s.data = flat
	return nil
}

// flatten walks a decoded TOML tree into dst, joining table names with
// dots. Leaf values keep the types go-toml gives them (int64, []any).
func flatten(dst map[string]any, prefix string, tree map[string]any) {
	for key, val := range tree {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if sub, ok := val.(map[string]any); ok {
			flatten(dst, full, sub)
			continue
		}
		dst[full] = val
	}
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// value reads a key as a concrete type, false on a miss or mismatch.
func value[T any](s *ConfigStore, key string) (T, bool) {
	var zero T
	raw, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// GetString retrieves a string value; empty on a miss or mismatch.
func (s *ConfigStore) GetString(key string) string {
	str, _ := value[string](s, key)
	return str
}

// GetInt retrieves an integer value; zero on a miss or mismatch.
// TOML integers decode as int64, so both widths are accepted.
func (s *ConfigStore) GetInt(key string) int {
	if wide, ok := value[int64](s, key); ok {
		return int(wide)
	}
	n, _ := value[int](s, key)
	return n
}

// GetBool retrieves a boolean value; false on a miss or mismatch.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := value[bool](s, key)
	return b
}

// GetStringSlice retrieves a string slice value. TOML arrays decode as
// []any; non-string elements are dropped.
func (s *ConfigStore) GetStringSlice(key string) []string {
	if strs, ok := value[[]string](s, key); ok {
		return strs
	}
	items, ok := value[[]any](s, key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, val any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = val
	return s.persist()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

// persist marshals the flat map and swaps it into place atomically.
// Caller must hold the lock. API keys live in this file, so it is
// written 0600.
func (s *ConfigStore) persist() error {
	raw, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

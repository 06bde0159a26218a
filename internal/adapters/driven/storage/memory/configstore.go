package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/roster/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigPath is the path reported by every in-memory config store.
const ConfigPath = ":memory:"

// ConfigStore keeps roster configuration in a map. WriteErr and LoadErr
// inject failures; Writes counts successful SetAll calls.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any

	WriteErr error
	LoadErr  error
	Writes   int
}

// NewConfigStore creates a config store seeded with values. The map is copied.
func NewConfigStore(values ...map[string]any) *ConfigStore {
	s := &ConfigStore{values: make(map[string]any)}
	for _, v := range values {
		maps.Copy(s.values, v)
	}
	return s
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// SetAll applies values unless WriteErr is set.
func (s *ConfigStore) SetAll(values map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	maps.Copy(s.values, values)
	s.Writes++
	return nil
}

// Load returns LoadErr.
func (s *ConfigStore) Load() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LoadErr
}

// Path returns ConfigPath.
func (s *ConfigStore) Path() string {
	return ConfigPath
}

package demo

import (
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/ARTM2000/sole/internal/config"
)

// SettingsStore is a concurrent key/value store seeded from the demo config.
type SettingsStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func (s *SettingsStore) Init() error {
	s.values = make(map[string]string)
	for k, v := range config.Settings() {
		s.values[k] = v
	}
	return nil
}

// Get returns the value for key and whether it exists.
func (s *SettingsStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
func (s *SettingsStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Keys returns the stored keys in sorted order.
func (s *SettingsStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := lo.Keys(s.values)
	slices.Sort(keys)
	return keys
}

// Dump prints every setting as key=value.
func (s *SettingsStore) Dump() {
	for _, k := range s.Keys() {
		v, _ := s.Get(k)
		fmt.Fprintf(Output, "%s=%s\n", k, v)
	}
}

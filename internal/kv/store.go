// ABOUTME: Persistent key-value store used for display preferences
// ABOUTME: Defines the Store interface and an in-memory implementation
package kv

import (
	"errors"
	"sync"
)

// Keys persisted by the clock and preference store
const (
	KeyTZOffset       = "tz_offset"
	KeyTimeColor      = "timeColor"
	KeyTimeFont       = "timeFont"
	KeyDateVisibility = "dateVisibility"
)

// ErrEmptyKey is returned when writing under an empty key
var ErrEmptyKey = errors.New("kv: empty key")

// Store is a string key-value store in the shape of browser localStorage
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Memory is a Store that lives only as long as the process
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value stored under key
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// Set stores value under key
func (m *Memory) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Remove deletes key; removing a missing key is not an error
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len returns the number of stored keys
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

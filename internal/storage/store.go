// Package storage holds the string-keyed JSON store every component shares.
//
// Components never call each other. The wizard writes check-ins, the dashboard
// writes quick logs, and the timeline reads history, all through a Store.
package storage

import "sync"

// Store is the key-value capability behind all persisted state.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
}

// Memory is an in-process Store. The zero value is not usable; call NewMemory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (store *Memory) Get(key string) (string, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.values[key]
	return value, ok, nil
}

func (store *Memory) Set(key string, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = value
	return nil
}

package storage

import (
	"sync"

	"github.com/pkg/errors"
)

var errClosed = errors.New("store closed")

// MemoryStore keeps values for the lifetime of the process only.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return &UnavailableError{Op: "set", Key: key, Err: errClosed}
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, &UnavailableError{Op: "get", Key: key, Err: errClosed}
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return &UnavailableError{Op: "delete", Key: key, Err: errClosed}
	}
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

package storage

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"
)

// Memory keeps documents in memory. Its zero value is ready to use.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, exists := m.docs[key]
	if !exists {
		return nil, fmt.Errorf("document %q: %w", key, fs.ErrNotExist)
	}
	return bytes.Clone(data), nil
}

func (m *Memory) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs == nil {
		m.docs = make(map[string][]byte)
	}
	m.docs[key] = bytes.Clone(data)
	return nil
}

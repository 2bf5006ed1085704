package persist

import "sync"

// KV is the key-value backend the adapter reads and writes. The boolean from
// Get is false when the key does not exist.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// MemoryKV is a process-local KV, used by tests and ephemeral sessions.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

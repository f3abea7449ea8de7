package credential

import "sync"

// Store abstracts where the encoded PIN record lives (e.g., OS keyring).
// Implementations should be safe to call from multiple goroutines.
type Store interface {
	Get() (record string, found bool, err error)
	Set(record string) error
	Delete() error
}

// NewStore opens the named backend. "keyring" may fail when no OS keyring
// is reachable; callers can fall back to "memory".
func NewStore(backend string) (Store, error) {
	if backend == "memory" {
		return NewMemoryStore(), nil
	}
	return NewKeyringStore()
}

type memoryStore struct {
	mu     sync.RWMutex
	record string
	found  bool
}

// NewMemoryStore returns a process-local Store. Nothing survives a restart.
func NewMemoryStore() Store { return &memoryStore{} }

func (s *memoryStore) Get() (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record, s.found, nil
}

func (s *memoryStore) Set(record string) error {
	s.mu.Lock()
	s.record, s.found = record, true
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete() error {
	s.mu.Lock()
	s.record, s.found = "", false
	s.mu.Unlock()
	return nil
}

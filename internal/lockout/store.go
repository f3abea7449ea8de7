package lockout

import "sync"

// Store persists lockout State.
type Store interface {
	Load() (State, error)
	Save(State) error
}

type memoryStore struct {
	mu    sync.Mutex
	state State
}

// NewMemoryStore returns a Store that forgets everything on exit.
func NewMemoryStore() Store { return &memoryStore{} }

func (s *memoryStore) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

func (s *memoryStore) Save(st State) error {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

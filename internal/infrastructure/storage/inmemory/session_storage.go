package inmemory

import (
	"sync"

	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

// SessionStorage lives as long as the process does.
type SessionStorage struct {
	values map[string]string
	lock   *sync.RWMutex
}

func NewSessionStorage() ports.SessionStorage {
	return &SessionStorage{
		values: map[string]string{},
		lock:   &sync.RWMutex{},
	}
}

func (s *SessionStorage) Get(key string) (string, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

func (s *SessionStorage) Set(key, value string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.values[key] = value
}

func (s *SessionStorage) Delete(key string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.values, key)
}

func (s *SessionStorage) Clear() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.values = map[string]string{}
}

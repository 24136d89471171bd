package dbbadger

import (
	"errors"

	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

type localEntry struct {
	Key   string
	Value string
}

type localStorage struct {
	store *badgerhold.Store
}

// NewLocalStorage returns a LocalStorage backed by the given store.
func NewLocalStorage(store *badgerhold.Store) ports.LocalStorage {
	return &localStorage{store}
}

func (s *localStorage) Get(key string) (string, bool, error) {
	var entry localEntry
	if err := s.store.Get(key, &entry); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *localStorage) Set(key, value string) error {
	return s.store.Upsert(key, localEntry{key, value})
}

func (s *localStorage) Delete(key string) error {
	if err := s.store.Delete(key, localEntry{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (s *localStorage) Keys() ([]string, error) {
	var entries []localEntry
	if err := s.store.Find(&entries, nil); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys, nil
}

func (s *localStorage) Clear() error {
	return s.store.DeleteMatching(localEntry{}, nil)
}

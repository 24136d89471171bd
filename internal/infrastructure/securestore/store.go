package securestore

import (
	"errors"
	"sync"

	"github.com/btcsuite/btcwallet/snacl"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

var (
	// ErrStoreLocked specifies that the store must be unlocked to perform the
	// requested operation.
	ErrStoreLocked = errors.New("store is locked")
	// ErrInvalidPassword is returned when trying to unlock the store with an
	// incorrect password.
	ErrInvalidPassword = errors.New("password is not valid")
	// ErrDataNotFound specifies that no data has been found for a given key.
	ErrDataNotFound = errors.New("data not found")
	// ErrMissingDataKey ...
	ErrMissingDataKey = errors.New("missing data key")
	// ErrForbiddenDataKey is used when the data key is the one reserved to the
	// encryption key.
	ErrForbiddenDataKey = errors.New("data key is not allowed")
)

// encryptionKeyID is the key of the record storing the encryption key
// parameters, salted and hashed with the password.
const encryptionKeyID = "enckey"

type encryptionKey struct {
	Params []byte
}

type secureEntry struct {
	Key   string
	Value []byte
}

type secureStorage struct {
	store *badgerhold.Store

	lock   *sync.RWMutex
	encKey *snacl.SecretKey
}

// NewSecureStorage returns a SecureStorage that encrypts every value with a
// key derived from the unlock password.
func NewSecureStorage(store *badgerhold.Store) ports.SecureStorage {
	return &secureStorage{store: store, lock: &sync.RWMutex{}}
}

func (s *secureStorage) IsLocked() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.encKey == nil
}

// Lock flushes the in-memory encryption key.
func (s *secureStorage) Lock() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.encKey != nil {
		s.encKey.Zero()
		s.encKey = nil
	}
}

// Unlock sets an encryption key if one is not already stored, otherwise it
// checks if the password is correct for the stored one.
func (s *secureStorage) Unlock(password string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.encKey != nil {
		return nil
	}

	pwd := []byte(password)

	var stored encryptionKey
	err := s.store.Get(encryptionKeyID, &stored)
	if err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return err
	}

	if err == nil {
		encKey := &snacl.SecretKey{}
		if err := encKey.Unmarshal(stored.Params); err != nil {
			return err
		}
		if err := encKey.DeriveKey(&pwd); err != nil {
			return ErrInvalidPassword
		}
		s.encKey = encKey
		return nil
	}

	encKey, err := snacl.NewSecretKey(
		&pwd, snacl.DefaultN, snacl.DefaultR, snacl.DefaultP,
	)
	if err != nil {
		return err
	}
	if err := s.store.Insert(
		encryptionKeyID, encryptionKey{encKey.Marshal()},
	); err != nil {
		return err
	}

	s.encKey = encKey
	return nil
}

func (s *secureStorage) Get(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.encKey == nil {
		return "", ErrStoreLocked
	}

	var entry secureEntry
	if err := s.store.Get(key, &entry); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return "", ErrDataNotFound
		}
		return "", err
	}

	value, err := s.encKey.Decrypt(entry.Value)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func (s *secureStorage) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.encKey == nil {
		return ErrStoreLocked
	}

	encrypted, err := s.encKey.Encrypt([]byte(value))
	if err != nil {
		return err
	}
	return s.store.Upsert(key, secureEntry{key, encrypted})
}

func (s *secureStorage) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if s.IsLocked() {
		return ErrStoreLocked
	}

	if err := s.store.Delete(key, secureEntry{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (s *secureStorage) Close() error {
	s.Lock()
	return s.store.Close()
}

func validateKey(key string) error {
	if len(key) <= 0 {
		return ErrMissingDataKey
	}
	if key == encryptionKeyID {
		return ErrForbiddenDataKey
	}
	return nil
}

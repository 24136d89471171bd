package ports

import (
	"context"
	"time"
)

// LocalStorage persists non-secret preferences across restarts.
type LocalStorage interface {
	// Get returns the value for key and whether it was found.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
	Clear() error
}

// SessionStorage holds values bound to the lifetime of a single instance.
type SessionStorage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
	Clear()
}

// SecureStorage keeps secret values encrypted at rest.
type SecureStorage interface {
	// Unlock derives the encryption key from the password, creating it if
	// the store is new.
	Unlock(password string) error
	Lock()
	IsLocked() bool
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Lease is an exclusive claim on the wallet storage with an expiry.
type Lease struct {
	Owner     string
	ExpiresAt time.Time
}

// LeaseStore grants storage leases atomically.
type LeaseStore interface {
	// Acquire grants the lease to owner if it is free, expired or already
	// owned by owner. It returns the current holder otherwise.
	Acquire(
		ctx context.Context, owner string, ttl time.Duration, now time.Time,
	) (bool, *Lease, error)
	Release(ctx context.Context, owner string) error
}

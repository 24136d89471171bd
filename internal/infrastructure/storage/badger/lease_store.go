package dbbadger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const (
	leaseKey         = "tab_lease"
	maxLeaseAttempts = 3
)

type leaseRecord struct {
	Owner     string
	ExpiresAt time.Time
}

type leaseStore struct {
	store *badgerhold.Store
}

// NewLeaseStore returns a LeaseStore persisting the lease in the given store.
func NewLeaseStore(store *badgerhold.Store) ports.LeaseStore {
	return &leaseStore{store}
}

func (s *leaseStore) Acquire(
	_ context.Context, owner string, ttl time.Duration, now time.Time,
) (bool, *ports.Lease, error) {
	var (
		acquired bool
		holder   *ports.Lease
		err      error
	)
	for i := 0; i < maxLeaseAttempts; i++ {
		err = s.store.Badger().Update(func(txn *badger.Txn) error {
			var current leaseRecord
			if err := s.store.TxGet(txn, leaseKey, &current); err != nil {
				if !errors.Is(err, badgerhold.ErrNotFound) {
					return err
				}
			} else if current.Owner != owner && current.ExpiresAt.After(now) {
				acquired = false
				holder = &ports.Lease{
					Owner: current.Owner, ExpiresAt: current.ExpiresAt,
				}
				return nil
			}

			record := leaseRecord{owner, now.Add(ttl)}
			if err := s.store.TxUpsert(txn, leaseKey, record); err != nil {
				return err
			}
			acquired = true
			holder = &ports.Lease{Owner: owner, ExpiresAt: record.ExpiresAt}
			return nil
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return false, nil, err
	}
	return acquired, holder, nil
}

func (s *leaseStore) Release(_ context.Context, owner string) error {
	return s.store.Badger().Update(func(txn *badger.Txn) error {
		var current leaseRecord
		if err := s.store.TxGet(txn, leaseKey, &current); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return nil
			}
			return err
		}
		if current.Owner != owner {
			return nil
		}
		return s.store.TxDelete(txn, leaseKey, leaseRecord{})
	})
}

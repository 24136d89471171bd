package pubsub

import (
	"errors"
	"sort"

	"github.com/timshannon/badgerhold/v4"
)

type store struct {
	db *badgerhold.Store
}

func (s store) add(sub Subscription) error {
	return s.db.Insert(sub.ID, sub)
}

func (s store) remove(id string) error {
	err := s.db.Delete(id, Subscription{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return ErrSubscriptionNotFound
	}
	return err
}

// list returns the subscriptions for the given topics, all of them if none
// is given.
func (s store) list(topics ...string) (subscriptions, error) {
	var subs subscriptions
	var query *badgerhold.Query
	if len(topics) > 0 {
		in := make([]interface{}, 0, len(topics))
		for _, t := range topics {
			in = append(in, t)
		}
		query = badgerhold.Where("Event").In(in...).Index("Event")
	}
	if err := s.db.Find(&subs, query); err != nil {
		return nil, err
	}

	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].ID < subs[j].ID
	})
	return subs, nil
}

func (s store) close() error {
	return s.db.Close()
}

package engineproxy

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

// GetContacts returns the contacts sorted by last use.
func (s *Service) GetContacts(ctx context.Context) ([]domain.TagItem, error) {
	items, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.TagItem, error) {
		return w.Contacts().GetContacts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(items, tagItemFromEngine), nil
}

func (s *Service) GetTagItem(
	ctx context.Context, id string,
) (domain.TagItem, error) {
	item, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.TagItem, error) {
		return w.Contacts().GetTagItem(ctx, id)
	})
	if err != nil {
		return domain.TagItem{}, err
	}
	return tagItemFromEngine(item), nil
}

func (s *Service) CreateNewContact(
	ctx context.Context, contact domain.Contact,
) (string, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (string, error) {
		return w.Contacts().CreateNewContact(ctx, contact)
	})
}

func (s *Service) EditContact(
	ctx context.Context, id string, contact domain.Contact,
) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Contacts().EditContact(ctx, id, contact)
	})
}

func (s *Service) DeleteContact(ctx context.Context, id string) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Contacts().DeleteContact(ctx, id)
	})
}

func (s *Service) SyncNostrContacts(ctx context.Context, npub string) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Contacts().SyncNostrContacts(ctx, npub)
	})
}

func (s *Service) FollowNpub(ctx context.Context, npub string) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Contacts().FollowNpub(ctx, npub)
	})
}

func (s *Service) UnfollowNpub(ctx context.Context, npub string) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Contacts().UnfollowNpub(ctx, npub)
	})
}

package engineproxy

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

func (s *Service) GetNpub(ctx context.Context) (string, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (string, error) {
		return w.Nostr().GetNpub(ctx)
	})
}

func (s *Service) GetNostrProfile(
	ctx context.Context,
) (domain.NostrProfile, error) {
	profile, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.NostrProfile, error) {
		return w.Nostr().GetNostrProfile(ctx)
	})
	if err != nil {
		return domain.NostrProfile{}, err
	}
	return nostrProfileFromEngine(profile), nil
}

func (s *Service) EditNostrProfile(
	ctx context.Context, profile domain.NostrProfile,
) (domain.NostrProfile, error) {
	edited, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.NostrProfile, error) {
		return w.Nostr().EditNostrProfile(ctx, profile)
	})
	if err != nil {
		return domain.NostrProfile{}, err
	}
	return nostrProfileFromEngine(edited), nil
}

// SendDM sends message to npub and returns the id of the published event.
func (s *Service) SendDM(
	ctx context.Context, npub, message string,
) (string, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (string, error) {
		return w.Nostr().SendDM(ctx, npub, message)
	})
}

func (s *Service) GetDMConversation(
	ctx context.Context, npub string, limit uint64, until, since *uint64,
) ([]domain.DirectMessage, error) {
	messages, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.DirectMessage, error) {
		return w.Nostr().GetDMConversation(ctx, npub, limit, until, since)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(messages, directMessageFromEngine), nil
}

func (s *Service) GetPendingNwcInvoices(
	ctx context.Context,
) ([]domain.PendingNwcInvoice, error) {
	invoices, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.PendingNwcInvoice, error) {
		return w.Nostr().GetPendingNwcInvoices(ctx)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(invoices, pendingNwcInvoiceFromEngine), nil
}

func (s *Service) ApproveInvoice(ctx context.Context, hash string) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Nostr().ApproveInvoice(ctx, hash)
	})
}

func (s *Service) DenyInvoice(ctx context.Context, hash string) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Nostr().DenyInvoice(ctx, hash)
	})
}

func (s *Service) DenyAllPendingNwc(ctx context.Context) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Nostr().DenyAllPendingNwc(ctx)
	})
}

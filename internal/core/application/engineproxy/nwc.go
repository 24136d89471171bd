package engineproxy

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

func (s *Service) GetNwcProfiles(
	ctx context.Context,
) ([]domain.NwcProfile, error) {
	profiles, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.NwcProfile, error) {
		return w.Nwc().GetNwcProfiles(ctx)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(profiles, nwcProfileFromEngine), nil
}

func (s *Service) GetNwcProfile(
	ctx context.Context, index uint32,
) (domain.NwcProfile, error) {
	return s.profileCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.NwcProfile, error) {
		return w.Nwc().GetNwcProfile(ctx, index)
	})
}

func (s *Service) CreateBudgetNwcProfile(
	ctx context.Context, name string, budget uint64,
	period domain.BudgetPeriod, singleMax *uint64,
) (domain.NwcProfile, error) {
	return s.profileCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.NwcProfile, error) {
		return w.Nwc().CreateBudgetNwcProfile(
			ctx, name, budget, string(period), singleMax,
		)
	})
}

func (s *Service) CreateSingleUseNwcProfile(
	ctx context.Context, name string, amount uint64,
) (domain.NwcProfile, error) {
	return s.profileCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.NwcProfile, error) {
		return w.Nwc().CreateSingleUseNwcProfile(ctx, name, amount)
	})
}

func (s *Service) DeleteNwcProfile(ctx context.Context, index uint32) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Nwc().DeleteNwcProfile(ctx, index)
	})
}

func (s *Service) SetNwcProfileBudget(
	ctx context.Context, index uint32, budget uint64,
	period domain.BudgetPeriod, singleMax *uint64,
) (domain.NwcProfile, error) {
	return s.profileCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.NwcProfile, error) {
		return w.Nwc().SetNwcProfileBudget(
			ctx, index, budget, string(period), singleMax,
		)
	})
}

func (s *Service) SetNwcProfileRequireApproval(
	ctx context.Context, index uint32,
) (domain.NwcProfile, error) {
	return s.profileCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.NwcProfile, error) {
		return w.Nwc().SetNwcProfileRequireApproval(ctx, index)
	})
}

// ApproveNostrWalletAuth accepts a nostr+walletauth request, creating the
// NWC profile the requesting app will use.
func (s *Service) ApproveNostrWalletAuth(
	ctx context.Context, name, uri string,
) (domain.NwcProfile, error) {
	return s.profileCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.NwcProfile, error) {
		return w.Nwc().ApproveNostrWalletAuth(ctx, name, uri)
	})
}

func (s *Service) profileCall(
	ctx context.Context,
	fn func(context.Context, ports.Wallet) (ports.NwcProfile, error),
) (domain.NwcProfile, error) {
	profile, err := call(ctx, s, fn)
	if err != nil {
		return domain.NwcProfile{}, err
	}
	return nwcProfileFromEngine(profile), nil
}

package engineproxy

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

func (s *Service) ListFederations(
	ctx context.Context,
) ([]domain.FederationIdentity, error) {
	federations, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.FederationIdentity, error) {
		return w.Federations().ListFederations(ctx)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(federations, federationFromEngine), nil
}

func (s *Service) NewFederation(
	ctx context.Context, inviteCode string,
) (domain.FederationIdentity, error) {
	federation, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.FederationIdentity, error) {
		return w.Federations().NewFederation(ctx, inviteCode)
	})
	if err != nil {
		return domain.FederationIdentity{}, err
	}
	return federationFromEngine(federation), nil
}

func (s *Service) RemoveFederation(
	ctx context.Context, federationID string,
) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Federations().RemoveFederation(ctx, federationID)
	})
}

// SweepFederationBalance moves amount, or everything if nil, out of the
// source federation into the destination one, or into lightning if the
// destination is empty.
func (s *Service) SweepFederationBalance(
	ctx context.Context, amount *uint64, fromFederationID, toFederationID string,
) (domain.FedimintSweepResult, error) {
	res, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.FedimintSweepResult, error) {
		return w.Federations().SweepFederationBalance(
			ctx, amount, fromFederationID, toFederationID,
		)
	})
	if err != nil {
		return domain.FedimintSweepResult{}, err
	}
	return sweepResultFromEngine(res), nil
}

func (s *Service) EstimateSweepFederationFee(
	ctx context.Context, amount *uint64, fromFederationID, toFederationID string,
) (uint64, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (uint64, error) {
		return w.Federations().EstimateSweepFederationFee(
			ctx, amount, fromFederationID, toFederationID,
		)
	})
}

func (s *Service) GetFederationBalances(
	ctx context.Context,
) ([]domain.FederationBalance, error) {
	balances, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.FederationBalance, error) {
		return w.Federations().GetFederationBalances(ctx)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(balances, federationBalanceFromEngine), nil
}

func (s *Service) DiscoverFederations(
	ctx context.Context,
) ([]domain.DiscoveredFederation, error) {
	federations, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.DiscoveredFederation, error) {
		return w.Federations().DiscoverFederations(ctx)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(federations, discoveredFederationFromEngine), nil
}

func (s *Service) RecommendFederation(
	ctx context.Context, inviteCode string,
) (string, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (string, error) {
		return w.Federations().RecommendFederation(ctx, inviteCode)
	})
}

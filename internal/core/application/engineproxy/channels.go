package engineproxy

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

func (s *Service) ListPeers(ctx context.Context) ([]domain.Peer, error) {
	peers, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.Peer, error) {
		return w.Node().ListPeers(ctx)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(peers, peerFromEngine), nil
}

func (s *Service) ConnectToPeer(
	ctx context.Context, connectionString, label string,
) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Node().ConnectToPeer(ctx, connectionString, label)
	})
}

func (s *Service) DisconnectPeer(ctx context.Context, pubkey string) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Node().DisconnectPeer(ctx, pubkey)
	})
}

func (s *Service) DeletePeer(ctx context.Context, pubkey string) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Node().DeletePeer(ctx, pubkey)
	})
}

func (s *Service) ListChannels(ctx context.Context) ([]domain.Channel, error) {
	channels, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.Channel, error) {
		return w.Node().ListChannels(ctx)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(channels, channelFromEngine), nil
}

// OpenChannel opens a channel with pubkey, or with the LSP if it is empty.
func (s *Service) OpenChannel(
	ctx context.Context, pubkey string, amount uint64, feeRate *float64,
) (domain.Channel, error) {
	channel, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Channel, error) {
		return w.Node().OpenChannel(ctx, pubkey, amount, feeRate)
	})
	if err != nil {
		return domain.Channel{}, err
	}
	return channelFromEngine(channel), nil
}

func (s *Service) SweepAllToChannel(
	ctx context.Context, pubkey string,
) (domain.Channel, error) {
	channel, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Channel, error) {
		return w.Node().SweepAllToChannel(ctx, pubkey)
	})
	if err != nil {
		return domain.Channel{}, err
	}
	return channelFromEngine(channel), nil
}

func (s *Service) CloseChannel(
	ctx context.Context, outpoint string, force, abandon bool,
) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Node().CloseChannel(ctx, outpoint, force, abandon)
	})
}

func (s *Service) ListChannelClosures(
	ctx context.Context,
) ([]domain.ChannelClosure, error) {
	closures, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.ChannelClosure, error) {
		return w.Node().ListChannelClosures(ctx)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(closures, channelClosureFromEngine), nil
}

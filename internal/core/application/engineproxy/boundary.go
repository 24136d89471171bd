package engineproxy

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

// boundary runs fn on its own goroutine and returns as soon as either fn
// completes or ctx is done. An abandoned call keeps running until the
// engine returns, but its result is dropped.
func boundary[T any](
	ctx context.Context, fn func(context.Context) (T, error),
) (T, error) {
	type result struct {
		value T
		err   error
	}

	resCh := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		resCh <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-resCh:
		return res.value, res.err
	}
}

func exec0(ctx context.Context, fn func(context.Context) error) error {
	_, err := boundary(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// call runs fn against the wallet, if one has been set up.
func call[T any](
	ctx context.Context, s *Service,
	fn func(context.Context, ports.Wallet) (T, error),
) (T, error) {
	wallet, err := s.getWallet()
	if err != nil {
		var zero T
		return zero, err
	}
	return boundary(ctx, func(ctx context.Context) (T, error) {
		return fn(ctx, wallet)
	})
}

func exec(
	ctx context.Context, s *Service,
	fn func(context.Context, ports.Wallet) error,
) error {
	_, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (struct{}, error) {
		return struct{}{}, fn(ctx, w)
	})
	return err
}

func reshapeAll[H any, D any](handles []H, fn func(H) D) []D {
	res := make([]D, 0, len(handles))
	for _, h := range handles {
		res = append(res, fn(h))
	}
	return res
}

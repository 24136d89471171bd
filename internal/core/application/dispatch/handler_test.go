package dispatch_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/mutinywallet/mutinyd/internal/core/application/dispatch"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/infrastructure/parser"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	address      = "bc1qf7546vg73ddsjznzq57z3e8jdn6gtw6au576j07kt6d9j7nz8mzsyn6lgf"
	lnurlAuthUrl = "https://service.com/lnurl-login?tag=login&k1=e2af6254a8df433264fa23f67eb8188635d15ce883e8fc020989d5f82ae6f11e"
)

var ctx = context.Background()

type result struct {
	errs    []error
	success []domain.ParsedParams
}

func (r *result) onError(err error) {
	r.errs = append(r.errs, err)
}

func (r *result) onSuccess(params domain.ParsedParams) {
	r.success = append(r.success, params)
}

func newHandler(t *testing.T) (*dispatch.Handler, *navigator, *walletState) {
	nav := &navigator{}
	wallet := &walletState{network: domain.NetworkBitcoin, scanned: true}
	h, err := dispatch.NewHandler(parser.NewParser(), nav, wallet)
	require.NoError(t, err)
	return h, nav, wallet
}

func TestNewHandler(t *testing.T) {
	_, err := dispatch.NewHandler(nil, &navigator{}, &walletState{})
	require.ErrorIs(t, err, dispatch.ErrMissingParser)

	_, err = dispatch.NewHandler(parser.NewParser(), nil, &walletState{})
	require.ErrorIs(t, err, dispatch.ErrMissingNavigator)

	_, err = dispatch.NewHandler(parser.NewParser(), &navigator{}, nil)
	require.ErrorIs(t, err, dispatch.ErrMissingWallet)
}

func TestHandle(t *testing.T) {
	t.Run("onchain address", func(t *testing.T) {
		h, nav, wallet := newHandler(t)
		res := &result{}

		h.Handle(ctx, address, res.onError, res.onSuccess)

		require.Empty(t, res.errs)
		require.Len(t, res.success, 1)
		require.Equal(t, address, res.success[0].Address)
		require.Empty(t, nav.routes)
		require.True(t, wallet.scanned)
	})

	t.Run("invalid string", func(t *testing.T) {
		h, nav, _ := newHandler(t)
		res := &result{}

		h.Handle(ctx, "not a valid anything", res.onError, res.onSuccess)

		require.Len(t, res.errs, 1)
		require.ErrorIs(t, res.errs[0], parser.ErrUnrecognized)
		require.NotEmpty(t, res.errs[0].Error())
		require.Empty(t, res.success)
		require.Empty(t, nav.routes)
	})

	t.Run("lnurl auth", func(t *testing.T) {
		h, nav, wallet := newHandler(t)
		res := &result{}
		lnurl := encode(t, "lnurl", lnurlAuthUrl, false)

		h.Handle(ctx, lnurl, res.onError, res.onSuccess)

		require.Empty(t, res.errs)
		require.Empty(t, res.success)
		require.Equal(t, []string{"/?lnurlauth=" + url.QueryEscape(lnurl)}, nav.routes)
		require.False(t, wallet.scanned)
	})

	t.Run("federation invite", func(t *testing.T) {
		h, nav, _ := newHandler(t)
		res := &result{}
		invite := encode(t, "fed1", "wss://fedimint.example.com", true)

		h.Handle(ctx, invite, res.onError, res.onSuccess)

		require.Empty(t, res.errs)
		require.Empty(t, res.success)
		require.Equal(
			t, []string{"/settings/federations?fedimint_invite=" + url.QueryEscape(invite)},
			nav.routes,
		)
	})

	t.Run("nostr wallet auth", func(t *testing.T) {
		h, nav, _ := newHandler(t)
		res := &result{}
		nwa := "nostr+walletauth://b889ff5b1513b641e2a139f661a661364979c5beee91842f8f0ef42ab558e9d4?relay=wss://relay.damus.io"

		h.Handle(ctx, nwa, res.onError, res.onSuccess)

		require.Empty(t, res.errs)
		require.Equal(
			t, []string{"/settings/connections?nwa=" + url.QueryEscape(nwa)},
			nav.routes,
		)
	})

	t.Run("internal route", func(t *testing.T) {
		p := &mockParser{}
		nav := &navigator{}
		h, err := dispatch.NewHandler(p, nav, &walletState{})
		require.NoError(t, err)
		res := &result{}

		h.Handle(
			ctx, "https://app.mutinywallet.com/settings/channels?foo=bar",
			res.onError, res.onSuccess,
		)

		require.Equal(t, []string{"/settings/channels?foo=bar"}, nav.routes)
		require.Empty(t, res.errs)
		require.Empty(t, res.success)
		p.AssertNotCalled(t, "ParseParams")
	})

	t.Run("external link is parsed", func(t *testing.T) {
		h, nav, _ := newHandler(t)
		res := &result{}

		h.Handle(ctx, "https://example.com/sendme", res.onError, res.onSuccess)

		require.Len(t, res.errs, 1)
		require.Empty(t, nav.routes)
	})
}

func TestHandleIndependentBranches(t *testing.T) {
	invite := "fed11qgqrgvnhwden5te0v9k8q6rp9ekh2arfdeukuet595cr2ttpd3jhq6rzve6zuer9wchxvetyd938gcewvdhk6tcqqysptkuvknc7erjgf4em3zfh90kffqf9srujn6q53d6r056e4apze5cw27h75"
	params := domain.ParsedParams{
		Invoice:        "lnbc1",
		Lnurl:          "lnurl1",
		IsLnurlAuth:    true,
		FedimintInvite: invite,
	}
	p := &mockParser{}
	p.On("ParseParams", mock.Anything, "combined", domain.NetworkSignet).
		Return(params, nil)

	nav := &navigator{}
	wallet := &walletState{network: domain.NetworkSignet, scanned: true}
	h, err := dispatch.NewHandler(p, nav, wallet)
	require.NoError(t, err)
	res := &result{}

	h.Handle(ctx, " combined\n", res.onError, res.onSuccess)

	require.Empty(t, res.errs)
	require.Equal(t, []domain.ParsedParams{params}, res.success)
	require.Equal(t, []string{
		"/?lnurlauth=lnurl1",
		"/settings/federations?fedimint_invite=" + url.QueryEscape(invite),
	}, nav.routes)
	require.False(t, wallet.scanned)
}

func TestHandleNothingToDo(t *testing.T) {
	p := &mockParser{}
	p.On("ParseParams", mock.Anything, "ben@mutiny.plus", domain.NetworkBitcoin).
		Return(domain.ParsedParams{LightningAddress: "ben@mutiny.plus"}, nil)

	nav := &navigator{}
	h, err := dispatch.NewHandler(
		p, nav, &walletState{network: domain.NetworkBitcoin},
	)
	require.NoError(t, err)
	res := &result{}

	h.Handle(ctx, "ben@mutiny.plus", res.onError, res.onSuccess)

	require.Equal(t, []error{dispatch.ErrNothingToDo}, res.errs)
	require.Empty(t, nav.routes)

	// Nil callbacks are allowed.
	h.Handle(ctx, "ben@mutiny.plus", nil, nil)
}

func encode(t *testing.T, hrp, payload string, bech32m bool) string {
	data, err := bech32.ConvertBits([]byte(payload), 8, 5, true)
	require.NoError(t, err)

	var encoded string
	if bech32m {
		encoded, err = bech32.EncodeM(hrp, data)
	} else {
		encoded, err = bech32.Encode(hrp, data)
	}
	require.NoError(t, err)
	return encoded
}

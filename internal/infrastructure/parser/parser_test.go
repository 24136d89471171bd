package parser_test

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/zpay32"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/infrastructure/parser"
	"github.com/stretchr/testify/require"
)

const (
	mainnetAddress = "bc1qf7546vg73ddsjznzq57z3e8jdn6gtw6au576j07kt6d9j7nz8mzsyn6lgf"
	lnurlPayUrl    = "https://service.com/api?q=3fc3645b439ce8e7f2553a69e5267081d96dcd340693afabe04be7b0ccd178df"
	lnurlAuthUrl   = "https://service.com/lnurl-login?tag=login&k1=e2af6254a8df433264fa23f67eb8188635d15ce883e8fc020989d5f82ae6f11e"
)

var ctx = context.Background()

func TestParseParams(t *testing.T) {
	p := parser.NewParser()

	signetInvoice := newInvoice(t, &chaincfg.SigNetParams, 21_000_000, "coffee")
	amountless := newInvoice(t, &chaincfg.MainNetParams, 0, "tip")
	lnurlPay := encodeLnurl(t, lnurlPayUrl)
	lnurlAuth := encodeLnurl(t, lnurlAuthUrl)
	invite := encodeInvite(t)
	pubkey := newPubkey(t)

	amount := func(v uint64) *uint64 { return &v }

	tests := []struct {
		name     string
		str      string
		network  domain.Network
		expected domain.ParsedParams
	}{
		{
			name:     "onchain address",
			str:      mainnetAddress,
			network:  domain.NetworkBitcoin,
			expected: domain.ParsedParams{Address: mainnetAddress},
		},
		{
			name:     "uppercase address",
			str:      strings.ToUpper(mainnetAddress),
			network:  domain.NetworkBitcoin,
			expected: domain.ParsedParams{Address: mainnetAddress},
		},
		{
			name:    "bip21",
			str:     "bitcoin:" + mainnetAddress + "?amount=0.00021&message=pizza",
			network: domain.NetworkBitcoin,
			expected: domain.ParsedParams{
				Address:    mainnetAddress,
				AmountSats: amount(21000),
				Memo:       "pizza",
			},
		},
		{
			name: "unified bip21 with payjoin",
			str: "BITCOIN:" + strings.ToUpper(mainnetAddress) +
				"?lightning=" + strings.ToUpper(amountless) +
				"&pj=https://pj.example.com/abc",
			network: domain.NetworkBitcoin,
			expected: domain.ParsedParams{
				Address:        mainnetAddress,
				Invoice:        amountless,
				Memo:           "tip",
				PayjoinEnabled: true,
				PayjoinUrl:     "https://pj.example.com/abc",
			},
		},
		{
			name:    "invoice",
			str:     signetInvoice,
			network: domain.NetworkSignet,
			expected: domain.ParsedParams{
				Invoice:    signetInvoice,
				AmountSats: amount(21000),
				Memo:       "coffee",
			},
		},
		{
			name:    "lightning scheme",
			str:     "lightning:" + signetInvoice,
			network: domain.NetworkSignet,
			expected: domain.ParsedParams{
				Invoice:    signetInvoice,
				AmountSats: amount(21000),
				Memo:       "coffee",
			},
		},
		{
			name:     "lnurl pay",
			str:      lnurlPay,
			network:  domain.NetworkBitcoin,
			expected: domain.ParsedParams{Lnurl: lnurlPay},
		},
		{
			name:     "lnurl auth",
			str:      strings.ToUpper(lnurlAuth),
			network:  domain.NetworkBitcoin,
			expected: domain.ParsedParams{Lnurl: lnurlAuth, IsLnurlAuth: true},
		},
		{
			name:    "keyauth scheme",
			str:     "keyauth://service.com/lnurl-login?tag=login&k1=abcd",
			network: domain.NetworkBitcoin,
			expected: domain.ParsedParams{
				Lnurl:       "keyauth://service.com/lnurl-login?tag=login&k1=abcd",
				IsLnurlAuth: true,
			},
		},
		{
			name:     "lnurlp scheme",
			str:      "lnurlp://service.com/pay",
			network:  domain.NetworkBitcoin,
			expected: domain.ParsedParams{Lnurl: "lnurlp://service.com/pay"},
		},
		{
			name:    "lightning address",
			str:     "Ben@Mutiny.Plus",
			network: domain.NetworkBitcoin,
			expected: domain.ParsedParams{
				LightningAddress: "ben@mutiny.plus",
				Lnurl:            "https://mutiny.plus/.well-known/lnurlp/ben",
			},
		},
		{
			name:     "federation invite",
			str:      invite,
			network:  domain.NetworkSignet,
			expected: domain.ParsedParams{FedimintInvite: invite},
		},
		{
			name:     "node pubkey",
			str:      pubkey,
			network:  domain.NetworkBitcoin,
			expected: domain.ParsedParams{NodePubkey: pubkey},
		},
		{
			name:     "node connection string",
			str:      pubkey + "@127.0.0.1:9735",
			network:  domain.NetworkBitcoin,
			expected: domain.ParsedParams{NodePubkey: pubkey},
		},
		{
			name:     "offer",
			str:      "lno1pqps7sjqpgtyzm3qv4uxzmtsd3jjqer9wd3hy6tsw35k7msjzfpy7nz5yqcnygrfdej82um5wf5k2uckyypwa3eyt44h6txtxquqh7lz5djge4afgfjn7k4rgrkuag0jsd5xvxg",
			network:  domain.NetworkBitcoin,
			expected: domain.ParsedParams{Offer: "lno1pqps7sjqpgtyzm3qv4uxzmtsd3jjqer9wd3hy6tsw35k7msjzfpy7nz5yqcnygrfdej82um5wf5k2uckyypwa3eyt44h6txtxquqh7lz5djge4afgfjn7k4rgrkuag0jsd5xvxg"},
		},
		{
			name:     "nostr wallet auth",
			str:      "nostr+walletauth://npub1abc?relay=wss://relay.example.com",
			network:  domain.NetworkBitcoin,
			expected: domain.ParsedParams{NostrWalletAuth: "nostr+walletauth://npub1abc?relay=wss://relay.example.com"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.ParseParams(ctx, tt.str, tt.network)
			require.NoError(t, err)

			tt.expected.Network = tt.network
			require.Equal(t, tt.expected, res)
		})
	}
}

func TestFailingParseParams(t *testing.T) {
	p := parser.NewParser()
	signetInvoice := newInvoice(t, &chaincfg.SigNetParams, 1000, "coffee")
	corrupted := signetInvoice[:len(signetInvoice)-1] + "q"
	if strings.HasSuffix(signetInvoice, "q") {
		corrupted = signetInvoice[:len(signetInvoice)-1] + "p"
	}

	tests := []struct {
		name          string
		str           string
		network       domain.Network
		expectedError error
		expectedKind  domain.ErrorKind
	}{
		{
			name:          "garbage",
			str:           "not a valid anything",
			network:       domain.NetworkBitcoin,
			expectedError: parser.ErrUnrecognized,
			expectedKind:  domain.ErrKindInvalidArgs,
		},
		{
			name:          "empty",
			str:           "   ",
			network:       domain.NetworkBitcoin,
			expectedError: parser.ErrEmptyInput,
			expectedKind:  domain.ErrKindInvalidArgs,
		},
		{
			name:          "address for another network",
			str:           mainnetAddress,
			network:       domain.NetworkSignet,
			expectedError: parser.ErrNetworkMismatch,
			expectedKind:  domain.ErrKindNetworkMismatch,
		},
		{
			name:          "invoice for another network",
			str:           signetInvoice,
			network:       domain.NetworkTestnet,
			expectedError: parser.ErrNetworkMismatch,
			expectedKind:  domain.ErrKindNetworkMismatch,
		},
		{
			name:         "corrupted invoice",
			str:          corrupted,
			network:      domain.NetworkSignet,
			expectedKind: domain.ErrKindInvalidArgs,
		},
		{
			name:         "negative bip21 amount",
			str:          "bitcoin:" + mainnetAddress + "?amount=-1",
			network:      domain.NetworkBitcoin,
			expectedKind: domain.ErrKindInvalidArgs,
		},
		{
			name:         "bip21 amount above supply",
			str:          "bitcoin:" + mainnetAddress + "?amount=21000000.00000001",
			network:      domain.NetworkBitcoin,
			expectedKind: domain.ErrKindInvalidArgs,
		},
		{
			name:         "bip21 amount overflowing sats",
			str:          "bitcoin:" + mainnetAddress + "?amount=100000000000",
			network:      domain.NetworkBitcoin,
			expectedKind: domain.ErrKindInvalidArgs,
		},
		{
			name:          "bip21 without destination",
			str:           "bitcoin:?amount=1",
			network:       domain.NetworkBitcoin,
			expectedError: parser.ErrUnrecognized,
			expectedKind:  domain.ErrKindInvalidArgs,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseParams(ctx, tt.str, tt.network)
			require.Error(t, err)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
			}
			require.Equal(t, tt.expectedKind, domain.KindOf(err))
		})
	}

	_, err := p.ParseParams(ctx, mainnetAddress, domain.Network("liquid"))
	require.ErrorIs(t, err, domain.ErrUnknownNetwork)
}

func newInvoice(
	t *testing.T, net *chaincfg.Params, msat uint64, description string,
) string {
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	var hash, paymentAddr [32]byte
	hash[0], paymentAddr[0] = 1, 2

	opts := []func(*zpay32.Invoice){
		zpay32.Description(description),
		zpay32.PaymentAddr(paymentAddr),
		zpay32.Features(lnwire.EmptyFeatureVector()),
	}
	if msat > 0 {
		opts = append(opts, zpay32.Amount(lnwire.MilliSatoshi(msat)))
	}

	invoice, err := zpay32.NewInvoice(net, hash, time.Now(), opts...)
	require.NoError(t, err)

	encoded, err := invoice.Encode(zpay32.MessageSigner{
		SignCompact: func(msg []byte) ([]byte, error) {
			return ecdsa.SignCompact(key, chainhash.HashB(msg), true)
		},
	})
	require.NoError(t, err)
	return encoded
}

func encodeLnurl(t *testing.T, u string) string {
	data, err := bech32.ConvertBits([]byte(u), 8, 5, true)
	require.NoError(t, err)
	lnurl, err := bech32.Encode("lnurl", data)
	require.NoError(t, err)
	return lnurl
}

func encodeInvite(t *testing.T) string {
	data, err := bech32.ConvertBits(
		[]byte("wss://fedimint.example.com/federation-id"), 8, 5, true,
	)
	require.NoError(t, err)
	invite, err := bech32.EncodeM("fed1", data)
	require.NoError(t, err)
	return invite
}

func newPubkey(t *testing.T) string {
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return hex.EncodeToString(key.PubKey().SerializeCompressed())
}

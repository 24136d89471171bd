package domain_test

import (
	"testing"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestIsPayable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   domain.ParsedParams
		expected bool
	}{
		{"empty", domain.ParsedParams{}, false},
		{"address", domain.ParsedParams{Address: "bc1q"}, true},
		{"invoice", domain.ParsedParams{Invoice: "lnbc1"}, true},
		{"node_pubkey", domain.ParsedParams{NodePubkey: "02ab"}, true},
		{"offer", domain.ParsedParams{Offer: "lno1"}, true},
		{"lnurl_pay", domain.ParsedParams{Lnurl: "lnurl1"}, true},
		{
			"lnurl_auth",
			domain.ParsedParams{Lnurl: "lnurl1", IsLnurlAuth: true},
			false,
		},
		{
			"fedimint_invite",
			domain.ParsedParams{FedimintInvite: "fed11"},
			false,
		},
		{
			"nostr_wallet_auth",
			domain.ParsedParams{NostrWalletAuth: "nostr+walletauth://"},
			false,
		},
		{
			"lightning_address_only",
			domain.ParsedParams{LightningAddress: "ben@example.com"},
			false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, tt.params.IsPayable())
		})
	}
}

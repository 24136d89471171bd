package domain_test

import (
	"testing"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestExpirationWarningFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		federations []domain.FederationIdentity
		expected    *domain.ExpirationWarning
	}{
		{
			name:        "no_federations",
			federations: nil,
			expected:    nil,
		},
		{
			name: "no_warning",
			federations: []domain.FederationIdentity{
				{FederationID: "a", FederationName: "A"},
				{FederationID: "b", FederationName: "B", PopupEndTimestamp: 10},
			},
			expected: nil,
		},
		{
			name: "first_warning_wins",
			federations: []domain.FederationIdentity{
				{FederationID: "a", FederationName: "A"},
				{
					FederationID:      "b",
					FederationName:    "B",
					PopupEndTimestamp: 1700000000,
					PopupCountdownMsg: "B is shutting down",
				},
				{
					FederationID:      "c",
					FederationName:    "C",
					PopupEndTimestamp: 1800000000,
					PopupCountdownMsg: "C is shutting down",
				},
			},
			expected: &domain.ExpirationWarning{
				ExpiresTimestamp: 1700000000,
				ExpiresMessage:   "B is shutting down",
				FederationName:   "B",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, domain.ExpirationWarningFor(tt.federations))
		})
	}
}

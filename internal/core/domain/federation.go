package domain

// FederationIdentity identifies a fedimint federation the wallet is a member of.
type FederationIdentity struct {
	FederationID       string `json:"federation_id"`
	FederationName     string `json:"federation_name"`
	WelcomeMessage     string `json:"welcome_message,omitempty"`
	FederationExpiryTs uint64 `json:"federation_expiry_timestamp,omitempty"`
	InviteCode         string `json:"invite_code,omitempty"`
	MetaExternalUrl    string `json:"meta_external_url,omitempty"`
	PopupEndTimestamp  uint64 `json:"popup_end_timestamp,omitempty"`
	PopupCountdownMsg  string `json:"popup_countdown_message,omitempty"`
}

// HasExpirationWarning returns whether the federation advertises a shutdown.
func (f FederationIdentity) HasExpirationWarning() bool {
	return f.PopupEndTimestamp > 0 && f.PopupCountdownMsg != ""
}

// ExpirationWarning is shown when one of the joined federations is shutting down.
type ExpirationWarning struct {
	ExpiresTimestamp uint64 `json:"expiresTimestamp"`
	ExpiresMessage   string `json:"expiresMessage"`
	FederationName   string `json:"federationName"`
}

// ExpirationWarningFor returns the warning of the first federation carrying one.
func ExpirationWarningFor(federations []FederationIdentity) *ExpirationWarning {
	for _, f := range federations {
		if f.HasExpirationWarning() {
			return &ExpirationWarning{
				ExpiresTimestamp: f.PopupEndTimestamp,
				ExpiresMessage:   f.PopupCountdownMsg,
				FederationName:   f.FederationName,
			}
		}
	}
	return nil
}

// FederationBalance is the balance held in one federation.
type FederationBalance struct {
	Identity FederationIdentity `json:"identity"`
	Balance  uint64             `json:"balance"`
}

// FedimintSweepResult is the outcome of moving funds out of a federation.
type FedimintSweepResult struct {
	Amount uint64  `json:"amount"`
	Fees   *uint64 `json:"fees,omitempty"`
}

// DiscoveredFederation is a federation announced by other nostr users.
type DiscoveredFederation struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	InviteCodes []string `json:"invite_codes"`
	Pubkey      string   `json:"pubkey,omitempty"`
	Picture     string   `json:"picture,omitempty"`
	About       string   `json:"about,omitempty"`
	Url         string   `json:"url,omitempty"`
	Recommended []string `json:"recommendations,omitempty"`
}

package domain

// ParsedParams is the classification of a pasted, scanned or deep-linked
// string. More than one field can be set at once, for example a unified
// BIP21 URI carries both an address and an invoice.
type ParsedParams struct {
	Address          string  `json:"address,omitempty"`
	PayjoinEnabled   bool    `json:"payjoin_enabled,omitempty"`
	PayjoinUrl       string  `json:"payjoin_url,omitempty"`
	Invoice          string  `json:"invoice,omitempty"`
	NodePubkey       string  `json:"node_pubkey,omitempty"`
	Lnurl            string  `json:"lnurl,omitempty"`
	IsLnurlAuth      bool    `json:"is_lnurl_auth,omitempty"`
	LightningAddress string  `json:"lightning_address,omitempty"`
	NostrWalletAuth  string  `json:"nostr_wallet_auth,omitempty"`
	FedimintInvite   string  `json:"fedimint_invite,omitempty"`
	Offer            string  `json:"offer,omitempty"`
	AmountSats       *uint64 `json:"amount_sats,omitempty"`
	Memo             string  `json:"memo,omitempty"`
	Network          Network `json:"network,omitempty"`
}

// IsPayable returns whether the params describe something the send flow can
// pay: an address, an invoice, a node pubkey or a non-auth LNURL.
func (p ParsedParams) IsPayable() bool {
	return p.Address != "" || p.Invoice != "" || p.NodePubkey != "" ||
		p.Offer != "" || (p.Lnurl != "" && !p.IsLnurlAuth)
}

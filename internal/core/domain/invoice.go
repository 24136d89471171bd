package domain

// Invoice is a lightning invoice, either received or paid.
type Invoice struct {
	Bolt11      string       `json:"bolt11,omitempty"`
	Description string       `json:"description,omitempty"`
	PaymentHash string       `json:"payment_hash"`
	Preimage    string       `json:"preimage,omitempty"`
	PayeePubkey string       `json:"payee_pubkey,omitempty"`
	AmountSats  *uint64      `json:"amount_sats,omitempty"`
	ExpireTime  uint64       `json:"expire"`
	Status      string       `json:"status"`
	FeesPaid    *uint64      `json:"fees_paid,omitempty"`
	Inbound     bool         `json:"inbound"`
	Labels      []string     `json:"labels"`
	LastUpdated uint64       `json:"last_updated"`
	Privacy     PrivacyLevel `json:"privacy_level"`
}

// IsPaid returns whether the invoice has been settled.
func (i Invoice) IsPaid() bool {
	return i.Status == "Succeeded"
}

// Bip21Materials holds what a unified receive QR code is built from.
type Bip21Materials struct {
	Address   string   `json:"address"`
	Invoice   string   `json:"invoice,omitempty"`
	BtcAmount string   `json:"btc_amount,omitempty"`
	Labels    []string `json:"labels"`
}

// TransactionDetails describes an on-chain transaction of the wallet.
type TransactionDetails struct {
	Txid             string       `json:"txid,omitempty"`
	Received         uint64       `json:"received"`
	Sent             uint64       `json:"sent"`
	Fee              *uint64      `json:"fee,omitempty"`
	ConfirmationTime *uint64      `json:"confirmation_time,omitempty"`
	Labels           []string     `json:"labels"`
	Privacy          PrivacyLevel `json:"privacy_level,omitempty"`
}

// IsConfirmed ...
func (t TransactionDetails) IsConfirmed() bool {
	return t.ConfirmationTime != nil
}

// LnUrlParams is the decoded content of an LNURL.
type LnUrlParams struct {
	Max uint64 `json:"max"`
	Min uint64 `json:"min"`
	Tag string `json:"tag"`
}

// FeeRates are the on-chain fee estimates, in sat/vbyte.
type FeeRates struct {
	Low    uint64 `json:"low"`
	Normal uint64 `json:"normal"`
	High   uint64 `json:"high"`
}

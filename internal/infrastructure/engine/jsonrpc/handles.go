package jsonrpc

import "github.com/mutinywallet/mutinyd/internal/core/ports"

// Handles returned by the engine, decoded from the JSON results.

type balance struct {
	Federation  uint64 `json:"federation"`
	Lightning   uint64 `json:"lightning"`
	Confirmed   uint64 `json:"confirmed"`
	Unconfirmed uint64 `json:"unconfirmed"`
	ForceClose  uint64 `json:"force_close"`
}

func (h *balance) GetFederation() uint64  { return h.Federation }
func (h *balance) GetLightning() uint64   { return h.Lightning }
func (h *balance) GetConfirmed() uint64   { return h.Confirmed }
func (h *balance) GetUnconfirmed() uint64 { return h.Unconfirmed }
func (h *balance) GetForceClose() uint64  { return h.ForceClose }

type federationIdentity struct {
	FederationID              string `json:"federation_id"`
	FederationName            string `json:"federation_name"`
	WelcomeMessage            string `json:"welcome_message"`
	FederationExpiryTimestamp uint64 `json:"federation_expiry_timestamp"`
	InviteCode                string `json:"invite_code"`
	MetaExternalUrl           string `json:"meta_external_url"`
	PopupEndTimestamp         uint64 `json:"popup_end_timestamp"`
	PopupCountdownMessage     string `json:"popup_countdown_message"`
}

func (h *federationIdentity) GetFederationID() string              { return h.FederationID }
func (h *federationIdentity) GetFederationName() string            { return h.FederationName }
func (h *federationIdentity) GetWelcomeMessage() string            { return h.WelcomeMessage }
func (h *federationIdentity) GetFederationExpiryTimestamp() uint64 { return h.FederationExpiryTimestamp }
func (h *federationIdentity) GetInviteCode() string                { return h.InviteCode }
func (h *federationIdentity) GetMetaExternalUrl() string           { return h.MetaExternalUrl }
func (h *federationIdentity) GetPopupEndTimestamp() uint64         { return h.PopupEndTimestamp }
func (h *federationIdentity) GetPopupCountdownMessage() string     { return h.PopupCountdownMessage }

type federationBalance struct {
	Identity *federationIdentity `json:"identity"`
	Balance  uint64              `json:"balance"`
}

func (h *federationBalance) GetIdentity() ports.FederationIdentity {
	if h.Identity == nil {
		return &federationIdentity{}
	}
	return h.Identity
}

func (h *federationBalance) GetBalance() uint64 { return h.Balance }

type fedimintSweepResult struct {
	Amount uint64  `json:"amount"`
	Fees   *uint64 `json:"fees"`
}

func (h *fedimintSweepResult) GetAmount() uint64 { return h.Amount }
func (h *fedimintSweepResult) GetFees() *uint64  { return h.Fees }

type discoveredFederation struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	InviteCodes     []string `json:"invite_codes"`
	Pubkey          string   `json:"pubkey"`
	Picture         string   `json:"picture"`
	About           string   `json:"about"`
	Url             string   `json:"url"`
	Recommendations []string `json:"recommendations"`
}

func (h *discoveredFederation) GetID() string                { return h.ID }
func (h *discoveredFederation) GetName() string              { return h.Name }
func (h *discoveredFederation) GetInviteCodes() []string     { return h.InviteCodes }
func (h *discoveredFederation) GetPubkey() string            { return h.Pubkey }
func (h *discoveredFederation) GetPicture() string           { return h.Picture }
func (h *discoveredFederation) GetAbout() string             { return h.About }
func (h *discoveredFederation) GetUrl() string               { return h.Url }
func (h *discoveredFederation) GetRecommendations() []string { return h.Recommendations }

type tagItem struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	Name           string `json:"name"`
	Npub           string `json:"npub"`
	LnAddress      string `json:"ln_address"`
	Lnurl          string `json:"lnurl"`
	ImageUrl       string `json:"image_url"`
	PrimalImageUrl string `json:"primal_image_url"`
	Following      bool   `json:"following"`
	LastUsedTime   uint64 `json:"last_used_time"`
}

func (h *tagItem) GetID() string             { return h.ID }
func (h *tagItem) GetKind() string           { return h.Kind }
func (h *tagItem) GetName() string           { return h.Name }
func (h *tagItem) GetNpub() string           { return h.Npub }
func (h *tagItem) GetLnAddress() string      { return h.LnAddress }
func (h *tagItem) GetLnurl() string          { return h.Lnurl }
func (h *tagItem) GetImageUrl() string       { return h.ImageUrl }
func (h *tagItem) GetPrimalImageUrl() string { return h.PrimalImageUrl }
func (h *tagItem) IsFollowing() bool         { return h.Following }
func (h *tagItem) GetLastUsedTime() uint64   { return h.LastUsedTime }

type activityItem struct {
	Kind         string     `json:"kind"`
	ID           string     `json:"id"`
	AmountSats   *uint64    `json:"amount_sats"`
	Inbound      bool       `json:"inbound"`
	Labels       []string   `json:"labels"`
	Contacts     []*tagItem `json:"contacts"`
	LastUpdated  *uint64    `json:"last_updated"`
	PrivacyLevel string     `json:"privacy_level"`
}

func (h *activityItem) GetKind() string        { return h.Kind }
func (h *activityItem) GetID() string          { return h.ID }
func (h *activityItem) GetAmountSats() *uint64 { return h.AmountSats }
func (h *activityItem) IsInbound() bool        { return h.Inbound }
func (h *activityItem) GetLabels() []string    { return h.Labels }
func (h *activityItem) GetContacts() []ports.TagItem {
	items := make([]ports.TagItem, 0, len(h.Contacts))
	for _, c := range h.Contacts {
		items = append(items, c)
	}
	return items
}

func (h *activityItem) GetLastUpdated() *uint64 { return h.LastUpdated }
func (h *activityItem) GetPrivacyLevel() string { return h.PrivacyLevel }

type invoice struct {
	Bolt11       string   `json:"bolt11"`
	Description  string   `json:"description"`
	PaymentHash  string   `json:"payment_hash"`
	Preimage     string   `json:"preimage"`
	PayeePubkey  string   `json:"payee_pubkey"`
	AmountSats   *uint64  `json:"amount_sats"`
	Expire       uint64   `json:"expire"`
	Status       string   `json:"status"`
	FeesPaid     *uint64  `json:"fees_paid"`
	Inbound      bool     `json:"inbound"`
	Labels       []string `json:"labels"`
	LastUpdated  uint64   `json:"last_updated"`
	PrivacyLevel string   `json:"privacy_level"`
}

func (h *invoice) GetBolt11() string       { return h.Bolt11 }
func (h *invoice) GetDescription() string  { return h.Description }
func (h *invoice) GetPaymentHash() string  { return h.PaymentHash }
func (h *invoice) GetPreimage() string     { return h.Preimage }
func (h *invoice) GetPayeePubkey() string  { return h.PayeePubkey }
func (h *invoice) GetAmountSats() *uint64  { return h.AmountSats }
func (h *invoice) GetExpire() uint64       { return h.Expire }
func (h *invoice) GetStatus() string       { return h.Status }
func (h *invoice) GetFeesPaid() *uint64    { return h.FeesPaid }
func (h *invoice) IsInbound() bool         { return h.Inbound }
func (h *invoice) GetLabels() []string     { return h.Labels }
func (h *invoice) GetLastUpdated() uint64  { return h.LastUpdated }
func (h *invoice) GetPrivacyLevel() string { return h.PrivacyLevel }

type bip21Materials struct {
	Address   string   `json:"address"`
	Invoice   string   `json:"invoice"`
	BtcAmount string   `json:"btc_amount"`
	Labels    []string `json:"labels"`
}

func (h *bip21Materials) GetAddress() string   { return h.Address }
func (h *bip21Materials) GetInvoice() string   { return h.Invoice }
func (h *bip21Materials) GetBtcAmount() string { return h.BtcAmount }
func (h *bip21Materials) GetLabels() []string  { return h.Labels }

type transactionDetails struct {
	Txid             string   `json:"txid"`
	Received         uint64   `json:"received"`
	Sent             uint64   `json:"sent"`
	Fee              *uint64  `json:"fee"`
	ConfirmationTime *uint64  `json:"confirmation_time"`
	Labels           []string `json:"labels"`
	PrivacyLevel     string   `json:"privacy_level"`
}

func (h *transactionDetails) GetTxid() string              { return h.Txid }
func (h *transactionDetails) GetReceived() uint64          { return h.Received }
func (h *transactionDetails) GetSent() uint64              { return h.Sent }
func (h *transactionDetails) GetFee() *uint64              { return h.Fee }
func (h *transactionDetails) GetConfirmationTime() *uint64 { return h.ConfirmationTime }
func (h *transactionDetails) GetLabels() []string          { return h.Labels }
func (h *transactionDetails) GetPrivacyLevel() string      { return h.PrivacyLevel }

type lnUrlParams struct {
	Max uint64 `json:"max"`
	Min uint64 `json:"min"`
	Tag string `json:"tag"`
}

func (h *lnUrlParams) GetMax() uint64 { return h.Max }
func (h *lnUrlParams) GetMin() uint64 { return h.Min }
func (h *lnUrlParams) GetTag() string { return h.Tag }

type channel struct {
	UserChanID            string  `json:"user_chan_id"`
	Balance               uint64  `json:"balance"`
	Size                  uint64  `json:"size"`
	Reserve               uint64  `json:"reserve"`
	Inbound               uint64  `json:"inbound"`
	Outpoint              string  `json:"outpoint"`
	Peer                  string  `json:"peer"`
	ConfirmationsRequired *uint32 `json:"confirmations_required"`
	Confirmations         uint32  `json:"confirmations"`
	Outbound              bool    `json:"outbound"`
	Usable                bool    `json:"usable"`
	Anchor                bool    `json:"anchor"`
}

func (h *channel) GetUserChanID() string             { return h.UserChanID }
func (h *channel) GetBalance() uint64                { return h.Balance }
func (h *channel) GetSize() uint64                   { return h.Size }
func (h *channel) GetReserve() uint64                { return h.Reserve }
func (h *channel) GetInbound() uint64                { return h.Inbound }
func (h *channel) GetOutpoint() string               { return h.Outpoint }
func (h *channel) GetPeer() string                   { return h.Peer }
func (h *channel) GetConfirmationsRequired() *uint32 { return h.ConfirmationsRequired }
func (h *channel) GetConfirmations() uint32          { return h.Confirmations }
func (h *channel) IsOutbound() bool                  { return h.Outbound }
func (h *channel) IsUsable() bool                    { return h.Usable }
func (h *channel) IsAnchor() bool                    { return h.Anchor }

type channelClosure struct {
	ChannelID     string `json:"channel_id"`
	UserChannelID string `json:"user_channel_id"`
	NodeID        string `json:"node_id"`
	Reason        string `json:"reason"`
	Timestamp     uint64 `json:"timestamp"`
}

func (h *channelClosure) GetChannelID() string     { return h.ChannelID }
func (h *channelClosure) GetUserChannelID() string { return h.UserChannelID }
func (h *channelClosure) GetNodeID() string        { return h.NodeID }
func (h *channelClosure) GetReason() string        { return h.Reason }
func (h *channelClosure) GetTimestamp() uint64     { return h.Timestamp }

type peer struct {
	Pubkey           string `json:"pubkey"`
	ConnectionString string `json:"connection_string"`
	Alias            string `json:"alias"`
	Color            string `json:"color"`
	Label            string `json:"label"`
	Connected        bool   `json:"connected"`
}

func (h *peer) GetPubkey() string           { return h.Pubkey }
func (h *peer) GetConnectionString() string { return h.ConnectionString }
func (h *peer) GetAlias() string            { return h.Alias }
func (h *peer) GetColor() string            { return h.Color }
func (h *peer) GetLabel() string            { return h.Label }
func (h *peer) IsConnected() bool           { return h.Connected }

type nwcProfile struct {
	Name                   string   `json:"name"`
	Index                  uint32   `json:"index"`
	Relay                  string   `json:"relay"`
	Enabled                bool     `json:"enabled"`
	Archived               bool     `json:"archived"`
	NwcUri                 string   `json:"nwc_uri"`
	SpendingConditionsType string   `json:"spending_conditions_type"`
	RequireApproval        bool     `json:"require_approval"`
	BudgetAmount           *uint64  `json:"budget_amount"`
	BudgetPeriod           string   `json:"budget_period"`
	BudgetRemaining        *uint64  `json:"budget_remaining"`
	SingleMax              *uint64  `json:"single_max"`
	ActivePayments         []uint32 `json:"active_payments"`
	Tag                    string   `json:"tag"`
	Label                  string   `json:"label"`
}

func (h *nwcProfile) GetName() string                   { return h.Name }
func (h *nwcProfile) GetIndex() uint32                  { return h.Index }
func (h *nwcProfile) GetRelay() string                  { return h.Relay }
func (h *nwcProfile) IsEnabled() bool                   { return h.Enabled }
func (h *nwcProfile) IsArchived() bool                  { return h.Archived }
func (h *nwcProfile) GetNwcUri() string                 { return h.NwcUri }
func (h *nwcProfile) GetSpendingConditionsType() string { return h.SpendingConditionsType }
func (h *nwcProfile) RequiresApproval() bool            { return h.RequireApproval }
func (h *nwcProfile) GetBudgetAmount() *uint64          { return h.BudgetAmount }
func (h *nwcProfile) GetBudgetPeriod() string           { return h.BudgetPeriod }
func (h *nwcProfile) GetBudgetRemaining() *uint64       { return h.BudgetRemaining }
func (h *nwcProfile) GetSingleMax() *uint64             { return h.SingleMax }
func (h *nwcProfile) GetActivePayments() []uint32       { return h.ActivePayments }
func (h *nwcProfile) GetTag() string                    { return h.Tag }
func (h *nwcProfile) GetLabel() string                  { return h.Label }

type pendingNwcInvoice struct {
	Index              *uint32 `json:"index"`
	ID                 string  `json:"id"`
	ProfileName        string  `json:"profile_name"`
	Invoice            string  `json:"invoice"`
	AmountSats         uint64  `json:"amount_sats"`
	InvoiceDescription string  `json:"invoice_description"`
	Expiry             uint64  `json:"expiry"`
}

func (h *pendingNwcInvoice) GetIndex() *uint32             { return h.Index }
func (h *pendingNwcInvoice) GetID() string                 { return h.ID }
func (h *pendingNwcInvoice) GetProfileName() string        { return h.ProfileName }
func (h *pendingNwcInvoice) GetInvoice() string            { return h.Invoice }
func (h *pendingNwcInvoice) GetAmountSats() uint64         { return h.AmountSats }
func (h *pendingNwcInvoice) GetInvoiceDescription() string { return h.InvoiceDescription }
func (h *pendingNwcInvoice) GetExpiry() uint64             { return h.Expiry }

type directMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
	Date    uint64 `json:"date"`
	EventID string `json:"event_id"`
}

func (h *directMessage) GetFrom() string    { return h.From }
func (h *directMessage) GetTo() string      { return h.To }
func (h *directMessage) GetMessage() string { return h.Message }
func (h *directMessage) GetDate() uint64    { return h.Date }
func (h *directMessage) GetEventID() string { return h.EventID }

type nostrProfile struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Picture     string `json:"picture"`
	Lud16       string `json:"lud16"`
	Nip05       string `json:"nip05"`
	Deleted     bool   `json:"deleted"`
}

func (h *nostrProfile) GetName() string        { return h.Name }
func (h *nostrProfile) GetDisplayName() string { return h.DisplayName }
func (h *nostrProfile) GetPicture() string     { return h.Picture }
func (h *nostrProfile) GetLud16() string       { return h.Lud16 }
func (h *nostrProfile) GetNip05() string       { return h.Nip05 }
func (h *nostrProfile) IsDeleted() bool        { return h.Deleted }

type subscriptionPlan struct {
	ID         uint8  `json:"id"`
	AmountSats uint64 `json:"amount_sats"`
}

func (h *subscriptionPlan) GetID() uint8          { return h.ID }
func (h *subscriptionPlan) GetAmountSats() uint64 { return h.AmountSats }

type parsedParams struct {
	Address          string  `json:"address"`
	PayjoinEnabled   bool    `json:"payjoin_enabled"`
	PayjoinUrl       string  `json:"payjoin_url"`
	Invoice          string  `json:"invoice"`
	NodePubkey       string  `json:"node_pubkey"`
	Lnurl            string  `json:"lnurl"`
	LnurlAuth        bool    `json:"lnurl_auth"`
	LightningAddress string  `json:"lightning_address"`
	NostrWalletAuth  string  `json:"nostr_wallet_auth"`
	FedimintInvite   string  `json:"fedimint_invite"`
	Offer            string  `json:"offer"`
	AmountSats       *uint64 `json:"amount_sats"`
	Memo             string  `json:"memo"`
	Network          string  `json:"network"`
}

func (h *parsedParams) GetAddress() string          { return h.Address }
func (h *parsedParams) IsPayjoinEnabled() bool      { return h.PayjoinEnabled }
func (h *parsedParams) GetPayjoinUrl() string       { return h.PayjoinUrl }
func (h *parsedParams) GetInvoice() string          { return h.Invoice }
func (h *parsedParams) GetNodePubkey() string       { return h.NodePubkey }
func (h *parsedParams) GetLnurl() string            { return h.Lnurl }
func (h *parsedParams) IsLnurlAuth() bool           { return h.LnurlAuth }
func (h *parsedParams) GetLightningAddress() string { return h.LightningAddress }
func (h *parsedParams) GetNostrWalletAuth() string  { return h.NostrWalletAuth }
func (h *parsedParams) GetFedimintInvite() string   { return h.FedimintInvite }
func (h *parsedParams) GetOffer() string            { return h.Offer }
func (h *parsedParams) GetAmountSats() *uint64      { return h.AmountSats }
func (h *parsedParams) GetMemo() string             { return h.Memo }
func (h *parsedParams) GetNetwork() string          { return h.Network }

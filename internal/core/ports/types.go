package ports

// The engine returns handles rather than plain values. Each handle exposes
// getters only and must be reshaped into a domain value before it leaves the
// engine proxy.

type Balance interface {
	GetFederation() uint64
	GetLightning() uint64
	GetConfirmed() uint64
	GetUnconfirmed() uint64
	GetForceClose() uint64
}

type FederationIdentity interface {
	GetFederationID() string
	GetFederationName() string
	GetWelcomeMessage() string
	GetFederationExpiryTimestamp() uint64
	GetInviteCode() string
	GetMetaExternalUrl() string
	GetPopupEndTimestamp() uint64
	GetPopupCountdownMessage() string
}

type FederationBalance interface {
	GetIdentity() FederationIdentity
	GetBalance() uint64
}

type FedimintSweepResult interface {
	GetAmount() uint64
	GetFees() *uint64
}

type DiscoveredFederation interface {
	GetID() string
	GetName() string
	GetInviteCodes() []string
	GetPubkey() string
	GetPicture() string
	GetAbout() string
	GetUrl() string
	GetRecommendations() []string
}

type TagItem interface {
	GetID() string
	GetKind() string
	GetName() string
	GetNpub() string
	GetLnAddress() string
	GetLnurl() string
	GetImageUrl() string
	GetPrimalImageUrl() string
	IsFollowing() bool
	GetLastUsedTime() uint64
}

type ActivityItem interface {
	GetKind() string
	GetID() string
	GetAmountSats() *uint64
	IsInbound() bool
	GetLabels() []string
	GetContacts() []TagItem
	GetLastUpdated() *uint64
	GetPrivacyLevel() string
}

type Invoice interface {
	GetBolt11() string
	GetDescription() string
	GetPaymentHash() string
	GetPreimage() string
	GetPayeePubkey() string
	GetAmountSats() *uint64
	GetExpire() uint64
	GetStatus() string
	GetFeesPaid() *uint64
	IsInbound() bool
	GetLabels() []string
	GetLastUpdated() uint64
	GetPrivacyLevel() string
}

type Bip21Materials interface {
	GetAddress() string
	GetInvoice() string
	GetBtcAmount() string
	GetLabels() []string
}

type TransactionDetails interface {
	GetTxid() string
	GetReceived() uint64
	GetSent() uint64
	GetFee() *uint64
	GetConfirmationTime() *uint64
	GetLabels() []string
	GetPrivacyLevel() string
}

type LnUrlParams interface {
	GetMax() uint64
	GetMin() uint64
	GetTag() string
}

type Channel interface {
	GetUserChanID() string
	GetBalance() uint64
	GetSize() uint64
	GetReserve() uint64
	GetInbound() uint64
	GetOutpoint() string
	GetPeer() string
	GetConfirmationsRequired() *uint32
	GetConfirmations() uint32
	IsOutbound() bool
	IsUsable() bool
	IsAnchor() bool
}

type ChannelClosure interface {
	GetChannelID() string
	GetUserChannelID() string
	GetNodeID() string
	GetReason() string
	GetTimestamp() uint64
}

type Peer interface {
	GetPubkey() string
	GetConnectionString() string
	GetAlias() string
	GetColor() string
	GetLabel() string
	IsConnected() bool
}

type NwcProfile interface {
	GetName() string
	GetIndex() uint32
	GetRelay() string
	IsEnabled() bool
	IsArchived() bool
	GetNwcUri() string
	GetSpendingConditionsType() string
	RequiresApproval() bool
	GetBudgetAmount() *uint64
	GetBudgetPeriod() string
	GetBudgetRemaining() *uint64
	GetSingleMax() *uint64
	GetActivePayments() []uint32
	GetTag() string
	GetLabel() string
}

type PendingNwcInvoice interface {
	GetIndex() *uint32
	GetID() string
	GetProfileName() string
	GetInvoice() string
	GetAmountSats() uint64
	GetInvoiceDescription() string
	GetExpiry() uint64
}

type DirectMessage interface {
	GetFrom() string
	GetTo() string
	GetMessage() string
	GetDate() uint64
	GetEventID() string
}

type NostrProfile interface {
	GetName() string
	GetDisplayName() string
	GetPicture() string
	GetLud16() string
	GetNip05() string
	IsDeleted() bool
}

type SubscriptionPlan interface {
	GetID() uint8
	GetAmountSats() uint64
}

type ParsedParams interface {
	GetAddress() string
	IsPayjoinEnabled() bool
	GetPayjoinUrl() string
	GetInvoice() string
	GetNodePubkey() string
	GetLnurl() string
	IsLnurlAuth() bool
	GetLightningAddress() string
	GetNostrWalletAuth() string
	GetFedimintInvite() string
	GetOffer() string
	GetAmountSats() *uint64
	GetMemo() string
	GetNetwork() string
}

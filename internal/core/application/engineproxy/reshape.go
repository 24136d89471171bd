package engineproxy

import (
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

// The engine hands out handles that do not survive being passed around or
// serialized. Every value is copied field by field into its domain
// counterpart here, and nowhere else.

func balanceFromEngine(b ports.Balance) domain.Balance {
	if b == nil {
		return domain.Balance{}
	}
	return domain.Balance{
		Federation:  b.GetFederation(),
		Lightning:   b.GetLightning(),
		Confirmed:   b.GetConfirmed(),
		Unconfirmed: b.GetUnconfirmed(),
		ForceClose:  b.GetForceClose(),
	}
}

func federationFromEngine(f ports.FederationIdentity) domain.FederationIdentity {
	if f == nil {
		return domain.FederationIdentity{}
	}
	return domain.FederationIdentity{
		FederationID:       f.GetFederationID(),
		FederationName:     f.GetFederationName(),
		WelcomeMessage:     f.GetWelcomeMessage(),
		FederationExpiryTs: f.GetFederationExpiryTimestamp(),
		InviteCode:         f.GetInviteCode(),
		MetaExternalUrl:    f.GetMetaExternalUrl(),
		PopupEndTimestamp:  f.GetPopupEndTimestamp(),
		PopupCountdownMsg:  f.GetPopupCountdownMessage(),
	}
}

func federationBalanceFromEngine(
	b ports.FederationBalance,
) domain.FederationBalance {
	return domain.FederationBalance{
		Identity: federationFromEngine(b.GetIdentity()),
		Balance:  b.GetBalance(),
	}
}

func sweepResultFromEngine(
	r ports.FedimintSweepResult,
) domain.FedimintSweepResult {
	if r == nil {
		return domain.FedimintSweepResult{}
	}
	return domain.FedimintSweepResult{
		Amount: r.GetAmount(),
		Fees:   copyUint64(r.GetFees()),
	}
}

func discoveredFederationFromEngine(
	f ports.DiscoveredFederation,
) domain.DiscoveredFederation {
	return domain.DiscoveredFederation{
		ID:          f.GetID(),
		Name:        f.GetName(),
		InviteCodes: copyStrings(f.GetInviteCodes()),
		Pubkey:      f.GetPubkey(),
		Picture:     f.GetPicture(),
		About:       f.GetAbout(),
		Url:         f.GetUrl(),
		Recommended: copyStrings(f.GetRecommendations()),
	}
}

func tagItemFromEngine(t ports.TagItem) domain.TagItem {
	if t == nil {
		return domain.TagItem{}
	}
	return domain.TagItem{
		ID:             t.GetID(),
		Kind:           domain.TagKind(t.GetKind()),
		Name:           t.GetName(),
		Npub:           t.GetNpub(),
		LnAddress:      t.GetLnAddress(),
		Lnurl:          t.GetLnurl(),
		ImageUrl:       t.GetImageUrl(),
		PrimalImageUrl: t.GetPrimalImageUrl(),
		IsFollowing:    t.IsFollowing(),
		LastUsedTime:   t.GetLastUsedTime(),
	}
}

func activityItemFromEngine(a ports.ActivityItem) domain.ActivityItem {
	return domain.ActivityItem{
		Kind:        domain.ActivityKind(a.GetKind()),
		ID:          a.GetID(),
		AmountSats:  copyUint64(a.GetAmountSats()),
		Inbound:     a.IsInbound(),
		Labels:      copyStrings(a.GetLabels()),
		Contacts:    reshapeAll(a.GetContacts(), tagItemFromEngine),
		LastUpdated: copyUint64(a.GetLastUpdated()),
		Privacy:     domain.PrivacyLevel(a.GetPrivacyLevel()),
	}
}

func invoiceFromEngine(i ports.Invoice) domain.Invoice {
	if i == nil {
		return domain.Invoice{}
	}
	return domain.Invoice{
		Bolt11:      i.GetBolt11(),
		Description: i.GetDescription(),
		PaymentHash: i.GetPaymentHash(),
		Preimage:    i.GetPreimage(),
		PayeePubkey: i.GetPayeePubkey(),
		AmountSats:  copyUint64(i.GetAmountSats()),
		ExpireTime:  i.GetExpire(),
		Status:      i.GetStatus(),
		FeesPaid:    copyUint64(i.GetFeesPaid()),
		Inbound:     i.IsInbound(),
		Labels:      copyStrings(i.GetLabels()),
		LastUpdated: i.GetLastUpdated(),
		Privacy:     domain.PrivacyLevel(i.GetPrivacyLevel()),
	}
}

func bip21FromEngine(b ports.Bip21Materials) domain.Bip21Materials {
	if b == nil {
		return domain.Bip21Materials{}
	}
	return domain.Bip21Materials{
		Address:   b.GetAddress(),
		Invoice:   b.GetInvoice(),
		BtcAmount: b.GetBtcAmount(),
		Labels:    copyStrings(b.GetLabels()),
	}
}

func transactionFromEngine(
	t ports.TransactionDetails,
) *domain.TransactionDetails {
	if t == nil {
		return nil
	}
	return &domain.TransactionDetails{
		Txid:             t.GetTxid(),
		Received:         t.GetReceived(),
		Sent:             t.GetSent(),
		Fee:              copyUint64(t.GetFee()),
		ConfirmationTime: copyUint64(t.GetConfirmationTime()),
		Labels:           copyStrings(t.GetLabels()),
		Privacy:          domain.PrivacyLevel(t.GetPrivacyLevel()),
	}
}

func lnurlParamsFromEngine(p ports.LnUrlParams) domain.LnUrlParams {
	if p == nil {
		return domain.LnUrlParams{}
	}
	return domain.LnUrlParams{
		Max: p.GetMax(),
		Min: p.GetMin(),
		Tag: p.GetTag(),
	}
}

func channelFromEngine(c ports.Channel) domain.Channel {
	if c == nil {
		return domain.Channel{}
	}
	var confsRequired *uint32
	if v := c.GetConfirmationsRequired(); v != nil {
		n := *v
		confsRequired = &n
	}
	return domain.Channel{
		UserChanID:            c.GetUserChanID(),
		Balance:               c.GetBalance(),
		Size:                  c.GetSize(),
		Reserve:               c.GetReserve(),
		InboundLiquidity:      c.GetInbound(),
		Outpoint:              c.GetOutpoint(),
		Peer:                  c.GetPeer(),
		ConfirmationsRequired: confsRequired,
		Confirmations:         c.GetConfirmations(),
		IsOutbound:            c.IsOutbound(),
		IsUsable:              c.IsUsable(),
		IsAnchor:              c.IsAnchor(),
	}
}

func channelClosureFromEngine(c ports.ChannelClosure) domain.ChannelClosure {
	return domain.ChannelClosure{
		ChannelID:     c.GetChannelID(),
		UserChannelID: c.GetUserChannelID(),
		NodeID:        c.GetNodeID(),
		Reason:        c.GetReason(),
		Timestamp:     c.GetTimestamp(),
	}
}

func peerFromEngine(p ports.Peer) domain.Peer {
	return domain.Peer{
		Pubkey:           p.GetPubkey(),
		ConnectionString: p.GetConnectionString(),
		Alias:            p.GetAlias(),
		Color:            p.GetColor(),
		Label:            p.GetLabel(),
		IsConnected:      p.IsConnected(),
	}
}

func nwcProfileFromEngine(p ports.NwcProfile) domain.NwcProfile {
	if p == nil {
		return domain.NwcProfile{}
	}
	var activePayments []uint32
	if payments := p.GetActivePayments(); payments != nil {
		activePayments = append([]uint32{}, payments...)
	}
	return domain.NwcProfile{
		Name:            p.GetName(),
		Index:           p.GetIndex(),
		RelayUrl:        p.GetRelay(),
		Enabled:         p.IsEnabled(),
		Archived:        p.IsArchived(),
		NwcUri:          p.GetNwcUri(),
		SpendingType:    p.GetSpendingConditionsType(),
		RequireApproval: p.RequiresApproval(),
		BudgetAmount:    copyUint64(p.GetBudgetAmount()),
		BudgetPeriod:    domain.BudgetPeriod(p.GetBudgetPeriod()),
		BudgetRemaining: copyUint64(p.GetBudgetRemaining()),
		SingleMax:       copyUint64(p.GetSingleMax()),
		ActivePayments:  activePayments,
		Tag:             p.GetTag(),
		Label:           p.GetLabel(),
	}
}

func pendingNwcInvoiceFromEngine(
	i ports.PendingNwcInvoice,
) domain.PendingNwcInvoice {
	var index *uint32
	if v := i.GetIndex(); v != nil {
		n := *v
		index = &n
	}
	return domain.PendingNwcInvoice{
		Index:       index,
		ID:          i.GetID(),
		ProfileName: i.GetProfileName(),
		Invoice:     i.GetInvoice(),
		AmountSats:  i.GetAmountSats(),
		Description: i.GetInvoiceDescription(),
		Expiry:      i.GetExpiry(),
	}
}

func directMessageFromEngine(m ports.DirectMessage) domain.DirectMessage {
	return domain.DirectMessage{
		From:    m.GetFrom(),
		To:      m.GetTo(),
		Message: m.GetMessage(),
		Date:    m.GetDate(),
		EventID: m.GetEventID(),
	}
}

func nostrProfileFromEngine(p ports.NostrProfile) domain.NostrProfile {
	if p == nil {
		return domain.NostrProfile{}
	}
	return domain.NostrProfile{
		Name:        p.GetName(),
		DisplayName: p.GetDisplayName(),
		Picture:     p.GetPicture(),
		Lud16:       p.GetLud16(),
		Nip05:       p.GetNip05(),
		Deleted:     p.IsDeleted(),
	}
}

func subscriptionPlanFromEngine(
	p ports.SubscriptionPlan,
) domain.SubscriptionPlan {
	return domain.SubscriptionPlan{
		ID:         p.GetID(),
		AmountSats: p.GetAmountSats(),
	}
}

func parsedParamsFromEngine(p ports.ParsedParams) domain.ParsedParams {
	if p == nil {
		return domain.ParsedParams{}
	}
	return domain.ParsedParams{
		Address:          p.GetAddress(),
		PayjoinEnabled:   p.IsPayjoinEnabled(),
		PayjoinUrl:       p.GetPayjoinUrl(),
		Invoice:          p.GetInvoice(),
		NodePubkey:       p.GetNodePubkey(),
		Lnurl:            p.GetLnurl(),
		IsLnurlAuth:      p.IsLnurlAuth(),
		LightningAddress: p.GetLightningAddress(),
		NostrWalletAuth:  p.GetNostrWalletAuth(),
		FedimintInvite:   p.GetFedimintInvite(),
		Offer:            p.GetOffer(),
		AmountSats:       copyUint64(p.GetAmountSats()),
		Memo:             p.GetMemo(),
		Network:          domain.Network(p.GetNetwork()),
	}
}

func copyUint64(v *uint64) *uint64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

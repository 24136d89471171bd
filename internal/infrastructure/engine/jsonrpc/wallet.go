package jsonrpc

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

type params map[string]interface{}

// callWith omits the params of the request if args is empty.
func (e *engine) callWith(
	ctx context.Context, method string, args params, res interface{},
) error {
	if len(args) <= 0 {
		return e.call(ctx, method, nil, res)
	}
	return e.call(ctx, method, args, res)
}

// fetch calls method and returns the decoded handle H as its port type P.
func fetch[H any, P any](
	ctx context.Context, e *engine, method string, args params,
) (P, error) {
	h := new(H)
	if err := e.callWith(ctx, method, args, h); err != nil {
		var zero P
		return zero, err
	}
	return any(h).(P), nil
}

func fetchAll[H any, P any](
	ctx context.Context, e *engine, method string, args params,
) ([]P, error) {
	var hs []*H
	if err := e.callWith(ctx, method, args, &hs); err != nil {
		return nil, err
	}
	res := make([]P, 0, len(hs))
	for _, h := range hs {
		res = append(res, any(h).(P))
	}
	return res, nil
}

func value[T any](
	ctx context.Context, e *engine, method string, args params,
) (T, error) {
	var res T
	err := e.callWith(ctx, method, args, &res)
	return res, err
}

type wallet struct {
	e *engine
}

func newWallet(e *engine) *wallet {
	return &wallet{e}
}

func (w *wallet) Node() ports.NodeManager              { return &nodeManager{w.e} }
func (w *wallet) Contacts() ports.ContactManager       { return &contactManager{w.e} }
func (w *wallet) Nostr() ports.NostrManager            { return &nostrManager{w.e} }
func (w *wallet) Federations() ports.FederationManager { return &federationManager{w.e} }
func (w *wallet) Nwc() ports.NwcManager                { return &nwcManager{w.e} }

func (w *wallet) Stop(ctx context.Context) error {
	return w.e.call(ctx, "stop", nil, nil)
}

type nodeManager struct {
	e *engine
}

func (n *nodeManager) GetBalance(ctx context.Context) (ports.Balance, error) {
	return fetch[balance, ports.Balance](ctx, n.e, "get_balance", nil)
}

func (n *nodeManager) GetNetwork(ctx context.Context) (string, error) {
	return value[string](ctx, n.e, "get_network", nil)
}

func (n *nodeManager) GetNewAddress(
	ctx context.Context, labels []string,
) (ports.Bip21Materials, error) {
	return fetch[bip21Materials, ports.Bip21Materials](
		ctx, n.e, "get_new_address", params{"labels": labels},
	)
}

func (n *nodeManager) CreateBip21(
	ctx context.Context, amount *uint64, labels []string,
) (ports.Bip21Materials, error) {
	return fetch[bip21Materials, ports.Bip21Materials](
		ctx, n.e, "create_bip21", params{"amount": amount, "labels": labels},
	)
}

func (n *nodeManager) CreateInvoice(
	ctx context.Context, amount uint64, labels []string,
) (ports.Invoice, error) {
	return fetch[invoice, ports.Invoice](
		ctx, n.e, "create_invoice", params{"amount": amount, "labels": labels},
	)
}

func (n *nodeManager) PayInvoice(
	ctx context.Context, inv string, amount *uint64, labels []string,
) (ports.Invoice, error) {
	return fetch[invoice, ports.Invoice](ctx, n.e, "pay_invoice", params{
		"invoice": inv, "amount": amount, "labels": labels,
	})
}

func (n *nodeManager) DecodeInvoice(
	ctx context.Context, inv string,
) (ports.Invoice, error) {
	return fetch[invoice, ports.Invoice](
		ctx, n.e, "decode_invoice", params{"invoice": inv},
	)
}

func (n *nodeManager) GetInvoice(
	ctx context.Context, hash string,
) (ports.Invoice, error) {
	return fetch[invoice, ports.Invoice](
		ctx, n.e, "get_invoice_by_hash", params{"hash": hash},
	)
}

func (n *nodeManager) ListInvoices(ctx context.Context) ([]ports.Invoice, error) {
	return fetchAll[invoice, ports.Invoice](ctx, n.e, "list_invoices", nil)
}

func (n *nodeManager) KeysendPayment(
	ctx context.Context, pubkey string, amount uint64, message string,
	labels []string,
) (ports.Invoice, error) {
	return fetch[invoice, ports.Invoice](ctx, n.e, "keysend", params{
		"pubkey": pubkey, "amount": amount, "message": message, "labels": labels,
	})
}

func (n *nodeManager) SendToAddress(
	ctx context.Context, address string, amount uint64, labels []string,
	feeRate *float64,
) (string, error) {
	return value[string](ctx, n.e, "send_to_address", params{
		"address": address, "amount": amount, "labels": labels,
		"fee_rate": feeRate,
	})
}

func (n *nodeManager) SweepWallet(
	ctx context.Context, address string, labels []string, feeRate *float64,
) (string, error) {
	return value[string](ctx, n.e, "sweep_wallet", params{
		"address": address, "labels": labels, "fee_rate": feeRate,
	})
}

func (n *nodeManager) EstimateTxFee(
	ctx context.Context, address string, amount uint64, feeRate *float64,
) (uint64, error) {
	return value[uint64](ctx, n.e, "estimate_tx_fee", params{
		"address": address, "amount": amount, "fee_rate": feeRate,
	})
}

func (n *nodeManager) EstimateSweepChannelOpenFee(
	ctx context.Context, feeRate *float64,
) (uint64, error) {
	return value[uint64](
		ctx, n.e, "estimate_sweep_channel_open_fee", params{"fee_rate": feeRate},
	)
}

func (n *nodeManager) EstimateFeeLow(ctx context.Context) (uint64, error) {
	return value[uint64](ctx, n.e, "estimate_fee_low", nil)
}

func (n *nodeManager) EstimateFeeNormal(ctx context.Context) (uint64, error) {
	return value[uint64](ctx, n.e, "estimate_fee_normal", nil)
}

func (n *nodeManager) EstimateFeeHigh(ctx context.Context) (uint64, error) {
	return value[uint64](ctx, n.e, "estimate_fee_high", nil)
}

func (n *nodeManager) GetTransaction(
	ctx context.Context, txid string,
) (ports.TransactionDetails, error) {
	return fetch[transactionDetails, ports.TransactionDetails](
		ctx, n.e, "get_transaction", params{"txid": txid},
	)
}

// CheckAddress returns a nil handle if nothing was received to address yet.
func (n *nodeManager) CheckAddress(
	ctx context.Context, address string,
) (ports.TransactionDetails, error) {
	var res *transactionDetails
	err := n.e.call(ctx, "check_address", params{"address": address}, &res)
	if err != nil || res == nil {
		return nil, err
	}
	return res, nil
}

func (n *nodeManager) LnurlPay(
	ctx context.Context, lnurl string, amount uint64, zapNpub string,
	labels []string, comment string,
) (ports.Invoice, error) {
	return fetch[invoice, ports.Invoice](ctx, n.e, "lnurl_pay", params{
		"lnurl": lnurl, "amount": amount, "zap_npub": zapNpub,
		"labels": labels, "comment": comment,
	})
}

func (n *nodeManager) LnurlWithdraw(
	ctx context.Context, lnurl string, amount uint64,
) (bool, error) {
	return value[bool](ctx, n.e, "lnurl_withdraw", params{
		"lnurl": lnurl, "amount": amount,
	})
}

func (n *nodeManager) LnurlAuth(ctx context.Context, lnurl string) error {
	return n.e.call(ctx, "lnurl_auth", params{"lnurl": lnurl}, nil)
}

func (n *nodeManager) DecodeLnurl(
	ctx context.Context, lnurl string,
) (ports.LnUrlParams, error) {
	return fetch[lnUrlParams, ports.LnUrlParams](
		ctx, n.e, "decode_lnurl", params{"lnurl": lnurl},
	)
}

func (n *nodeManager) ListPeers(ctx context.Context) ([]ports.Peer, error) {
	return fetchAll[peer, ports.Peer](ctx, n.e, "list_peers", nil)
}

func (n *nodeManager) ConnectToPeer(
	ctx context.Context, connectionString, label string,
) error {
	return n.e.call(ctx, "connect_to_peer", params{
		"connection_string": connectionString, "label": label,
	}, nil)
}

func (n *nodeManager) DisconnectPeer(ctx context.Context, pubkey string) error {
	return n.e.call(ctx, "disconnect_peer", params{"pubkey": pubkey}, nil)
}

func (n *nodeManager) DeletePeer(ctx context.Context, pubkey string) error {
	return n.e.call(ctx, "delete_peer", params{"pubkey": pubkey}, nil)
}

func (n *nodeManager) ListChannels(ctx context.Context) ([]ports.Channel, error) {
	return fetchAll[channel, ports.Channel](ctx, n.e, "list_channels", nil)
}

func (n *nodeManager) OpenChannel(
	ctx context.Context, pubkey string, amount uint64, feeRate *float64,
) (ports.Channel, error) {
	return fetch[channel, ports.Channel](ctx, n.e, "open_channel", params{
		"pubkey": pubkey, "amount": amount, "fee_rate": feeRate,
	})
}

func (n *nodeManager) SweepAllToChannel(
	ctx context.Context, pubkey string,
) (ports.Channel, error) {
	return fetch[channel, ports.Channel](
		ctx, n.e, "sweep_all_to_channel", params{"pubkey": pubkey},
	)
}

func (n *nodeManager) CloseChannel(
	ctx context.Context, outpoint string, force, abandon bool,
) error {
	return n.e.call(ctx, "close_channel", params{
		"outpoint": outpoint, "force": force, "abandon": abandon,
	}, nil)
}

func (n *nodeManager) ListChannelClosures(
	ctx context.Context,
) ([]ports.ChannelClosure, error) {
	return fetchAll[channelClosure, ports.ChannelClosure](
		ctx, n.e, "list_channel_closures", nil,
	)
}

func (n *nodeManager) GetActivity(
	ctx context.Context, limit, offset *uint32,
) ([]ports.ActivityItem, error) {
	return fetchAll[activityItem, ports.ActivityItem](
		ctx, n.e, "get_activity", params{"limit": limit, "offset": offset},
	)
}

func (n *nodeManager) GetLabelActivity(
	ctx context.Context, label string,
) ([]ports.ActivityItem, error) {
	return fetchAll[activityItem, ports.ActivityItem](
		ctx, n.e, "get_label_activity", params{"label": label},
	)
}

func (n *nodeManager) ChangeLsp(
	ctx context.Context, lsp domain.LspConfig,
) error {
	return n.e.call(ctx, "change_lsp", lsp, nil)
}

func (n *nodeManager) GetLogs(ctx context.Context) ([]string, error) {
	return value[[]string](ctx, n.e, "get_logs", nil)
}

func (n *nodeManager) ExportJSON(
	ctx context.Context, password string,
) (string, error) {
	return value[string](ctx, n.e, "export_json", params{"password": password})
}

func (n *nodeManager) ShowSeed(ctx context.Context) (string, error) {
	return value[string](ctx, n.e, "show_seed", nil)
}

func (n *nodeManager) ChangePassword(
	ctx context.Context, oldPwd, newPwd string,
) error {
	return n.e.call(ctx, "change_password", params{
		"old_password": oldPwd, "new_password": newPwd,
	}, nil)
}

func (n *nodeManager) ResetRouter(ctx context.Context) error {
	return n.e.call(ctx, "reset_router", nil, nil)
}

func (n *nodeManager) ResetOnchainTracker(ctx context.Context) error {
	return n.e.call(ctx, "reset_onchain_tracker", nil, nil)
}

func (n *nodeManager) GetBitcoinPrice(
	ctx context.Context, fiat string,
) (float64, error) {
	return value[float64](
		ctx, n.e, "get_bitcoin_price", params{"fiat": fiat},
	)
}

func (n *nodeManager) CheckSubscribed(ctx context.Context) (*uint64, error) {
	return value[*uint64](ctx, n.e, "check_subscribed", nil)
}

func (n *nodeManager) GetSubscriptionPlans(
	ctx context.Context,
) ([]ports.SubscriptionPlan, error) {
	return fetchAll[subscriptionPlan, ports.SubscriptionPlan](
		ctx, n.e, "get_subscription_plans", nil,
	)
}

func (n *nodeManager) SubscribeToPlan(
	ctx context.Context, id uint8,
) (ports.Invoice, error) {
	return fetch[invoice, ports.Invoice](
		ctx, n.e, "subscribe_to_plan", params{"id": id},
	)
}

func (n *nodeManager) PaySubscriptionInvoice(
	ctx context.Context, inv string, autopay bool,
) error {
	return n.e.call(ctx, "pay_subscription_invoice", params{
		"invoice": inv, "autopay": autopay,
	}, nil)
}

type contactManager struct {
	e *engine
}

func (c *contactManager) GetContacts(
	ctx context.Context,
) ([]ports.TagItem, error) {
	return fetchAll[tagItem, ports.TagItem](
		ctx, c.e, "get_contacts_sorted", nil,
	)
}

func (c *contactManager) GetTagItem(
	ctx context.Context, id string,
) (ports.TagItem, error) {
	return fetch[tagItem, ports.TagItem](
		ctx, c.e, "get_tag_item", params{"id": id},
	)
}

func (c *contactManager) CreateNewContact(
	ctx context.Context, contact domain.Contact,
) (string, error) {
	return value[string](ctx, c.e, "create_new_contact", params{
		"contact": contact,
	})
}

func (c *contactManager) EditContact(
	ctx context.Context, id string, contact domain.Contact,
) error {
	return c.e.call(ctx, "edit_contact", params{
		"id": id, "contact": contact,
	}, nil)
}

func (c *contactManager) DeleteContact(ctx context.Context, id string) error {
	return c.e.call(ctx, "delete_contact", params{"id": id}, nil)
}

func (c *contactManager) SyncNostrContacts(
	ctx context.Context, npub string,
) error {
	return c.e.call(ctx, "sync_nostr_contacts", params{"npub": npub}, nil)
}

func (c *contactManager) FollowNpub(ctx context.Context, npub string) error {
	return c.e.call(ctx, "follow_npub", params{"npub": npub}, nil)
}

func (c *contactManager) UnfollowNpub(ctx context.Context, npub string) error {
	return c.e.call(ctx, "unfollow_npub", params{"npub": npub}, nil)
}

type nostrManager struct {
	e *engine
}

func (n *nostrManager) GetNpub(ctx context.Context) (string, error) {
	return value[string](ctx, n.e, "get_npub", nil)
}

func (n *nostrManager) GetNostrProfile(
	ctx context.Context,
) (ports.NostrProfile, error) {
	return fetch[nostrProfile, ports.NostrProfile](
		ctx, n.e, "get_nostr_profile", nil,
	)
}

func (n *nostrManager) EditNostrProfile(
	ctx context.Context, profile domain.NostrProfile,
) (ports.NostrProfile, error) {
	return fetch[nostrProfile, ports.NostrProfile](
		ctx, n.e, "edit_nostr_profile", params{"profile": profile},
	)
}

func (n *nostrManager) SendDM(
	ctx context.Context, npub, message string,
) (string, error) {
	return value[string](ctx, n.e, "send_dm", params{
		"npub": npub, "message": message,
	})
}

func (n *nostrManager) GetDMConversation(
	ctx context.Context, npub string, limit uint64, until, since *uint64,
) ([]ports.DirectMessage, error) {
	return fetchAll[directMessage, ports.DirectMessage](
		ctx, n.e, "get_dm_conversation", params{
			"npub": npub, "limit": limit, "until": until, "since": since,
		},
	)
}

func (n *nostrManager) GetPendingNwcInvoices(
	ctx context.Context,
) ([]ports.PendingNwcInvoice, error) {
	return fetchAll[pendingNwcInvoice, ports.PendingNwcInvoice](
		ctx, n.e, "get_pending_nwc_invoices", nil,
	)
}

func (n *nostrManager) ApproveInvoice(ctx context.Context, hash string) error {
	return n.e.call(ctx, "approve_invoice", params{"hash": hash}, nil)
}

func (n *nostrManager) DenyInvoice(ctx context.Context, hash string) error {
	return n.e.call(ctx, "deny_invoice", params{"hash": hash}, nil)
}

func (n *nostrManager) DenyAllPendingNwc(ctx context.Context) error {
	return n.e.call(ctx, "deny_all_pending_nwc", nil, nil)
}

type federationManager struct {
	e *engine
}

func (f *federationManager) ListFederations(
	ctx context.Context,
) ([]ports.FederationIdentity, error) {
	return fetchAll[federationIdentity, ports.FederationIdentity](
		ctx, f.e, "list_federations", nil,
	)
}

func (f *federationManager) NewFederation(
	ctx context.Context, inviteCode string,
) (ports.FederationIdentity, error) {
	return fetch[federationIdentity, ports.FederationIdentity](
		ctx, f.e, "new_federation", params{"invite_code": inviteCode},
	)
}

func (f *federationManager) RemoveFederation(
	ctx context.Context, federationID string,
) error {
	return f.e.call(ctx, "remove_federation", params{
		"federation_id": federationID,
	}, nil)
}

func (f *federationManager) SweepFederationBalance(
	ctx context.Context, amount *uint64, fromFederationID,
	toFederationID string,
) (ports.FedimintSweepResult, error) {
	return fetch[fedimintSweepResult, ports.FedimintSweepResult](
		ctx, f.e, "sweep_federation_balance", params{
			"amount": amount, "from_federation_id": fromFederationID,
			"to_federation_id": toFederationID,
		},
	)
}

func (f *federationManager) EstimateSweepFederationFee(
	ctx context.Context, amount *uint64, fromFederationID,
	toFederationID string,
) (uint64, error) {
	return value[uint64](ctx, f.e, "estimate_sweep_federation_fee", params{
		"amount": amount, "from_federation_id": fromFederationID,
		"to_federation_id": toFederationID,
	})
}

func (f *federationManager) GetFederationBalances(
	ctx context.Context,
) ([]ports.FederationBalance, error) {
	return fetchAll[federationBalance, ports.FederationBalance](
		ctx, f.e, "get_federation_balances", nil,
	)
}

func (f *federationManager) DiscoverFederations(
	ctx context.Context,
) ([]ports.DiscoveredFederation, error) {
	return fetchAll[discoveredFederation, ports.DiscoveredFederation](
		ctx, f.e, "discover_federations", nil,
	)
}

func (f *federationManager) RecommendFederation(
	ctx context.Context, inviteCode string,
) (string, error) {
	return value[string](ctx, f.e, "recommend_federation", params{
		"invite_code": inviteCode,
	})
}

type nwcManager struct {
	e *engine
}

func (n *nwcManager) GetNwcProfiles(
	ctx context.Context,
) ([]ports.NwcProfile, error) {
	return fetchAll[nwcProfile, ports.NwcProfile](
		ctx, n.e, "get_nwc_profiles", nil,
	)
}

func (n *nwcManager) GetNwcProfile(
	ctx context.Context, index uint32,
) (ports.NwcProfile, error) {
	return fetch[nwcProfile, ports.NwcProfile](
		ctx, n.e, "get_nwc_profile", params{"index": index},
	)
}

func (n *nwcManager) CreateBudgetNwcProfile(
	ctx context.Context, name string, budget uint64, period string,
	singleMax *uint64,
) (ports.NwcProfile, error) {
	return fetch[nwcProfile, ports.NwcProfile](
		ctx, n.e, "create_budget_nwc_profile", params{
			"name": name, "budget": budget, "period": period,
			"single_max": singleMax,
		},
	)
}

func (n *nwcManager) CreateSingleUseNwcProfile(
	ctx context.Context, name string, amount uint64,
) (ports.NwcProfile, error) {
	return fetch[nwcProfile, ports.NwcProfile](
		ctx, n.e, "create_single_use_nwc", params{
			"name": name, "amount": amount,
		},
	)
}

func (n *nwcManager) DeleteNwcProfile(ctx context.Context, index uint32) error {
	return n.e.call(ctx, "delete_nwc_profile", params{"index": index}, nil)
}

func (n *nwcManager) SetNwcProfileBudget(
	ctx context.Context, index uint32, budget uint64, period string,
	singleMax *uint64,
) (ports.NwcProfile, error) {
	return fetch[nwcProfile, ports.NwcProfile](
		ctx, n.e, "set_nwc_profile_budget", params{
			"index": index, "budget": budget, "period": period,
			"single_max": singleMax,
		},
	)
}

func (n *nwcManager) SetNwcProfileRequireApproval(
	ctx context.Context, index uint32,
) (ports.NwcProfile, error) {
	return fetch[nwcProfile, ports.NwcProfile](
		ctx, n.e, "set_nwc_profile_require_approval", params{"index": index},
	)
}

func (n *nwcManager) ApproveNostrWalletAuth(
	ctx context.Context, name, uri string,
) (ports.NwcProfile, error) {
	return fetch[nwcProfile, ports.NwcProfile](
		ctx, n.e, "approve_nostr_wallet_auth", params{
			"name": name, "uri": uri,
		},
	)
}

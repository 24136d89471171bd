package ports

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
)

// Engine is the boundary to the compiled wallet engine. Only the calls that
// do not need a constructed wallet live here.
type Engine interface {
	// Load makes the engine module available.
	Load(ctx context.Context) error
	// Version is a pure call used to probe whether the engine is loaded.
	Version(ctx context.Context) (string, error)
	HasNodeManager(ctx context.Context) (bool, error)
	NewWallet(ctx context.Context, args WalletArgs) (Wallet, error)
	ParseParams(ctx context.Context, str, network string) (ParsedParams, error)
	ImportJSON(ctx context.Context, json string) error
	RestoreMnemonic(ctx context.Context, mnemonic, password string) error
	DeleteAll(ctx context.Context) error
	Close()
}

// WalletArgs are the arguments the engine wallet is constructed with.
type WalletArgs struct {
	Settings       domain.Settings
	Password       string
	Nsec           string
	SafeMode       bool
	SkipDeviceLock bool
}

// Wallet is the handle of a constructed engine wallet.
type Wallet interface {
	Node() NodeManager
	Contacts() ContactManager
	Nostr() NostrManager
	Federations() FederationManager
	Nwc() NwcManager
	Stop(ctx context.Context) error
}

type NodeManager interface {
	GetBalance(ctx context.Context) (Balance, error)
	GetNetwork(ctx context.Context) (string, error)
	GetNewAddress(ctx context.Context, labels []string) (Bip21Materials, error)
	CreateBip21(
		ctx context.Context, amount *uint64, labels []string,
	) (Bip21Materials, error)
	CreateInvoice(
		ctx context.Context, amount uint64, labels []string,
	) (Invoice, error)
	PayInvoice(
		ctx context.Context, invoice string, amount *uint64, labels []string,
	) (Invoice, error)
	DecodeInvoice(ctx context.Context, invoice string) (Invoice, error)
	GetInvoice(ctx context.Context, hash string) (Invoice, error)
	ListInvoices(ctx context.Context) ([]Invoice, error)
	KeysendPayment(
		ctx context.Context, pubkey string, amount uint64, message string,
		labels []string,
	) (Invoice, error)
	SendToAddress(
		ctx context.Context, address string, amount uint64, labels []string,
		feeRate *float64,
	) (string, error)
	SweepWallet(
		ctx context.Context, address string, labels []string, feeRate *float64,
	) (string, error)
	EstimateTxFee(
		ctx context.Context, address string, amount uint64, feeRate *float64,
	) (uint64, error)
	EstimateSweepChannelOpenFee(
		ctx context.Context, feeRate *float64,
	) (uint64, error)
	EstimateFeeLow(ctx context.Context) (uint64, error)
	EstimateFeeNormal(ctx context.Context) (uint64, error)
	EstimateFeeHigh(ctx context.Context) (uint64, error)
	GetTransaction(ctx context.Context, txid string) (TransactionDetails, error)
	CheckAddress(ctx context.Context, address string) (TransactionDetails, error)
	LnurlPay(
		ctx context.Context, lnurl string, amount uint64, zapNpub string,
		labels []string, comment string,
	) (Invoice, error)
	LnurlWithdraw(ctx context.Context, lnurl string, amount uint64) (bool, error)
	LnurlAuth(ctx context.Context, lnurl string) error
	DecodeLnurl(ctx context.Context, lnurl string) (LnUrlParams, error)
	ListPeers(ctx context.Context) ([]Peer, error)
	ConnectToPeer(ctx context.Context, connectionString, label string) error
	DisconnectPeer(ctx context.Context, pubkey string) error
	DeletePeer(ctx context.Context, pubkey string) error
	ListChannels(ctx context.Context) ([]Channel, error)
	OpenChannel(
		ctx context.Context, pubkey string, amount uint64, feeRate *float64,
	) (Channel, error)
	SweepAllToChannel(ctx context.Context, pubkey string) (Channel, error)
	CloseChannel(
		ctx context.Context, outpoint string, force, abandon bool,
	) error
	ListChannelClosures(ctx context.Context) ([]ChannelClosure, error)
	GetActivity(
		ctx context.Context, limit, offset *uint32,
	) ([]ActivityItem, error)
	GetLabelActivity(ctx context.Context, label string) ([]ActivityItem, error)
	ChangeLsp(ctx context.Context, lsp domain.LspConfig) error
	GetLogs(ctx context.Context) ([]string, error)
	ExportJSON(ctx context.Context, password string) (string, error)
	ShowSeed(ctx context.Context) (string, error)
	ChangePassword(ctx context.Context, oldPwd, newPwd string) error
	ResetRouter(ctx context.Context) error
	ResetOnchainTracker(ctx context.Context) error
	GetBitcoinPrice(ctx context.Context, fiat string) (float64, error)
	CheckSubscribed(ctx context.Context) (*uint64, error)
	GetSubscriptionPlans(ctx context.Context) ([]SubscriptionPlan, error)
	SubscribeToPlan(ctx context.Context, id uint8) (Invoice, error)
	PaySubscriptionInvoice(
		ctx context.Context, invoice string, autopay bool,
	) error
}

type ContactManager interface {
	GetContacts(ctx context.Context) ([]TagItem, error)
	GetTagItem(ctx context.Context, id string) (TagItem, error)
	CreateNewContact(ctx context.Context, contact domain.Contact) (string, error)
	EditContact(ctx context.Context, id string, contact domain.Contact) error
	DeleteContact(ctx context.Context, id string) error
	SyncNostrContacts(ctx context.Context, npub string) error
	FollowNpub(ctx context.Context, npub string) error
	UnfollowNpub(ctx context.Context, npub string) error
}

type NostrManager interface {
	GetNpub(ctx context.Context) (string, error)
	GetNostrProfile(ctx context.Context) (NostrProfile, error)
	EditNostrProfile(
		ctx context.Context, profile domain.NostrProfile,
	) (NostrProfile, error)
	SendDM(ctx context.Context, npub, message string) (string, error)
	GetDMConversation(
		ctx context.Context, npub string, limit uint64, until, since *uint64,
	) ([]DirectMessage, error)
	GetPendingNwcInvoices(ctx context.Context) ([]PendingNwcInvoice, error)
	ApproveInvoice(ctx context.Context, hash string) error
	DenyInvoice(ctx context.Context, hash string) error
	DenyAllPendingNwc(ctx context.Context) error
}

type FederationManager interface {
	ListFederations(ctx context.Context) ([]FederationIdentity, error)
	NewFederation(
		ctx context.Context, inviteCode string,
	) (FederationIdentity, error)
	RemoveFederation(ctx context.Context, federationID string) error
	SweepFederationBalance(
		ctx context.Context, amount *uint64, fromFederationID,
		toFederationID string,
	) (FedimintSweepResult, error)
	EstimateSweepFederationFee(
		ctx context.Context, amount *uint64, fromFederationID,
		toFederationID string,
	) (uint64, error)
	GetFederationBalances(ctx context.Context) ([]FederationBalance, error)
	DiscoverFederations(ctx context.Context) ([]DiscoveredFederation, error)
	RecommendFederation(ctx context.Context, inviteCode string) (string, error)
}

type NwcManager interface {
	GetNwcProfiles(ctx context.Context) ([]NwcProfile, error)
	GetNwcProfile(ctx context.Context, index uint32) (NwcProfile, error)
	CreateBudgetNwcProfile(
		ctx context.Context, name string, budget uint64, period string,
		singleMax *uint64,
	) (NwcProfile, error)
	CreateSingleUseNwcProfile(
		ctx context.Context, name string, amount uint64,
	) (NwcProfile, error)
	DeleteNwcProfile(ctx context.Context, index uint32) error
	SetNwcProfileBudget(
		ctx context.Context, index uint32, budget uint64, period string,
		singleMax *uint64,
	) (NwcProfile, error)
	SetNwcProfileRequireApproval(
		ctx context.Context, index uint32,
	) (NwcProfile, error)
	ApproveNostrWalletAuth(
		ctx context.Context, name, uri string,
	) (NwcProfile, error)
}

package engineproxy_test

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockEngine) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockEngine) HasNodeManager(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *mockEngine) NewWallet(
	ctx context.Context, walletArgs ports.WalletArgs,
) (ports.Wallet, error) {
	args := m.Called(ctx, walletArgs)
	var res ports.Wallet
	if a := args.Get(0); a != nil {
		res = a.(ports.Wallet)
	}
	return res, args.Error(1)
}

func (m *mockEngine) ParseParams(
	ctx context.Context, str, network string,
) (ports.ParsedParams, error) {
	args := m.Called(ctx, str, network)
	var res ports.ParsedParams
	if a := args.Get(0); a != nil {
		res = a.(ports.ParsedParams)
	}
	return res, args.Error(1)
}

func (m *mockEngine) ImportJSON(ctx context.Context, json string) error {
	args := m.Called(ctx, json)
	return args.Error(0)
}

func (m *mockEngine) RestoreMnemonic(
	ctx context.Context, mnemonic, password string,
) error {
	args := m.Called(ctx, mnemonic, password)
	return args.Error(0)
}

func (m *mockEngine) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockEngine) Close() {}

type mockWallet struct {
	mock.Mock
	node        *mockNode
	contacts    *mockContacts
	federations *mockFederations
}

func newMockWallet() *mockWallet {
	return &mockWallet{
		node:        &mockNode{},
		contacts:    &mockContacts{},
		federations: &mockFederations{},
	}
}

func (m *mockWallet) Node() ports.NodeManager              { return m.node }
func (m *mockWallet) Contacts() ports.ContactManager       { return m.contacts }
func (m *mockWallet) Nostr() ports.NostrManager            { return nil }
func (m *mockWallet) Federations() ports.FederationManager { return m.federations }
func (m *mockWallet) Nwc() ports.NwcManager                { return nil }

func (m *mockWallet) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Only the methods exercised by the tests are mocked, calling any other
// one panics.
type mockNode struct {
	mock.Mock
	ports.NodeManager
}

func (m *mockNode) GetBalance(ctx context.Context) (ports.Balance, error) {
	args := m.Called(ctx)
	var res ports.Balance
	if a := args.Get(0); a != nil {
		res = a.(ports.Balance)
	}
	return res, args.Error(1)
}

func (m *mockNode) GetNetwork(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockNode) GetActivity(
	ctx context.Context, limit, offset *uint32,
) ([]ports.ActivityItem, error) {
	args := m.Called(ctx, limit, offset)
	var res []ports.ActivityItem
	if a := args.Get(0); a != nil {
		res = a.([]ports.ActivityItem)
	}
	return res, args.Error(1)
}

func (m *mockNode) PayInvoice(
	ctx context.Context, invoice string, amount *uint64, labels []string,
) (ports.Invoice, error) {
	args := m.Called(ctx, invoice, amount, labels)
	var res ports.Invoice
	if a := args.Get(0); a != nil {
		res = a.(ports.Invoice)
	}
	return res, args.Error(1)
}

func (m *mockNode) CheckAddress(
	ctx context.Context, address string,
) (ports.TransactionDetails, error) {
	args := m.Called(ctx, address)
	var res ports.TransactionDetails
	if a := args.Get(0); a != nil {
		res = a.(ports.TransactionDetails)
	}
	return res, args.Error(1)
}

type mockContacts struct {
	mock.Mock
	ports.ContactManager
}

func (m *mockContacts) CreateNewContact(
	ctx context.Context, contact domain.Contact,
) (string, error) {
	args := m.Called(ctx, contact)
	return args.String(0), args.Error(1)
}

type mockFederations struct {
	mock.Mock
	ports.FederationManager
}

func (m *mockFederations) ListFederations(
	ctx context.Context,
) ([]ports.FederationIdentity, error) {
	args := m.Called(ctx)
	var res []ports.FederationIdentity
	if a := args.Get(0); a != nil {
		res = a.([]ports.FederationIdentity)
	}
	return res, args.Error(1)
}

type balance struct {
	federation, lightning, confirmed, unconfirmed, forceClose uint64
}

func (b balance) GetFederation() uint64  { return b.federation }
func (b balance) GetLightning() uint64   { return b.lightning }
func (b balance) GetConfirmed() uint64   { return b.confirmed }
func (b balance) GetUnconfirmed() uint64 { return b.unconfirmed }
func (b balance) GetForceClose() uint64  { return b.forceClose }

type federation struct {
	id, name, popupMsg string
	popupEnd          uint64
}

func (f federation) GetFederationID() string              { return f.id }
func (f federation) GetFederationName() string            { return f.name }
func (f federation) GetWelcomeMessage() string            { return "" }
func (f federation) GetFederationExpiryTimestamp() uint64 { return 0 }
func (f federation) GetInviteCode() string                { return "" }
func (f federation) GetMetaExternalUrl() string           { return "" }
func (f federation) GetPopupEndTimestamp() uint64         { return f.popupEnd }
func (f federation) GetPopupCountdownMessage() string     { return f.popupMsg }

type tagItem struct {
	id, name, npub string
}

func (t tagItem) GetID() string             { return t.id }
func (t tagItem) GetKind() string           { return "Contact" }
func (t tagItem) GetName() string           { return t.name }
func (t tagItem) GetNpub() string           { return t.npub }
func (t tagItem) GetLnAddress() string      { return "" }
func (t tagItem) GetLnurl() string          { return "" }
func (t tagItem) GetImageUrl() string       { return "" }
func (t tagItem) GetPrimalImageUrl() string { return "" }
func (t tagItem) IsFollowing() bool         { return false }
func (t tagItem) GetLastUsedTime() uint64   { return 0 }

type activityItem struct {
	kind, id    string
	amount      *uint64
	labels      []string
	contacts    []ports.TagItem
	lastUpdated *uint64
}

func (a activityItem) GetKind() string              { return a.kind }
func (a activityItem) GetID() string                { return a.id }
func (a activityItem) GetAmountSats() *uint64       { return a.amount }
func (a activityItem) IsInbound() bool              { return true }
func (a activityItem) GetLabels() []string          { return a.labels }
func (a activityItem) GetContacts() []ports.TagItem { return a.contacts }
func (a activityItem) GetLastUpdated() *uint64      { return a.lastUpdated }
func (a activityItem) GetPrivacyLevel() string      { return "NotAvailable" }

type invoice struct {
	bolt11, hash, status string
	amount, fees         *uint64
}

func (i invoice) GetBolt11() string       { return i.bolt11 }
func (i invoice) GetDescription() string  { return "" }
func (i invoice) GetPaymentHash() string  { return i.hash }
func (i invoice) GetPreimage() string     { return "" }
func (i invoice) GetPayeePubkey() string  { return "" }
func (i invoice) GetAmountSats() *uint64  { return i.amount }
func (i invoice) GetExpire() uint64       { return 0 }
func (i invoice) GetStatus() string       { return i.status }
func (i invoice) GetFeesPaid() *uint64    { return i.fees }
func (i invoice) IsInbound() bool         { return false }
func (i invoice) GetLabels() []string     { return nil }
func (i invoice) GetLastUpdated() uint64  { return 0 }
func (i invoice) GetPrivacyLevel() string { return "NotAvailable" }

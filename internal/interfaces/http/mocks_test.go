package httpinterface

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/application/dispatch"
	"github.com/mutinywallet/mutinyd/internal/core/application/megastore"
	"github.com/mutinywallet/mutinyd/internal/core/application/pubsub"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) State() megastore.State {
	args := m.Called()
	return args.Get(0).(megastore.State)
}

func (m *mockStore) Subscribe() (<-chan megastore.State, func()) {
	args := m.Called()
	return args.Get(0).(<-chan megastore.State), args.Get(1).(func())
}

func (m *mockStore) Setup(ctx context.Context, password string) error {
	args := m.Called(ctx, password)
	return args.Error(0)
}

func (m *mockStore) Sync(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) SetFiat(ctx context.Context, fiat domain.Currency) error {
	args := m.Called(ctx, fiat)
	return args.Error(0)
}

func (m *mockStore) SetBalanceView(view domain.BalanceView) error {
	args := m.Called(view)
	return args.Error(0)
}

func (m *mockStore) DeleteMutinyWallet(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// HandleIncomingString calls onError with the mocked error if any,
// onSuccess with the mocked params otherwise.
func (m *mockStore) HandleIncomingString(
	ctx context.Context, str string,
	onError dispatch.ErrorHandler, onSuccess dispatch.SuccessHandler,
) {
	args := m.Called(ctx, str)
	if err := args.Error(0); err != nil {
		onError(err)
		return
	}
	onSuccess(args.Get(1).(domain.ParsedParams))
}

type mockWallet struct {
	mock.Mock
}

func (m *mockWallet) GetBalance(ctx context.Context) (domain.Balance, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *mockWallet) GetActivity(
	ctx context.Context, limit, offset *uint32,
) ([]domain.ActivityItem, error) {
	args := m.Called(ctx, limit, offset)
	var res []domain.ActivityItem
	if a := args.Get(0); a != nil {
		res = a.([]domain.ActivityItem)
	}
	return res, args.Error(1)
}

func (m *mockWallet) GetContacts(ctx context.Context) ([]domain.TagItem, error) {
	args := m.Called(ctx)
	var res []domain.TagItem
	if a := args.Get(0); a != nil {
		res = a.([]domain.TagItem)
	}
	return res, args.Error(1)
}

func (m *mockWallet) CreateNewContact(
	ctx context.Context, contact domain.Contact,
) (string, error) {
	args := m.Called(ctx, contact)
	return args.String(0), args.Error(1)
}

func (m *mockWallet) ListFederations(
	ctx context.Context,
) ([]domain.FederationIdentity, error) {
	args := m.Called(ctx)
	var res []domain.FederationIdentity
	if a := args.Get(0); a != nil {
		res = a.([]domain.FederationIdentity)
	}
	return res, args.Error(1)
}

func (m *mockWallet) NewFederation(
	ctx context.Context, inviteCode string,
) (domain.FederationIdentity, error) {
	args := m.Called(ctx, inviteCode)
	return args.Get(0).(domain.FederationIdentity), args.Error(1)
}

func (m *mockWallet) GetNwcProfiles(
	ctx context.Context,
) ([]domain.NwcProfile, error) {
	args := m.Called(ctx)
	var res []domain.NwcProfile
	if a := args.Get(0); a != nil {
		res = a.([]domain.NwcProfile)
	}
	return res, args.Error(1)
}

func (m *mockWallet) CreateInvoice(
	ctx context.Context, amount uint64, labels []string,
) (domain.Invoice, error) {
	args := m.Called(ctx, amount, labels)
	return args.Get(0).(domain.Invoice), args.Error(1)
}

func (m *mockWallet) PayInvoice(
	ctx context.Context, invoice string, amount *uint64, labels []string,
) (domain.Invoice, error) {
	args := m.Called(ctx, invoice, amount, labels)
	return args.Get(0).(domain.Invoice), args.Error(1)
}

func (m *mockWallet) ListChannels(ctx context.Context) ([]domain.Channel, error) {
	args := m.Called(ctx)
	var res []domain.Channel
	if a := args.Get(0); a != nil {
		res = a.([]domain.Channel)
	}
	return res, args.Error(1)
}

func (m *mockWallet) GetLogs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	var res []string
	if a := args.Get(0); a != nil {
		res = a.([]string)
	}
	return res, args.Error(1)
}

type mockSettings struct {
	mock.Mock
}

func (m *mockSettings) GetSettings() (domain.Settings, error) {
	args := m.Called()
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *mockSettings) SetSettings(settings domain.Settings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *mockSettings) UpdateSettings(values map[string]string) error {
	args := m.Called(values)
	return args.Error(0)
}

func (m *mockSettings) ResetSettings() error {
	args := m.Called()
	return args.Error(0)
}

type mockWebhooks struct {
	mock.Mock
}

func (m *mockWebhooks) AddWebhook(hook pubsub.Webhook) (string, error) {
	args := m.Called(hook)
	return args.String(0), args.Error(1)
}

func (m *mockWebhooks) RemoveWebhook(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockWebhooks) ListWebhooks(event string) []pubsub.Webhook {
	args := m.Called(event)
	return args.Get(0).([]pubsub.Webhook)
}

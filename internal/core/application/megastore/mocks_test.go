package megastore_test

import (
	"context"
	"sync"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockProxy struct {
	mock.Mock
}

func (m *mockProxy) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockProxy) CheckDoubleInit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *mockProxy) ReleaseInitGuard() {
	m.Called()
}

func (m *mockProxy) HasNodeManager(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *mockProxy) SetupMutinyWallet(
	ctx context.Context, walletArgs ports.WalletArgs,
) error {
	args := m.Called(ctx, walletArgs)
	return args.Error(0)
}

func (m *mockProxy) GetNetwork(ctx context.Context) (domain.Network, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Network), args.Error(1)
}

func (m *mockProxy) GetBalance(ctx context.Context) (domain.Balance, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *mockProxy) ListFederations(
	ctx context.Context,
) ([]domain.FederationIdentity, error) {
	args := m.Called(ctx)
	var res []domain.FederationIdentity
	if a := args.Get(0); a != nil {
		res = a.([]domain.FederationIdentity)
	}
	return res, args.Error(1)
}

func (m *mockProxy) CheckSubscribed(ctx context.Context) (*uint64, error) {
	args := m.Called(ctx)
	var res *uint64
	if a := args.Get(0); a != nil {
		res = a.(*uint64)
	}
	return res, args.Error(1)
}

func (m *mockProxy) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockProxy) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockPriceSource struct {
	mock.Mock
}

func (m *mockPriceSource) GetPrice(
	ctx context.Context, fiat string,
) (decimal.Decimal, error) {
	args := m.Called(ctx, fiat)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type settingsResolver struct {
	settings domain.Settings
}

func (r settingsResolver) GetSettings() (domain.Settings, error) {
	return r.settings, nil
}

type navigator struct {
	lock    sync.Mutex
	routes  []string
	reloads int
}

func (n *navigator) Navigate(route string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.routes = append(n.routes, route)
}

func (n *navigator) Reload() {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.reloads++
}

func (n *navigator) visited() []string {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]string{}, n.routes...)
}

func (n *navigator) reloaded() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.reloads
}

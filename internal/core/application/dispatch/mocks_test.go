package dispatch_test

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type mockParser struct {
	mock.Mock
}

func (m *mockParser) ParseParams(
	ctx context.Context, str string, network domain.Network,
) (domain.ParsedParams, error) {
	args := m.Called(ctx, str, network)
	var res domain.ParsedParams
	if a := args.Get(0); a != nil {
		res = a.(domain.ParsedParams)
	}
	return res, args.Error(1)
}

type navigator struct {
	routes  []string
	reloads int
}

func (n *navigator) Navigate(route string) {
	n.routes = append(n.routes, route)
}

func (n *navigator) Reload() {
	n.reloads++
}

type walletState struct {
	network domain.Network
	scanned bool
}

func (w *walletState) Network() domain.Network {
	return w.network
}

func (w *walletState) ClearScanResult() {
	w.scanned = false
}

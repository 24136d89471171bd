package engineproxy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mutinywallet/mutinyd/internal/core/application/engineproxy"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/mutinywallet/mutinyd/internal/infrastructure/storage/inmemory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	ctx        = context.Background()
	walletArgs = ports.WalletArgs{
		Settings: domain.Settings{Network: "signet", Proxy: "wss://p.example.com"},
		Password: "password",
	}
)

func newLoadedEngine() *mockEngine {
	engine := &mockEngine{}
	engine.On("Load", mock.Anything).Return(nil)
	engine.On("Version", mock.Anything).Return("1.0.0", nil)
	return engine
}

func newReadyService(t *testing.T) (*engineproxy.Service, *mockWallet) {
	wallet := newMockWallet()
	engine := newLoadedEngine()
	engine.On("NewWallet", mock.Anything, walletArgs).Return(wallet, nil)

	svc, err := engineproxy.NewService(engine, inmemory.NewSessionStorage())
	require.NoError(t, err)
	require.NoError(t, svc.SetupMutinyWallet(ctx, walletArgs))
	return svc, wallet
}

func TestNewService(t *testing.T) {
	_, err := engineproxy.NewService(nil, inmemory.NewSessionStorage())
	require.ErrorIs(t, err, engineproxy.ErrMissingEngine)

	_, err = engineproxy.NewService(&mockEngine{}, nil)
	require.ErrorIs(t, err, engineproxy.ErrMissingSession)

	svc, err := engineproxy.NewService(&mockEngine{}, inmemory.NewSessionStorage())
	require.NoError(t, err)
	require.Equal(t, engineproxy.StateUninitialized, svc.State())
}

func TestCallsBeforeSetup(t *testing.T) {
	svc, err := engineproxy.NewService(
		newLoadedEngine(), inmemory.NewSessionStorage(),
	)
	require.NoError(t, err)

	_, err = svc.ParseParams(ctx, "bc1q...", domain.NetworkBitcoin)
	require.ErrorIs(t, err, domain.ErrEngineNotLoaded)

	_, err = svc.HasNodeManager(ctx)
	require.ErrorIs(t, err, domain.ErrEngineNotLoaded)

	require.NoError(t, svc.Load(ctx))
	require.Equal(t, engineproxy.StateWasmReady, svc.State())

	_, err = svc.GetBalance(ctx)
	require.ErrorIs(t, err, domain.ErrWalletNotInitialized)

	_, err = svc.ListFederations(ctx)
	require.ErrorIs(t, err, domain.ErrWalletNotInitialized)

	_, err = svc.GetContacts(ctx)
	require.ErrorIs(t, err, domain.ErrWalletNotInitialized)

	_, err = svc.GetNwcProfiles(ctx)
	require.ErrorIs(t, err, domain.ErrWalletNotInitialized)

	err = svc.SyncNostrContacts(ctx, "npub")
	require.ErrorIs(t, err, domain.ErrWalletNotInitialized)
}

func TestLoad(t *testing.T) {
	t.Run("failure rolls back", func(t *testing.T) {
		engine := &mockEngine{}
		engine.On("Load", mock.Anything).Return(errors.New("download failed")).Once()
		engine.On("Load", mock.Anything).Return(nil)
		engine.On("Version", mock.Anything).Return("1.0.0", nil)

		svc, err := engineproxy.NewService(engine, inmemory.NewSessionStorage())
		require.NoError(t, err)

		err = svc.Load(ctx)
		require.Error(t, err)
		require.Equal(t, engineproxy.StateUninitialized, svc.State())

		require.NoError(t, svc.Load(ctx))
		require.Equal(t, engineproxy.StateWasmReady, svc.State())
	})

	t.Run("already loaded only probes", func(t *testing.T) {
		engine := newLoadedEngine()
		svc, err := engineproxy.NewService(engine, inmemory.NewSessionStorage())
		require.NoError(t, err)

		require.NoError(t, svc.Load(ctx))
		require.NoError(t, svc.Load(ctx))

		engine.AssertNumberOfCalls(t, "Load", 1)
		engine.AssertNumberOfCalls(t, "Version", 2)
	})
}

func TestSetupMutinyWallet(t *testing.T) {
	t.Run("wallet is constructed once", func(t *testing.T) {
		wallet := newMockWallet()
		engine := newLoadedEngine()
		engine.On("NewWallet", mock.Anything, walletArgs).Return(wallet, nil)
		session := inmemory.NewSessionStorage()

		svc, err := engineproxy.NewService(engine, session)
		require.NoError(t, err)

		require.NoError(t, svc.SetupMutinyWallet(ctx, walletArgs))
		require.Equal(t, engineproxy.StateWalletReady, svc.State())

		_, ok := session.Get(engineproxy.InitGuardKey)
		require.True(t, ok)

		require.NoError(t, svc.SetupMutinyWallet(ctx, walletArgs))
		engine.AssertNumberOfCalls(t, "NewWallet", 1)
	})

	t.Run("failure allows retrying", func(t *testing.T) {
		wallet := newMockWallet()
		engine := newLoadedEngine()
		wrongArgs := walletArgs
		wrongArgs.Password = "wrong"
		engine.On("NewWallet", mock.Anything, wrongArgs).Return(
			nil, domain.NewEngineError(domain.ErrKindIncorrectPassword, ""),
		)
		engine.On("NewWallet", mock.Anything, walletArgs).Return(wallet, nil)
		session := inmemory.NewSessionStorage()

		svc, err := engineproxy.NewService(engine, session)
		require.NoError(t, err)

		err = svc.SetupMutinyWallet(ctx, wrongArgs)
		require.True(t, domain.IsKind(err, domain.ErrKindIncorrectPassword))
		require.Equal(t, engineproxy.StateWasmReady, svc.State())

		_, ok := session.Get(engineproxy.InitGuardKey)
		require.False(t, ok)

		require.NoError(t, svc.SetupMutinyWallet(ctx, walletArgs))
		require.Equal(t, engineproxy.StateWalletReady, svc.State())
	})

	t.Run("cancelled while constructing", func(t *testing.T) {
		lateWallet := newMockWallet()
		lateWallet.On("Stop", mock.Anything).Return(nil)
		engine := newLoadedEngine()
		engine.On("NewWallet", mock.Anything, walletArgs).
			After(200*time.Millisecond).Return(lateWallet, nil)

		svc, err := engineproxy.NewService(engine, inmemory.NewSessionStorage())
		require.NoError(t, err)

		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		err = svc.SetupMutinyWallet(cctx, walletArgs)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Equal(t, engineproxy.StateWalletInitializing, svc.State())

		// Another construction can't start while the first one is pending.
		err = svc.SetupMutinyWallet(ctx, walletArgs)
		require.ErrorIs(t, err, domain.ErrSetupInProgress)

		// The wallet the engine constructs late is stopped.
		require.Eventually(t, func() bool {
			return svc.State() == engineproxy.StateWasmReady
		}, 5*time.Second, 10*time.Millisecond)
		lateWallet.AssertCalled(t, "Stop", mock.Anything)
		engine.AssertNumberOfCalls(t, "NewWallet", 1)

		_, err = svc.GetBalance(ctx)
		require.ErrorIs(t, err, domain.ErrWalletNotInitialized)
	})
}

func TestDoubleInit(t *testing.T) {
	session := inmemory.NewSessionStorage()
	session.Set(engineproxy.InitGuardKey, "1700000000")

	svc, err := engineproxy.NewService(newLoadedEngine(), session)
	require.NoError(t, err)

	err = svc.CheckDoubleInit()
	require.ErrorIs(t, err, domain.ErrDoubleInit)

	svc.ReleaseInitGuard()
	require.NoError(t, svc.CheckDoubleInit())

	ready, _ := newReadyService(t)
	require.NoError(t, ready.CheckDoubleInit())
}

func TestReshape(t *testing.T) {
	svc, wallet := newReadyService(t)

	t.Run("balance", func(t *testing.T) {
		wallet.node.On("GetBalance", mock.Anything).Return(
			balance{federation: 1000, lightning: 2000, confirmed: 3000, unconfirmed: 4},
			nil,
		)

		got, err := svc.GetBalance(ctx)
		require.NoError(t, err)
		require.Equal(t, domain.Balance{
			Federation: 1000, Lightning: 2000, Confirmed: 3000, Unconfirmed: 4,
		}, got)
		require.Equal(t, uint64(6004), got.Total())
	})

	t.Run("federations", func(t *testing.T) {
		wallet.federations.On("ListFederations", mock.Anything).Return(
			[]ports.FederationIdentity{
				federation{id: "fed1", name: "Mutiny Signet"},
				federation{
					id: "fed2", name: "Sunset", popupEnd: 1800000000,
					popupMsg: "shutting down",
				},
			}, nil,
		)

		got, err := svc.ListFederations(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "Mutiny Signet", got[0].FederationName)
		require.False(t, got[0].HasExpirationWarning())
		require.True(t, got[1].HasExpirationWarning())
	})

	t.Run("activity", func(t *testing.T) {
		amount, updated := uint64(21000), uint64(1700000000)
		limit := uint32(10)
		wallet.node.On("GetActivity", mock.Anything, &limit, (*uint32)(nil)).Return(
			[]ports.ActivityItem{
				activityItem{
					kind: "Lightning", id: "hash", amount: &amount,
					labels:      []string{"coffee"},
					contacts:    []ports.TagItem{tagItem{id: "c1", name: "Ben"}},
					lastUpdated: &updated,
				},
				activityItem{kind: "OnChain", id: "txid"},
			}, nil,
		)

		got, err := svc.GetActivity(ctx, &limit, nil)
		require.NoError(t, err)
		require.Len(t, got, 2)

		require.Equal(t, domain.ActivityLightning, got[0].Kind)
		require.Equal(t, uint64(21000), *got[0].AmountSats)
		require.Equal(t, []string{"coffee"}, got[0].Labels)
		require.Equal(t, "Ben", got[0].Contacts[0].Name)
		require.Equal(t, domain.TagKindContact, got[0].Contacts[0].Kind)
		require.False(t, got[0].IsPending())

		require.Nil(t, got[1].AmountSats)
		require.True(t, got[1].IsPending())

		// reshaped values do not alias the engine handles
		amount = 1
		require.Equal(t, uint64(21000), *got[0].AmountSats)
	})

	t.Run("missing transaction", func(t *testing.T) {
		wallet.node.On("CheckAddress", mock.Anything, "bc1qaddr").Return(nil, nil)

		got, err := svc.CheckAddress(ctx, "bc1qaddr")
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("errors are propagated", func(t *testing.T) {
		engineErr := domain.NewEngineError(domain.ErrKindPaymentTimeout, "timed out")
		wallet.node.On(
			"PayInvoice", mock.Anything, "lnbc1", (*uint64)(nil), []string{"a"},
		).Return(nil, engineErr)

		_, err := svc.PayInvoice(ctx, "lnbc1", nil, []string{"a"})
		require.ErrorIs(t, err, engineErr)
		require.Equal(t, domain.ErrKindPaymentTimeout, domain.KindOf(err))
	})

	t.Run("arguments are forwarded unchanged", func(t *testing.T) {
		contact := domain.Contact{Name: "Tony", LnAddress: "tony@example.com"}
		wallet.contacts.On("CreateNewContact", mock.Anything, contact).
			Return("contact-id", nil)

		id, err := svc.CreateNewContact(ctx, contact)
		require.NoError(t, err)
		require.Equal(t, "contact-id", id)
	})
}

func TestStop(t *testing.T) {
	wallet := newMockWallet()
	wallet.On("Stop", mock.Anything).Return(nil)
	engine := newLoadedEngine()
	engine.On("NewWallet", mock.Anything, walletArgs).Return(wallet, nil)
	engine.On("DeleteAll", mock.Anything).Return(nil)
	session := inmemory.NewSessionStorage()

	svc, err := engineproxy.NewService(engine, session)
	require.NoError(t, err)
	require.NoError(t, svc.SetupMutinyWallet(ctx, walletArgs))

	require.NoError(t, svc.Stop(ctx))
	wallet.AssertCalled(t, "Stop", mock.Anything)
	require.Equal(t, engineproxy.StateWasmReady, svc.State())

	_, ok := session.Get(engineproxy.InitGuardKey)
	require.False(t, ok)

	_, err = svc.GetBalance(ctx)
	require.ErrorIs(t, err, domain.ErrWalletNotInitialized)

	// stopping twice is a no-op
	require.NoError(t, svc.Stop(ctx))
	wallet.AssertNumberOfCalls(t, "Stop", 1)

	require.NoError(t, svc.DeleteAll(ctx))
	engine.AssertCalled(t, "DeleteAll", mock.Anything)
}

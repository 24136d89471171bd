package engineproxy

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// InitGuardKey is the session storage key set while a wallet is constructed.
const InitGuardKey = "MUTINY_WALLET_INITIALIZED"

// State of the engine and of the wallet it hosts.
type State string

const (
	StateUninitialized      State = "uninitialized"
	StateWasmLoading        State = "wasm_loading"
	StateWasmReady          State = "wasm_ready"
	StateWalletInitializing State = "wallet_initializing"
	StateWalletReady        State = "wallet_ready"
)

var (
	ErrMissingEngine  = errors.New("missing wallet engine")
	ErrMissingSession = errors.New("missing session storage")
	// ErrEngineLoading is returned when the engine is being loaded by a
	// concurrent call.
	ErrEngineLoading = errors.New("wallet engine is loading")
)

// Service owns the engine and the wallet constructed with it. Every call
// crosses the engine boundary and is reshaped into domain values before
// being returned.
type Service struct {
	engine  ports.Engine
	session ports.SessionStorage

	lock   *sync.RWMutex
	state  State
	wallet ports.Wallet
}

func NewService(
	engine ports.Engine, session ports.SessionStorage,
) (*Service, error) {
	if engine == nil {
		return nil, ErrMissingEngine
	}
	if session == nil {
		return nil, ErrMissingSession
	}
	return &Service{
		engine:  engine,
		session: session,
		lock:    &sync.RWMutex{},
		state:   StateUninitialized,
	}, nil
}

func (s *Service) State() State {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state
}

// CheckDoubleInit fails with domain.ErrDoubleInit if the session guard is
// set while this instance holds no wallet.
func (s *Service) CheckDoubleInit() error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if _, ok := s.session.Get(InitGuardKey); ok && s.wallet == nil {
		return domain.ErrDoubleInit
	}
	return nil
}

// ReleaseInitGuard clears a stale session guard.
func (s *Service) ReleaseInitGuard() {
	s.session.Delete(InitGuardKey)
}

// Load makes the engine available. Once loaded, it only checks that a pure
// engine call still succeeds.
func (s *Service) Load(ctx context.Context) error {
	s.lock.Lock()
	state := s.state
	if state == StateUninitialized {
		s.state = StateWasmLoading
	}
	s.lock.Unlock()

	switch state {
	case StateWasmLoading:
		return ErrEngineLoading
	case StateUninitialized:
	default:
		_, err := boundary(ctx, func(ctx context.Context) (string, error) {
			return s.engine.Version(ctx)
		})
		return err
	}

	err := exec0(ctx, func(ctx context.Context) error {
		if err := s.engine.Load(ctx); err != nil {
			return err
		}
		_, err := s.engine.Version(ctx)
		return err
	})

	s.lock.Lock()
	defer s.lock.Unlock()
	if err != nil {
		s.state = StateUninitialized
		return err
	}
	s.state = StateWasmReady
	log.Debug("wallet engine loaded")
	return nil
}

// HasNodeManager returns whether a wallet already exists in storage.
func (s *Service) HasNodeManager(ctx context.Context) (bool, error) {
	if err := s.requireEngine(); err != nil {
		return false, err
	}
	return boundary(ctx, func(ctx context.Context) (bool, error) {
		return s.engine.HasNodeManager(ctx)
	})
}

// SetupMutinyWallet constructs the wallet. The wallet is constructed only
// once: further calls after a successful one are no-ops.
func (s *Service) SetupMutinyWallet(
	ctx context.Context, args ports.WalletArgs,
) error {
	if err := s.Load(ctx); err != nil && !errors.Is(err, ErrEngineLoading) {
		return err
	}

	s.lock.Lock()
	switch s.state {
	case StateWalletReady:
		s.lock.Unlock()
		return nil
	case StateWalletInitializing:
		s.lock.Unlock()
		return domain.ErrSetupInProgress
	case StateWasmReady:
		s.state = StateWalletInitializing
	default:
		s.lock.Unlock()
		return domain.ErrEngineNotLoaded
	}
	s.lock.Unlock()

	log.Infof("setting up wallet on %s", args.Settings.Network)
	resCh := make(chan walletResult, 1)
	go func() {
		wallet, err := s.engine.NewWallet(ctx, args)
		resCh <- walletResult{wallet, err}
	}()

	var res walletResult
	select {
	case res = <-resCh:
	case <-ctx.Done():
		// The state stays wallet_initializing until the engine returns, a
		// wallet constructed in the meantime is stopped.
		go s.discardWallet(resCh)
		return ctx.Err()
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if res.err != nil {
		s.state = StateWasmReady
		return res.err
	}
	s.wallet = res.wallet
	s.state = StateWalletReady
	s.session.Set(InitGuardKey, strconv.FormatInt(time.Now().Unix(), 10))
	return nil
}

type walletResult struct {
	wallet ports.Wallet
	err    error
}

// discardWallet waits for an abandoned construction and stops the wallet
// if the engine built one anyway.
func (s *Service) discardWallet(resCh <-chan walletResult) {
	res := <-resCh
	if res.err == nil && res.wallet != nil {
		log.Warn("wallet constructed after setup was abandoned, stopping it")
		if err := res.wallet.Stop(context.Background()); err != nil {
			log.WithError(err).Warn("failed to stop abandoned wallet")
		}
	}

	s.lock.Lock()
	s.state = StateWasmReady
	s.lock.Unlock()
}

// Stop releases the wallet. Calls made afterwards fail with
// domain.ErrWalletNotInitialized.
func (s *Service) Stop(ctx context.Context) error {
	s.lock.Lock()
	wallet := s.wallet
	s.wallet = nil
	if s.state == StateWalletReady {
		s.state = StateWasmReady
	}
	s.lock.Unlock()

	s.session.Delete(InitGuardKey)
	if wallet == nil {
		return nil
	}
	return exec0(ctx, wallet.Stop)
}

// DeleteAll wipes all the wallet data. The wallet must be stopped first.
func (s *Service) DeleteAll(ctx context.Context) error {
	if err := s.requireEngine(); err != nil {
		return err
	}
	return exec0(ctx, s.engine.DeleteAll)
}

func (s *Service) ImportJSON(ctx context.Context, json string) error {
	if err := s.requireEngine(); err != nil {
		return err
	}
	return exec0(ctx, func(ctx context.Context) error {
		return s.engine.ImportJSON(ctx, json)
	})
}

func (s *Service) RestoreMnemonic(
	ctx context.Context, mnemonic, password string,
) error {
	if err := s.requireEngine(); err != nil {
		return err
	}
	return exec0(ctx, func(ctx context.Context) error {
		return s.engine.RestoreMnemonic(ctx, mnemonic, password)
	})
}

// ParseParams classifies str with the engine parser bound to network.
func (s *Service) ParseParams(
	ctx context.Context, str string, network domain.Network,
) (domain.ParsedParams, error) {
	if err := s.requireEngine(); err != nil {
		return domain.ParsedParams{}, err
	}
	params, err := boundary(ctx, func(ctx context.Context) (ports.ParsedParams, error) {
		return s.engine.ParseParams(ctx, str, string(network))
	})
	if err != nil {
		return domain.ParsedParams{}, err
	}
	return parsedParamsFromEngine(params), nil
}

func (s *Service) requireEngine() error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	switch s.state {
	case StateUninitialized, StateWasmLoading:
		return domain.ErrEngineNotLoaded
	}
	return nil
}

func (s *Service) getWallet() (ports.Wallet, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.state != StateWalletReady || s.wallet == nil {
		return nil, domain.ErrWalletNotInitialized
	}
	return s.wallet, nil
}

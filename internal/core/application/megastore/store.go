package megastore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/lnd/ticker"
	"github.com/mutinywallet/mutinyd/internal/core/application/dispatch"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/shopspring/decimal"
)

const (
	DefaultSetupTimeout  = 90 * time.Second
	DefaultSyncInterval  = 3 * time.Second
	DefaultPriceInterval = time.Minute
	// MaxPriceBackoff caps the price back-off multiplier.
	MaxPriceBackoff = 64
)

var (
	ErrMissingProxy       = errors.New("missing engine proxy")
	ErrMissingSettings    = errors.New("missing settings resolver")
	ErrMissingParser      = errors.New("missing params parser")
	ErrMissingPriceSource = errors.New("missing price source")
	ErrMissingNavigator   = errors.New("missing navigator")
	ErrMissingStorage     = errors.New("missing local storage")
	ErrMissingSecureStore = errors.New("missing secure storage")

	ErrExistingTab   = errors.New("another instance is already running")
	ErrIncompatible  = errors.New("storage is not available")
	ErrSetupTimeout  = errors.New("setup did not complete in time")
	ErrSetupOutdated = errors.New("setup was superseded")
)

// EngineProxy is the part of the engine proxy the store drives.
type EngineProxy interface {
	Load(ctx context.Context) error
	CheckDoubleInit() error
	ReleaseInitGuard()
	HasNodeManager(ctx context.Context) (bool, error)
	SetupMutinyWallet(ctx context.Context, args ports.WalletArgs) error
	GetNetwork(ctx context.Context) (domain.Network, error)
	GetBalance(ctx context.Context) (domain.Balance, error)
	ListFederations(ctx context.Context) ([]domain.FederationIdentity, error)
	CheckSubscribed(ctx context.Context) (*uint64, error)
	Stop(ctx context.Context) error
	DeleteAll(ctx context.Context) error
}

type SettingsResolver interface {
	GetSettings() (domain.Settings, error)
}

// TabDetector tells whether another instance is already running.
type TabDetector interface {
	Detect(ctx context.Context) (bool, error)
	Close(ctx context.Context) error
}

type Config struct {
	Proxy       EngineProxy
	Settings    SettingsResolver
	Parser      ports.ParamsParser
	PriceSource ports.PriceSource
	Navigator   ports.Navigator
	Storage     ports.LocalStorage
	// SecureStorage and TabDetector are optional.
	SecureStorage ports.SecureStorage
	TabDetector   TabDetector

	SetupTimeout time.Duration
	// SyncTicker drives the background balance sync.
	SyncTicker ticker.Ticker
	// PriceTicker drives the price refresh. A price is fetched every n ticks,
	// with n the current back-off multiplier.
	PriceTicker ticker.Ticker
	Clock       clock.Clock
}

func (c *Config) validate() error {
	if c.Proxy == nil {
		return ErrMissingProxy
	}
	if c.Settings == nil {
		return ErrMissingSettings
	}
	if c.Parser == nil {
		return ErrMissingParser
	}
	if c.PriceSource == nil {
		return ErrMissingPriceSource
	}
	if c.Navigator == nil {
		return ErrMissingNavigator
	}
	if c.Storage == nil {
		return ErrMissingStorage
	}
	if c.SetupTimeout <= 0 {
		c.SetupTimeout = DefaultSetupTimeout
	}
	if c.SyncTicker == nil {
		c.SyncTicker = ticker.New(DefaultSyncInterval)
	}
	if c.PriceTicker == nil {
		c.PriceTicker = ticker.New(DefaultPriceInterval)
	}
	if c.Clock == nil {
		c.Clock = clock.NewDefaultClock()
	}
	return nil
}

// Store is the reactive wallet store. It holds the wallet state, mutated
// only by its actions, and notifies subscribers of every change.
type Store struct {
	cfg      Config
	dispatch *dispatch.Handler

	lock          *sync.RWMutex
	state         State
	link          DeepLink
	preferredFiat domain.Currency
	// password of the last setup attempt, kept for device lock diagnostics.
	password     string
	generation   uint64
	setupRunning bool

	subsLock  *sync.Mutex
	subs      map[int]chan State
	nextSubID int

	loopsLock *sync.Mutex
	stopLoops context.CancelFunc
	wg        *sync.WaitGroup
}

func NewStore(cfg Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &Store{
		cfg:  cfg,
		lock: &sync.RWMutex{},
		state: State{
			LoadStage:     domain.LoadStageFresh,
			WalletLoading: true,
			Fiat:          domain.UsdCurrency,
			Price:         decimal.Zero,
			PriceBackoff:  1,
			BalanceView:   domain.BalanceViewSats,
		},
		preferredFiat: domain.UsdCurrency,
		subsLock:      &sync.Mutex{},
		subs:          make(map[int]chan State),
		loopsLock:     &sync.Mutex{},
		wg:            &sync.WaitGroup{},
	}
	s.loadPreferences()

	handler, err := dispatch.NewHandler(cfg.Parser, cfg.Navigator, s)
	if err != nil {
		return nil, err
	}
	s.dispatch = handler
	return s, nil
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.copy()
}

// Subscribe returns a channel receiving the current state and then every
// new one. Slow subscribers only get the latest state. The returned func
// must be called to release the subscription.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	s.subsLock.Lock()
	defer s.subsLock.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan State, 1)
	ch <- s.state.copy()
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsLock.Lock()
			defer s.subsLock.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Network returns the network of the wallet, or the configured one while
// the wallet is not set up.
func (s *Store) Network() domain.Network {
	s.lock.RLock()
	network := s.state.Network
	s.lock.RUnlock()

	if network != "" {
		return network
	}
	settings, err := s.cfg.Settings.GetSettings()
	if err != nil {
		return domain.NetworkBitcoin
	}
	return domain.Network(settings.Network)
}

func (s *Store) SetScanResult(params *domain.ParsedParams) {
	s.update(func(st *State) {
		if params == nil {
			st.ScanResult = nil
			return
		}
		p := *params
		st.ScanResult = &p
	})
}

func (s *Store) ClearScanResult() {
	s.SetScanResult(nil)
}

// update applies fn to the state and notifies the subscribers.
func (s *Store) update(fn func(st *State)) {
	s.lock.Lock()
	defer s.lock.Unlock()
	fn(&s.state)
	s.publish()
}

// publish must be called with the state lock held.
func (s *Store) publish() {
	snapshot := s.state.copy()

	s.subsLock.Lock()
	defer s.subsLock.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

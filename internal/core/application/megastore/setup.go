package megastore

import (
	"context"
	"errors"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

const (
	nsecKey    = "nsec"
	probeKey   = "mutiny_storage_probe"
	probeValue = "ok"
	setupRoute = "/setup"
)

// PreSetup runs the checks preceding setup and returns whether setup should
// proceed. It returns false with no error when another instance is running,
// the storage is unusable, or there is no wallet yet and the user has to go
// through onboarding first.
func (s *Store) PreSetup(ctx context.Context, link DeepLink) (bool, error) {
	s.lock.Lock()
	s.link = link
	s.state.SafeMode = link.SafeMode
	s.publish()
	s.lock.Unlock()

	if link.SkipSetup {
		s.update(func(st *State) { st.WalletLoading = false })
		return false, nil
	}

	if s.cfg.TabDetector != nil {
		existing, err := s.cfg.TabDetector.Detect(ctx)
		if err != nil {
			return false, err
		}
		if existing {
			s.update(func(st *State) {
				st.ExistingTabDetected = true
				st.SetupError = domain.NewSetupError(
					domain.SetupErrExistingTab, ErrExistingTab,
				)
				st.WalletLoading = false
			})
			return false, nil
		}
	}

	if err := s.checkStorage(); err != nil {
		log.WithError(err).Warn("local storage is not usable")
		s.fail(domain.NewSetupError(domain.SetupErrIncompatible, err))
		return false, nil
	}

	if err := s.cfg.Proxy.Load(ctx); err != nil {
		s.fail(domain.NewSetupError(domain.SetupErrEngine, err))
		return false, err
	}
	exists, err := s.cfg.Proxy.HasNodeManager(ctx)
	if err != nil {
		s.fail(domain.NewSetupError(domain.SetupErrEngine, err))
		return false, err
	}
	if !exists {
		log.Info("no wallet found, onboarding required")
		s.cfg.Navigator.Navigate(setupRoute)
		return false, nil
	}
	return true, nil
}

// Setup constructs the wallet and starts the background sync and price
// refresh. A watchdog fails it with a timeout error if it does not complete
// within the configured timeout, any result arriving later is discarded.
//
// A wrong password sets NeedsPassword and returns the engine error, Setup can
// then be called again. Any other failure is terminal and is returned as a
// *domain.SetupError.
func (s *Store) Setup(ctx context.Context, password string) error {
	s.lock.Lock()
	if s.state.SetupError != nil {
		err := s.state.SetupError
		s.lock.Unlock()
		return err
	}
	if s.state.LoadStage == domain.LoadStageDone {
		s.lock.Unlock()
		return nil
	}
	if s.setupRunning {
		s.lock.Unlock()
		return domain.ErrSetupInProgress
	}
	s.setupRunning = true
	s.generation++
	gen := s.generation
	s.password = password
	s.state.NeedsPassword = false
	s.publish()
	s.lock.Unlock()

	defer func() {
		s.lock.Lock()
		s.setupRunning = false
		s.lock.Unlock()
	}()

	// Only the watchdog cancels the setup, a caller going away must not
	// leave a terminal error behind.
	setupCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	go s.watchdog(setupCtx, cancel, gen)

	return s.setup(setupCtx, gen, password)
}

func (s *Store) setup(ctx context.Context, gen uint64, password string) error {
	settings, err := s.cfg.Settings.GetSettings()
	if err != nil {
		return s.terminate(gen, domain.SetupErrEngine, err)
	}

	s.lock.RLock()
	link := s.link
	s.lock.RUnlock()
	if link.Lsps != "" {
		settings.Lsp = ""
		settings.LspsConnectionString = link.Lsps
		settings.LspsToken = link.Token
	}

	if !s.advance(gen, domain.LoadStageCheckingDoubleInit) {
		return s.outdated()
	}
	if err := s.cfg.Proxy.CheckDoubleInit(); err != nil {
		if !errors.Is(err, domain.ErrDoubleInit) {
			return s.terminate(gen, domain.SetupErrEngine, err)
		}
		log.Warn("stale wallet init guard found, reloading")
		s.cfg.Proxy.ReleaseInitGuard()
		s.cfg.Navigator.Reload()
		return err
	}

	if !s.advance(gen, domain.LoadStageDownloading) {
		return s.outdated()
	}
	if err := s.cfg.Proxy.Load(ctx); err != nil {
		return s.terminate(gen, domain.SetupErrEngine, err)
	}

	if !s.advance(gen, domain.LoadStageCheckingForExistingWallet) {
		return s.outdated()
	}
	exists, err := s.cfg.Proxy.HasNodeManager(ctx)
	if err != nil {
		return s.terminate(gen, domain.SetupErrEngine, err)
	}
	if exists {
		log.Info("opening existing wallet")
	} else {
		log.Info("creating new wallet")
	}

	if !s.advance(gen, domain.LoadStageSetup) {
		return s.outdated()
	}
	log.Infof("setting up wallet on %s", settings.Network)

	args := ports.WalletArgs{
		Settings: settings,
		Password: password,
		Nsec:     s.readNsec(password),
		SafeMode: link.SafeMode,
	}
	if err := s.cfg.Proxy.SetupMutinyWallet(ctx, args); err != nil {
		if domain.IsKind(err, domain.ErrKindIncorrectPassword) {
			if !s.needsPassword(gen) {
				return s.outdated()
			}
			return err
		}
		return s.terminate(gen, domain.SetupErrEngine, err)
	}

	network, err := s.cfg.Proxy.GetNetwork(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to get wallet network")
		network = domain.Network(settings.Network)
	}
	var balance *domain.Balance
	if b, err := s.cfg.Proxy.GetBalance(ctx); err != nil {
		log.WithError(err).Warn("failed to get wallet balance")
	} else {
		balance = &b
	}
	federations, err := s.cfg.Proxy.ListFederations(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to list federations")
	}

	s.lock.Lock()
	if s.generation != gen {
		s.lock.Unlock()
		log.Warn("setup completed after timeout, stopping wallet")
		if err := s.cfg.Proxy.Stop(context.Background()); err != nil {
			log.WithError(err).Warn("failed to stop outdated wallet")
		}
		return s.outdated()
	}
	s.state.Network = network
	s.state.Balance = balance
	s.state.Federations = federations
	s.state.ExpirationWarning = domain.ExpirationWarningFor(federations)
	s.state.LoadStage = domain.LoadStageDone
	s.state.WalletLoading = false
	s.publish()
	s.lock.Unlock()

	log.Info("wallet setup completed")

	if err := s.PriceCheck(ctx); err != nil {
		log.WithError(err).Warn("failed to fetch price")
	}
	if err := s.CheckForSubscription(ctx); err != nil {
		log.WithError(err).Warn("failed to check subscription")
	}
	s.startLoops()

	for _, route := range link.routes() {
		s.cfg.Navigator.Navigate(route)
	}
	return nil
}

// watchdog fails the setup of the given generation if it is still running
// once the timeout expires.
func (s *Store) watchdog(
	ctx context.Context, cancel context.CancelFunc, gen uint64,
) {
	select {
	case <-s.cfg.Clock.TickAfter(s.cfg.SetupTimeout):
	case <-ctx.Done():
		return
	}

	s.lock.Lock()
	if s.generation != gen || s.state.LoadStage == domain.LoadStageDone {
		s.lock.Unlock()
		return
	}
	// Results of the timed out setup are discarded from now on.
	s.generation++
	s.state.SetupError = domain.NewSetupError(
		domain.SetupErrTimeout, ErrSetupTimeout,
	)
	s.state.WalletLoading = false
	stage := s.state.LoadStage
	s.publish()
	s.lock.Unlock()

	log.Warnf("setup timed out at stage %s", stage)
	cancel()
}

// advance moves to the next load stage unless the setup is outdated.
func (s *Store) advance(gen uint64, stage domain.LoadStage) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.generation != gen {
		return false
	}
	s.state.LoadStage = stage
	s.publish()
	return true
}

func (s *Store) needsPassword(gen uint64) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.generation != gen {
		return false
	}
	s.state.NeedsPassword = true
	s.publish()
	return true
}

// terminate records a terminal setup error, unless the setup is outdated.
func (s *Store) terminate(
	gen uint64, kind domain.SetupErrorKind, cause error,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.generation != gen {
		if s.state.SetupError != nil {
			return s.state.SetupError
		}
		return ErrSetupOutdated
	}
	log.WithError(cause).WithField("password_set", s.password != "").Error(
		"wallet setup failed",
	)
	s.state.SetupError = domain.NewSetupError(kind, cause)
	s.state.WalletLoading = false
	s.publish()
	return s.state.SetupError
}

func (s *Store) fail(err *domain.SetupError) {
	s.update(func(st *State) {
		st.SetupError = err
		st.WalletLoading = false
	})
}

// outdated returns the error that superseded the current setup.
func (s *Store) outdated() error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.state.SetupError != nil {
		return s.state.SetupError
	}
	return ErrSetupOutdated
}

func (s *Store) checkStorage() error {
	if err := s.cfg.Storage.Set(probeKey, probeValue); err != nil {
		return err
	}
	value, ok, err := s.cfg.Storage.Get(probeKey)
	if err != nil {
		return err
	}
	if !ok || value != probeValue {
		return ErrIncompatible
	}
	return s.cfg.Storage.Delete(probeKey)
}

// readNsec returns the stored nostr secret key, if any. A secure storage
// that cannot be unlocked does not prevent setup.
func (s *Store) readNsec(password string) string {
	secure := s.cfg.SecureStorage
	if secure == nil {
		return ""
	}
	if secure.IsLocked() {
		if err := secure.Unlock(password); err != nil {
			log.WithError(err).Warn("failed to unlock secure storage")
			return ""
		}
	}
	nsec, err := secure.Get(nsecKey)
	if err != nil {
		log.WithError(err).Debug("no nsec in secure storage")
		return ""
	}
	return nsec
}

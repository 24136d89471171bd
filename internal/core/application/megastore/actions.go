package megastore

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/application/dispatch"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Sync refreshes the balance. A call made while another one is running
// returns immediately without fetching anything.
func (s *Store) Sync(ctx context.Context) error {
	s.lock.Lock()
	if s.state.IsSyncing {
		s.lock.Unlock()
		return nil
	}
	if s.state.LoadStage != domain.LoadStageDone || s.state.Deleting {
		s.lock.Unlock()
		return domain.ErrWalletNotInitialized
	}
	s.state.IsSyncing = true
	s.publish()
	s.lock.Unlock()

	defer s.update(func(st *State) { st.IsSyncing = false })

	balance, err := s.cfg.Proxy.GetBalance(ctx)
	if err != nil {
		return err
	}

	now := s.cfg.Clock.Now()
	s.update(func(st *State) {
		st.Balance = &balance
		st.LastSync = &now
	})
	return nil
}

// FetchPrice returns the price of one bitcoin in the given currency.
func (s *Store) FetchPrice(
	ctx context.Context, fiat domain.Currency,
) (decimal.Decimal, error) {
	if fiat.IsBtc() {
		return decimal.NewFromInt(1), nil
	}
	return s.cfg.PriceSource.GetPrice(ctx, fiat.Value)
}

// PriceCheck refreshes the price for the preferred currency. On failure the
// store falls back to displaying BTC and doubles the price back-off
// multiplier, that is reset on the next success.
func (s *Store) PriceCheck(ctx context.Context) error {
	s.lock.RLock()
	fiat := s.preferredFiat
	s.lock.RUnlock()

	price, err := s.FetchPrice(ctx, fiat)
	if err != nil {
		s.update(func(st *State) {
			st.Fiat = domain.BtcCurrency
			st.Price = decimal.NewFromInt(1)
			if st.PriceBackoff < MaxPriceBackoff {
				st.PriceBackoff *= 2
			}
		})
		return err
	}

	s.update(func(st *State) {
		st.Fiat = fiat
		st.Price = price
		st.PriceBackoff = 1
	})
	return nil
}

// CheckForSubscription refreshes the subscription expiry.
func (s *Store) CheckForSubscription(ctx context.Context) error {
	ts, err := s.cfg.Proxy.CheckSubscribed(ctx)
	if err != nil {
		return err
	}
	s.update(func(st *State) { st.SubscriptionTimestamp = ts })
	return nil
}

// RefreshFederations reloads the federations after joining, leaving or
// sweeping one.
func (s *Store) RefreshFederations(ctx context.Context) error {
	federations, err := s.cfg.Proxy.ListFederations(ctx)
	if err != nil {
		return err
	}
	s.update(func(st *State) {
		st.Federations = federations
		st.ExpirationWarning = domain.ExpirationWarningFor(federations)
	})
	return nil
}

// HandleIncomingString classifies a pasted, scanned or deep-linked string
// and navigates accordingly.
func (s *Store) HandleIncomingString(
	ctx context.Context, str string,
	onError dispatch.ErrorHandler, onSuccess dispatch.SuccessHandler,
) {
	s.dispatch.Handle(ctx, str, onError, onSuccess)
}

// SetNsec stores the nostr secret key the wallet is set up with.
func (s *Store) SetNsec(nsec string) error {
	if !domain.IsValidNsec(nsec) {
		return domain.ErrInvalidNsec
	}
	if s.cfg.SecureStorage == nil {
		return ErrMissingSecureStore
	}
	return s.cfg.SecureStorage.Set(nsecKey, nsec)
}

// DeleteMutinyWallet stops the wallet and wipes all of its data. The store
// stays in deleting state until the instance is reloaded.
func (s *Store) DeleteMutinyWallet(ctx context.Context) error {
	s.update(func(st *State) { st.Deleting = true })
	s.haltLoops()

	if err := s.cfg.Proxy.Stop(ctx); err != nil {
		return err
	}
	if err := s.cfg.Proxy.DeleteAll(ctx); err != nil {
		return err
	}

	if secure := s.cfg.SecureStorage; secure != nil && !secure.IsLocked() {
		if err := secure.Delete(nsecKey); err != nil {
			log.WithError(err).Warn("failed to delete nsec")
		}
	}

	log.Info("wallet deleted")
	s.cfg.Navigator.Reload()
	return nil
}

// Stop halts the background loops and releases the wallet.
func (s *Store) Stop(ctx context.Context) error {
	s.haltLoops()

	err := s.cfg.Proxy.Stop(ctx)
	if s.cfg.TabDetector != nil {
		if err := s.cfg.TabDetector.Close(ctx); err != nil {
			log.WithError(err).Warn("failed to close tab detector")
		}
	}
	return err
}

func (s *Store) startLoops() {
	s.loopsLock.Lock()
	defer s.loopsLock.Unlock()

	if s.stopLoops != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stopLoops = cancel

	s.cfg.SyncTicker.Resume()
	s.cfg.PriceTicker.Resume()

	s.wg.Add(2)
	go s.syncLoop(ctx)
	go s.priceLoop(ctx)
}

func (s *Store) haltLoops() {
	s.loopsLock.Lock()
	defer s.loopsLock.Unlock()

	if s.stopLoops == nil {
		return
	}
	s.stopLoops()
	s.stopLoops = nil
	s.wg.Wait()
	s.cfg.SyncTicker.Pause()
	s.cfg.PriceTicker.Pause()
}

func (s *Store) syncLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-s.cfg.SyncTicker.Ticks():
			if err := s.Sync(ctx); err != nil {
				log.WithError(err).Warn("background sync failed")
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Store) priceLoop(ctx context.Context) {
	defer s.wg.Done()

	ticks := 0
	for {
		select {
		case <-s.cfg.PriceTicker.Ticks():
			ticks++
			if ticks < s.State().PriceBackoff {
				continue
			}
			ticks = 0
			if err := s.PriceCheck(ctx); err != nil {
				log.WithError(err).Warn("price check failed")
			}
		case <-ctx.Done():
			return
		}
	}
}

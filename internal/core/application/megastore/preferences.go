package megastore

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

const (
	hasBackedUpKey           = "has_backed_up"
	fiatCurrencyKey          = "fiat_currency"
	langKey                  = "i18nexLng"
	balanceViewKey           = "balanceView"
	betaWarnedKey            = "betaWarned"
	expirationWarningSeenKey = "expiration_warning_seen"
)

// balanceViewCycle is the order CycleBalanceView goes through.
var balanceViewCycle = map[domain.BalanceView]domain.BalanceView{
	domain.BalanceViewSats:   domain.BalanceViewFiat,
	domain.BalanceViewFiat:   domain.BalanceViewHidden,
	domain.BalanceViewHidden: domain.BalanceViewSats,
}

// loadPreferences restores the persisted preferences into the initial
// state. Malformed values are ignored.
func (s *Store) loadPreferences() {
	s.state.HasBackedUp = s.readBool(hasBackedUpKey)
	s.state.BetaWarned = s.readBool(betaWarnedKey)
	s.state.ExpirationWarningSeen = s.readBool(expirationWarningSeenKey)

	if lang, ok := s.read(langKey); ok {
		s.state.Lang = lang
	}
	if v, ok := s.read(balanceViewKey); ok {
		if view, err := domain.ParseBalanceView(v); err == nil {
			s.state.BalanceView = view
		}
	}
	if v, ok := s.read(fiatCurrencyKey); ok {
		var fiat domain.Currency
		if err := json.Unmarshal([]byte(v), &fiat); err != nil || fiat.Value == "" {
			log.WithError(err).Warn("ignoring malformed fiat currency preference")
		} else {
			s.preferredFiat = fiat
			s.state.Fiat = fiat
		}
	}
}

// SetFiat persists the preferred currency and refreshes the price with it.
func (s *Store) SetFiat(ctx context.Context, fiat domain.Currency) error {
	buf, err := json.Marshal(fiat)
	if err != nil {
		return err
	}
	if err := s.cfg.Storage.Set(fiatCurrencyKey, string(buf)); err != nil {
		return err
	}

	s.lock.Lock()
	s.preferredFiat = fiat
	s.lock.Unlock()

	return s.PriceCheck(ctx)
}

func (s *Store) SetHasBackedUp() error {
	if err := s.writeBool(hasBackedUpKey, true); err != nil {
		return err
	}
	s.update(func(st *State) { st.HasBackedUp = true })
	return nil
}

func (s *Store) SetBetaWarned() error {
	if err := s.writeBool(betaWarnedKey, true); err != nil {
		return err
	}
	s.update(func(st *State) { st.BetaWarned = true })
	return nil
}

func (s *Store) DismissExpirationWarning() error {
	if err := s.writeBool(expirationWarningSeenKey, true); err != nil {
		return err
	}
	s.update(func(st *State) { st.ExpirationWarningSeen = true })
	return nil
}

func (s *Store) SetLang(lang string) error {
	if err := s.cfg.Storage.Set(langKey, lang); err != nil {
		return err
	}
	s.update(func(st *State) { st.Lang = lang })
	return nil
}

func (s *Store) SetBalanceView(view domain.BalanceView) error {
	if _, err := domain.ParseBalanceView(string(view)); err != nil {
		return err
	}
	if err := s.cfg.Storage.Set(balanceViewKey, string(view)); err != nil {
		return err
	}
	s.update(func(st *State) { st.BalanceView = view })
	return nil
}

// CycleBalanceView switches to the next balance view, sats then fiat then
// hidden.
func (s *Store) CycleBalanceView() (domain.BalanceView, error) {
	next, ok := balanceViewCycle[s.State().BalanceView]
	if !ok {
		next = domain.BalanceViewSats
	}
	if err := s.SetBalanceView(next); err != nil {
		return "", err
	}
	return next, nil
}

func (s *Store) read(key string) (string, bool) {
	v, ok, err := s.cfg.Storage.Get(key)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to read preference")
		return "", false
	}
	return v, ok
}

func (s *Store) readBool(key string) bool {
	v, ok := s.read(key)
	if !ok {
		return false
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func (s *Store) writeBool(key string, v bool) error {
	return s.cfg.Storage.Set(key, strconv.FormatBool(v))
}

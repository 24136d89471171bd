package settings

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

const keyPrefix = "USER_SETTINGS_"

var (
	// ErrMissingNetwork is returned when no network can be resolved.
	ErrMissingNetwork = errors.New("network must be set")
	// ErrMissingProxy is returned when no proxy endpoint can be resolved.
	ErrMissingProxy = errors.New("proxy must be set")
	// ErrMissingStorage ...
	ErrMissingStorage = errors.New("missing local storage")
	// ErrInvalidOrigin ...
	ErrInvalidOrigin = errors.New("origin must be an absolute http(s) url")
	// ErrUnknownSetting is returned when updating a setting that doesn't exist.
	ErrUnknownSetting = errors.New("unknown setting")
)

// Service resolves the wallet settings from the user overrides persisted in
// local storage and the defaults the daemon has been configured with.
type Service struct {
	storage  ports.LocalStorage
	defaults domain.Settings
	origin   string
}

func NewService(
	storage ports.LocalStorage, defaults domain.Settings, origin string,
) (*Service, error) {
	if storage == nil {
		return nil, ErrMissingStorage
	}
	if origin != "" {
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" ||
			(u.Scheme != "http" && u.Scheme != "https") {
			return nil, ErrInvalidOrigin
		}
		origin = strings.TrimSuffix(origin, "/")
	}
	return &Service{storage, defaults, origin}, nil
}

func (s *Service) Defaults() domain.Settings {
	return s.defaults
}

// GetSettings returns the resolved settings. A stored empty string overrides
// the default and leaves the setting unset.
func (s *Service) GetSettings() (domain.Settings, error) {
	settings, err := s.stored()
	if err != nil {
		return domain.Settings{}, err
	}

	if settings.Network == "" {
		return domain.Settings{}, ErrMissingNetwork
	}
	if _, err := domain.ParseNetwork(settings.Network); err != nil {
		return domain.Settings{}, err
	}
	if settings.Proxy == "" {
		return domain.Settings{}, ErrMissingProxy
	}

	if settings.IsSelfhosted() && s.origin != "" {
		settings = s.makeAbsolute(settings)
	}
	return settings, nil
}

// SetSettings persists only the values that differ from the defaults and
// drops the ones that match, so that resetting to a default is implicit.
func (s *Service) SetSettings(settings domain.Settings) error {
	if settings.Network != "" {
		if _, err := domain.ParseNetwork(settings.Network); err != nil {
			return err
		}
	}

	for _, key := range domain.SettingsKeys {
		value := settings.Get(key)
		if value == s.defaults.Get(key) {
			if err := s.storage.Delete(keyPrefix + key); err != nil {
				return err
			}
			continue
		}
		if err := s.storage.Set(keyPrefix+key, value); err != nil {
			return err
		}
	}
	return nil
}

// UpdateSettings changes only the given settings. The others keep their
// stored value, as opposed to their resolved one.
func (s *Service) UpdateSettings(values map[string]string) error {
	settings, err := s.stored()
	if err != nil {
		return err
	}
	for key, value := range values {
		if !isSettingKey(key) {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
		}
		settings = settings.With(key, value)
	}
	return s.SetSettings(settings)
}

// ResetSettings removes every user override.
func (s *Service) ResetSettings() error {
	for _, key := range domain.SettingsKeys {
		if err := s.storage.Delete(keyPrefix + key); err != nil {
			return err
		}
	}
	return nil
}

// stored returns the user overrides on top of the defaults.
func (s *Service) stored() (domain.Settings, error) {
	settings := domain.Settings{}
	for _, key := range domain.SettingsKeys {
		value, ok, err := s.storage.Get(keyPrefix + key)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("reading setting %s: %w", key, err)
		}
		if !ok {
			value = s.defaults.Get(key)
		}
		settings = settings.With(key, value)
	}
	return settings, nil
}

func isSettingKey(key string) bool {
	for _, k := range domain.SettingsKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (s *Service) makeAbsolute(settings domain.Settings) domain.Settings {
	if strings.HasPrefix(settings.Storage, "/") {
		settings.Storage = s.origin + settings.Storage
	}
	if strings.HasPrefix(settings.Proxy, "/") {
		settings.Proxy = toWebsocket(s.origin + settings.Proxy)
	}
	return settings
}

func toWebsocket(endpoint string) string {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return "wss://" + strings.TrimPrefix(endpoint, "https://")
	case strings.HasPrefix(endpoint, "http://"):
		return "ws://" + strings.TrimPrefix(endpoint, "http://")
	}
	return endpoint
}

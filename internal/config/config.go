package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// ListeningPortKey is the port where the HTTP interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// EngineAddrKey is the websocket endpoint of the wallet engine, ie. ws://localhost:9595/rpc
	EngineAddrKey = "ENGINE_ADDR"
	// EngineTimeoutKey bounds every call to the wallet engine
	EngineTimeoutKey = "ENGINE_TIMEOUT"
	// OriginKey is the origin the wallet is served from, used to resolve the
	// self-hosted endpoints
	OriginKey = "ORIGIN"
	// SetupTimeoutKey is how long the wallet setup is given before failing
	SetupTimeoutKey = "SETUP_TIMEOUT"
	// SyncIntervalKey is the interval between two balance syncs
	SyncIntervalKey = "SYNC_INTERVAL"
	// PriceIntervalKey is the interval between two price checks
	PriceIntervalKey = "PRICE_INTERVAL"
	// TabReplyWindowKey is how long to wait for another running instance to
	// answer the handshake
	TabReplyWindowKey = "TAB_REPLY_WINDOW"
	// LeaseTTLKey is the validity of the storage lease held by the running
	// instance
	LeaseTTLKey = "LEASE_TTL"
	// PriceSourceKey selects where prices are fetched from, one of engine,
	// coinbase or kraken
	PriceSourceKey = "PRICE_SOURCE"
	// PriceSourceURLKey overrides the base url of the coinbase or kraken API
	PriceSourceURLKey = "PRICE_SOURCE_URL"
	// ParserKey selects the parser of incoming strings, engine or local
	ParserKey = "PARSER"
	// SecureStorePasswordFileKey defines full path to a file that contains
	// the password for the secure storage. If provided the wallet is set up
	// automatically at startup
	SecureStorePasswordFileKey = "SECURE_STORE_PASSWORD_FILE"
	// DeepLinkKey is the query string the wallet is opened with, ie.
	// safe_mode=true&lsps=...
	DeepLinkKey = "DEEP_LINK"
	// EnableWebhooksKey enables the notification of wallet events to
	// registered webhooks
	EnableWebhooksKey = "ENABLE_WEBHOOKS"
	// StatsIntervalKey defines interval for logging memory statistics, 0
	// disables it
	StatsIntervalKey = "STATS_INTERVAL"

	// Build-time defaults of the wallet settings.
	DefaultNetworkKey              = "DEFAULT_NETWORK"
	DefaultProxyKey                = "DEFAULT_PROXY"
	DefaultEsploraKey              = "DEFAULT_ESPLORA"
	DefaultRgsKey                  = "DEFAULT_RGS"
	DefaultLspKey                  = "DEFAULT_LSP"
	DefaultLspsConnectionStringKey = "DEFAULT_LSPS_CONNECTION_STRING"
	DefaultLspsTokenKey            = "DEFAULT_LSPS_TOKEN"
	DefaultAuthKey                 = "DEFAULT_AUTH"
	DefaultSubscriptionsKey        = "DEFAULT_SUBSCRIPTIONS"
	DefaultStorageKey              = "DEFAULT_STORAGE"
	DefaultScorerKey               = "DEFAULT_SCORER"
	DefaultPrimalApiKey            = "DEFAULT_PRIMAL_API"
	DefaultBlindAuthKey            = "DEFAULT_BLIND_AUTH"
	DefaultHermesKey               = "DEFAULT_HERMES"
	DefaultSelfhostedKey           = "DEFAULT_SELFHOSTED"

	DbLocation = "db"

	PriceSourceEngine   = "engine"
	PriceSourceCoinbase = "coinbase"
	PriceSourceKraken   = "kraken"

	ParserEngine = "engine"
	ParserLocal  = "local"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("mutinyd", false)

// settingsKeys binds the wallet settings to their default config key.
var settingsKeys = map[string]string{
	"network":                DefaultNetworkKey,
	"proxy":                  DefaultProxyKey,
	"esplora":                DefaultEsploraKey,
	"rgs":                    DefaultRgsKey,
	"lsp":                    DefaultLspKey,
	"lsps_connection_string": DefaultLspsConnectionStringKey,
	"lsps_token":             DefaultLspsTokenKey,
	"auth":                   DefaultAuthKey,
	"subscriptions":          DefaultSubscriptionsKey,
	"storage":                DefaultStorageKey,
	"scorer":                 DefaultScorerKey,
	"primal_api":             DefaultPrimalApiKey,
	"blind_auth":             DefaultBlindAuthKey,
	"hermes":                 DefaultHermesKey,
	"selfhosted":             DefaultSelfhostedKey,
}

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("MUTINY")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(ListeningPortKey, 14499)
	vip.SetDefault(EngineAddrKey, "ws://localhost:9595/rpc")
	vip.SetDefault(EngineTimeoutKey, 30*time.Second)
	vip.SetDefault(SetupTimeoutKey, 90*time.Second)
	vip.SetDefault(SyncIntervalKey, 3*time.Second)
	vip.SetDefault(PriceIntervalKey, time.Minute)
	vip.SetDefault(TabReplyWindowKey, 500*time.Millisecond)
	vip.SetDefault(LeaseTTLKey, 30*time.Second)
	vip.SetDefault(PriceSourceKey, PriceSourceEngine)
	vip.SetDefault(ParserKey, ParserEngine)
	vip.SetDefault(EnableWebhooksKey, true)
	vip.SetDefault(StatsIntervalKey, 0)

	vip.SetDefault(DefaultNetworkKey, string(domain.NetworkSignet))
	vip.SetDefault(DefaultProxyKey, "wss://p.mutinywallet.com")
	vip.SetDefault(DefaultEsploraKey, "https://mutinynet.com/api")
	vip.SetDefault(DefaultRgsKey, "https://scorer.mutinywallet.com/v1/rgs/snapshot/")
	vip.SetDefault(DefaultLspKey, "https://signet-lsp.mutinywallet.com")
	vip.SetDefault(DefaultAuthKey, "https://auth-staging.mutinywallet.com")
	vip.SetDefault(DefaultSubscriptionsKey, "https://subscriptions-staging.mutinywallet.com")
	vip.SetDefault(DefaultStorageKey, "https://storage-staging.mutinywallet.com")
	vip.SetDefault(DefaultScorerKey, "https://scorer-staging.mutinywallet.com")
	vip.SetDefault(DefaultPrimalApiKey, "https://primal-cache.mutinywallet.com/api")
	vip.SetDefault(DefaultBlindAuthKey, "https://blind-auth-staging.mutinywallet.com")
	vip.SetDefault(DefaultHermesKey, "https://signet.mutiny.plus")

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDefaultSettings returns the settings the wallet falls back to for
// those not overridden by the user.
func GetDefaultSettings() domain.Settings {
	settings := domain.Settings{}
	for _, key := range domain.SettingsKeys {
		settings = settings.With(key, GetString(settingsKeys[key]))
	}
	return settings
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if port := GetInt(ListeningPortKey); port <= 1024 || port > 65535 {
		return fmt.Errorf("%s must be in range (1024, 65535]", ListeningPortKey)
	}

	engineAddr := GetString(EngineAddrKey)
	u, err := url.Parse(engineAddr)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return fmt.Errorf("%s must be a ws(s) url, got %q", EngineAddrKey, engineAddr)
	}

	if _, err := domain.ParseNetwork(GetString(DefaultNetworkKey)); err != nil {
		return fmt.Errorf("%s: %s", DefaultNetworkKey, err)
	}

	for _, key := range []string{
		EngineTimeoutKey, SetupTimeoutKey, SyncIntervalKey, PriceIntervalKey,
		TabReplyWindowKey, LeaseTTLKey,
	} {
		if GetDuration(key) <= 0 {
			return fmt.Errorf("%s must be a positive duration", key)
		}
	}

	switch source := strings.ToLower(GetString(PriceSourceKey)); source {
	case PriceSourceEngine, PriceSourceCoinbase, PriceSourceKraken:
	default:
		return fmt.Errorf("unknown price source %s", source)
	}

	switch parser := strings.ToLower(GetString(ParserKey)); parser {
	case ParserEngine, ParserLocal:
	default:
		return fmt.Errorf("unknown parser %s", parser)
	}

	if origin := GetString(OriginKey); origin != "" {
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" ||
			(u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%s must be an absolute http(s) url", OriginKey)
		}
	}

	if _, err := ReadPasswordFile(); err != nil {
		return err
	}

	return nil
}

// ReadPasswordFile returns the content of the secure store password file,
// if configured.
func ReadPasswordFile() (string, error) {
	path := GetString(SecureStorePasswordFileKey)
	if path == "" {
		return "", nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read password file: %s", err)
	}
	return strings.TrimSpace(string(buf)), nil
}

func initDatadir() error {
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/lightningnetwork/lnd/ticker"
	"github.com/mutinywallet/mutinyd/internal/config"
	"github.com/mutinywallet/mutinyd/internal/core/application/engineproxy"
	"github.com/mutinywallet/mutinyd/internal/core/application/megastore"
	"github.com/mutinywallet/mutinyd/internal/core/application/pubsub"
	"github.com/mutinywallet/mutinyd/internal/core/application/settings"
	"github.com/mutinywallet/mutinyd/internal/core/application/tabdetector"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/mutinywallet/mutinyd/internal/infrastructure/broadcast"
	"github.com/mutinywallet/mutinyd/internal/infrastructure/engine/jsonrpc"
	coinbasefeeder "github.com/mutinywallet/mutinyd/internal/infrastructure/feeder/coinbase"
	krakenfeeder "github.com/mutinywallet/mutinyd/internal/infrastructure/feeder/kraken"
	"github.com/mutinywallet/mutinyd/internal/infrastructure/parser"
	webhookpubsub "github.com/mutinywallet/mutinyd/internal/infrastructure/pubsub"
	"github.com/mutinywallet/mutinyd/internal/infrastructure/securestore"
	dbbadger "github.com/mutinywallet/mutinyd/internal/infrastructure/storage/badger"
	"github.com/mutinywallet/mutinyd/internal/infrastructure/storage/inmemory"
	httpinterface "github.com/mutinywallet/mutinyd/internal/interfaces/http"
	"github.com/mutinywallet/mutinyd/pkg/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/thanhpk/randstr"
	"github.com/timshannon/badgerhold/v4"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	// The hub outlives the wallet instances, so that a reloaded instance
	// goes through the same handshake as any other.
	hub := broadcast.NewHub()
	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)

	for {
		reload, err := run(dbDir, hub, sigChan)
		if err != nil {
			log.WithError(err).Fatal("failed to run wallet daemon")
		}
		if !reload {
			break
		}
		log.Info("reloading wallet")
	}

	log.Info("exiting")
}

// run starts a wallet instance and blocks until either a termination signal
// is received or the instance requests a reload.
func run(
	dbDir string, hub ports.Broadcaster, sigChan <-chan os.Signal,
) (reload bool, err error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	localDb, err := dbbadger.NewStore(dbDir, dbbadger.LocalStorageDir, nil)
	if err != nil {
		return false, err
	}
	defer closeDb(localDb, dbbadger.LocalStorageDir)

	secureDb, err := dbbadger.NewStore(dbDir, dbbadger.SecureStorageDir, nil)
	if err != nil {
		return false, err
	}
	secureStorage := securestore.NewSecureStorage(secureDb)
	defer secureStorage.Close()

	localStorage := dbbadger.NewLocalStorage(localDb)
	settingsSvc, err := settings.NewService(
		localStorage, config.GetDefaultSettings(), config.GetString(config.OriginKey),
	)
	if err != nil {
		return false, err
	}

	engine, err := jsonrpc.NewEngine(
		config.GetString(config.EngineAddrKey),
		config.GetDuration(config.EngineTimeoutKey),
	)
	if err != nil {
		return false, err
	}
	defer engine.Close()

	proxy, err := engineproxy.NewService(engine, inmemory.NewSessionStorage())
	if err != nil {
		return false, err
	}

	reloadChan := make(chan struct{}, 1)
	navigator := httpinterface.NewNavigator(func() {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
	})

	tabDetector, err := tabdetector.NewService(
		hub, dbbadger.NewLeaseStore(localDb), tabdetector.Config{
			Owner:       randstr.Hex(16),
			ReplyWindow: config.GetDuration(config.TabReplyWindowKey),
			LeaseTTL:    config.GetDuration(config.LeaseTTLKey),
		},
	)
	if err != nil {
		return false, err
	}

	store, err := megastore.NewStore(megastore.Config{
		Proxy:         proxy,
		Settings:      settingsSvc,
		Parser:        paramsParser(proxy),
		PriceSource:   priceSource(proxy),
		Navigator:     navigator,
		Storage:       localStorage,
		SecureStorage: secureStorage,
		TabDetector:   tabDetector,
		SetupTimeout:  config.GetDuration(config.SetupTimeoutKey),
		SyncTicker:    ticker.New(config.GetDuration(config.SyncIntervalKey)),
		PriceTicker:   ticker.New(config.GetDuration(config.PriceIntervalKey)),
	})
	if err != nil {
		return false, err
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(
			context.Background(), shutdownTimeout,
		)
		defer stopCancel()
		if err := store.Stop(stopCtx); err != nil {
			log.WithError(err).Warn("failed to stop wallet")
		}
	}()

	var webhookSvc httpinterface.WebhookService
	if config.GetBool(config.EnableWebhooksKey) {
		webhookDb, err := dbbadger.NewStore(dbDir, dbbadger.WebhookDir, nil)
		if err != nil {
			return false, err
		}
		defer closeDb(webhookDb, dbbadger.WebhookDir)

		ps, err := webhookpubsub.NewService(
			webhookDb, webhookpubsub.DefaultRequestTimeout,
		)
		if err != nil {
			return false, err
		}
		notifier, err := pubsub.NewService(ps)
		if err != nil {
			return false, err
		}
		notifier.Start(store)
		defer notifier.Stop()
		webhookSvc = notifier
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	httpSvc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Addr:      fmt.Sprintf(":%d", config.GetInt(config.ListeningPortKey)),
		Store:     store,
		Wallet:    proxy,
		Settings:  settingsSvc,
		Navigator: navigator,
		Webhooks:  webhookSvc,
		Registry:  registry,
	})
	if err != nil {
		return false, err
	}
	if err := httpSvc.Start(); err != nil {
		return false, err
	}
	defer httpSvc.Stop()

	if interval := config.GetDuration(config.StatsIntervalKey); interval > 0 {
		stats.EnableMemoryStatistics(ctx, interval)
	}

	link, err := megastore.ParseDeepLink(config.GetString(config.DeepLinkKey))
	if err != nil {
		return false, fmt.Errorf("invalid deep link: %s", err)
	}
	password, err := config.ReadPasswordFile()
	if err != nil {
		return false, err
	}
	go boot(ctx, store, link, password)

	select {
	case <-sigChan:
	case <-reloadChan:
		reload = true
	}
	cancel()
	return reload, nil
}

// boot runs the checks preceding setup and sets the wallet up if there is
// one. A locked wallet waits for the password to be given over the API.
func boot(
	ctx context.Context, store *megastore.Store, link megastore.DeepLink,
	password string,
) {
	ready, err := store.PreSetup(ctx, link)
	if err != nil {
		log.WithError(err).Warn("failed to prepare wallet setup")
		return
	}
	if !ready {
		return
	}

	if err := store.Setup(ctx, password); err != nil {
		if domain.IsKind(err, domain.ErrKindIncorrectPassword) {
			log.Info("wallet is locked, waiting for password")
			return
		}
		log.WithError(err).Warn("wallet setup failed")
		return
	}
	log.Info("wallet is ready")
}

func paramsParser(proxy *engineproxy.Service) ports.ParamsParser {
	if strings.ToLower(config.GetString(config.ParserKey)) == config.ParserLocal {
		return parser.NewParser()
	}
	return proxy
}

func priceSource(proxy *engineproxy.Service) ports.PriceSource {
	url := config.GetString(config.PriceSourceURLKey)
	switch strings.ToLower(config.GetString(config.PriceSourceKey)) {
	case config.PriceSourceCoinbase:
		return coinbasefeeder.NewCoinbasePriceSource(url)
	case config.PriceSourceKraken:
		return krakenfeeder.NewKrakenPriceSource(url)
	default:
		return proxy.PriceSource()
	}
}

func closeDb(db *badgerhold.Store, name string) {
	if err := db.Close(); err != nil {
		log.WithError(err).Warnf("failed to close %s db", name)
	}
}

package httpinterface

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/mutinywallet/mutinyd/internal/core/application/dispatch"
	"github.com/mutinywallet/mutinyd/internal/core/application/megastore"
	"github.com/mutinywallet/mutinyd/internal/core/application/pubsub"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	interfaces "github.com/mutinywallet/mutinyd/internal/interfaces"
	"github.com/mutinywallet/mutinyd/pkg/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

var (
	ErrMissingAddr      = errors.New("missing listening address")
	ErrMissingStore     = errors.New("missing wallet store")
	ErrMissingWallet    = errors.New("missing wallet")
	ErrMissingSettings  = errors.New("missing settings service")
	ErrMissingNavigator = errors.New("missing navigator")
)

// WalletStore is the reactive store the API reads and drives.
type WalletStore interface {
	State() megastore.State
	Subscribe() (<-chan megastore.State, func())
	Setup(ctx context.Context, password string) error
	Sync(ctx context.Context) error
	SetFiat(ctx context.Context, fiat domain.Currency) error
	SetBalanceView(view domain.BalanceView) error
	DeleteMutinyWallet(ctx context.Context) error
	HandleIncomingString(
		ctx context.Context, str string,
		onError dispatch.ErrorHandler, onSuccess dispatch.SuccessHandler,
	)
}

// Wallet is the part of the engine proxy exposed over the API.
type Wallet interface {
	GetBalance(ctx context.Context) (domain.Balance, error)
	GetActivity(
		ctx context.Context, limit, offset *uint32,
	) ([]domain.ActivityItem, error)
	GetContacts(ctx context.Context) ([]domain.TagItem, error)
	CreateNewContact(ctx context.Context, contact domain.Contact) (string, error)
	ListFederations(ctx context.Context) ([]domain.FederationIdentity, error)
	NewFederation(
		ctx context.Context, inviteCode string,
	) (domain.FederationIdentity, error)
	GetNwcProfiles(ctx context.Context) ([]domain.NwcProfile, error)
	CreateInvoice(
		ctx context.Context, amount uint64, labels []string,
	) (domain.Invoice, error)
	PayInvoice(
		ctx context.Context, invoice string, amount *uint64, labels []string,
	) (domain.Invoice, error)
	ListChannels(ctx context.Context) ([]domain.Channel, error)
	GetLogs(ctx context.Context) ([]string, error)
}

type SettingsService interface {
	GetSettings() (domain.Settings, error)
	SetSettings(settings domain.Settings) error
	UpdateSettings(values map[string]string) error
	ResetSettings() error
}

type WebhookService interface {
	AddWebhook(hook pubsub.Webhook) (string, error)
	RemoveWebhook(id string) error
	ListWebhooks(event string) []pubsub.Webhook
}

type ServiceOpts struct {
	Addr      string
	Store     WalletStore
	Wallet    Wallet
	Settings  SettingsService
	Navigator *Navigator
	// Webhooks and Registry are optional. Without a registry /metrics is not
	// served.
	Webhooks WebhookService
	Registry *prometheus.Registry
}

func (o ServiceOpts) validate() error {
	if o.Addr == "" {
		return ErrMissingAddr
	}
	if o.Store == nil {
		return ErrMissingStore
	}
	if o.Wallet == nil {
		return ErrMissingWallet
	}
	if o.Settings == nil {
		return ErrMissingSettings
	}
	if o.Navigator == nil {
		return ErrMissingNavigator
	}
	return nil
}

type service struct {
	opts    ServiceOpts
	server  *http.Server
	handler *handler
	metrics *metricsObserver

	lock     *sync.Mutex
	listener net.Listener
}

func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	h := newHandler(opts)
	router := httprouter.New()
	h.register(router)

	var observer *metricsObserver
	if opts.Registry != nil {
		m, err := stats.NewMetrics(opts.Registry, loadStages())
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %s", err)
		}
		observer = newMetricsObserver(m)
		router.Handler(
			http.MethodGet, "/metrics",
			promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}),
		)
	}

	return &service{
		opts:    opts,
		server:  &http.Server{Handler: router},
		handler: h,
		metrics: observer,
		lock:    &sync.Mutex{},
	}, nil
}

func (s *service) Start() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.listener != nil {
		return nil
	}

	lis, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	s.listener = lis

	if s.metrics != nil {
		s.metrics.start(s.opts.Store)
	}

	go func() {
		if err := s.server.Serve(lis); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Warn("http server stopped unexpectedly")
		}
	}()
	log.Infof("http interface is listening on %s", lis.Addr())
	return nil
}

func (s *service) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.listener == nil {
		return
	}

	s.handler.closeStreams()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("failed to gracefully stop http interface")
	}
	if s.metrics != nil {
		s.metrics.stop()
	}
	s.listener = nil
	log.Info("http interface stopped")
}

func loadStages() []string {
	stages := make([]string, 0, len(domain.LoadStages))
	for _, s := range domain.LoadStages {
		stages = append(stages, string(s))
	}
	return stages
}

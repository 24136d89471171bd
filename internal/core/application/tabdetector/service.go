package tabdetector

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/lnd/ticker"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// ChannelName is the broadcast channel instances announce themselves on.
const ChannelName = "tab-detector"

const (
	DefaultReplyWindow = 500 * time.Millisecond
	DefaultLeaseTTL    = 30 * time.Second
)

var (
	ErrMissingBroadcaster = errors.New("missing broadcaster")
	ErrMissingOwner       = errors.New("missing owner id")
	ErrAlreadyClosed      = errors.New("tab detector already closed")
)

type Config struct {
	// Owner uniquely identifies this instance.
	Owner string
	// ReplyWindow is how long to wait for an EXISTING_TAB reply.
	ReplyWindow time.Duration
	// LeaseTTL is the validity of the storage lease. The lease is renewed
	// on every Heartbeat tick.
	LeaseTTL  time.Duration
	Heartbeat ticker.Ticker
	Clock     clock.Clock
}

// Service tells whether another instance is already running against the
// same wallet storage. It combines a broadcast handshake, answered only by
// the active instance, with an expiring storage lease.
type Service struct {
	cfg         Config
	broadcaster ports.Broadcaster
	leases      ports.LeaseStore

	lock     *sync.Mutex
	channel  ports.BroadcastChannel
	replies  chan ports.TabMessage
	active   atomic.Bool
	detected *bool
	closed   bool
	quit     chan struct{}
	wg       *sync.WaitGroup
}

// NewService returns a new detector. leases can be nil, in which case only
// the broadcast handshake is performed.
func NewService(
	broadcaster ports.Broadcaster, leases ports.LeaseStore, cfg Config,
) (*Service, error) {
	if broadcaster == nil {
		return nil, ErrMissingBroadcaster
	}
	if cfg.Owner == "" {
		return nil, ErrMissingOwner
	}
	if cfg.ReplyWindow <= 0 {
		cfg.ReplyWindow = DefaultReplyWindow
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = DefaultLeaseTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewDefaultClock()
	}
	if cfg.Heartbeat == nil {
		cfg.Heartbeat = ticker.New(cfg.LeaseTTL / 3)
	}

	return &Service{
		cfg:         cfg,
		broadcaster: broadcaster,
		leases:      leases,
		lock:        &sync.Mutex{},
		replies:     make(chan ports.TabMessage, 1),
		quit:        make(chan struct{}),
		wg:          &sync.WaitGroup{},
	}, nil
}

// Detect returns whether another instance is already active. Once this
// instance is found to be the only one, it starts answering the
// announcements of newer instances and keeps its lease alive.
func (s *Service) Detect(ctx context.Context) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return false, ErrAlreadyClosed
	}
	if s.detected != nil {
		return *s.detected, nil
	}

	if s.channel == nil {
		ch, err := s.broadcaster.Open(ChannelName)
		if err != nil {
			return false, err
		}
		s.channel = ch
		s.wg.Add(1)
		go s.listen(ch)
	}

	existing, err := s.handshake(ctx)
	if err != nil {
		return false, err
	}
	if !existing {
		if existing, err = s.acquireLease(ctx); err != nil {
			return false, err
		}
	}

	s.detected = &existing
	if !existing {
		s.active.Store(true)
		if s.leases != nil {
			s.cfg.Heartbeat.Resume()
			s.wg.Add(1)
			go s.keepAlive()
		}
	}
	return existing, nil
}

// Close stops answering announcements and releases the lease, if held.
func (s *Service) Close(ctx context.Context) error {
	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		return nil
	}
	s.closed = true
	active := s.active.Swap(false)
	ch := s.channel
	s.lock.Unlock()

	close(s.quit)
	s.cfg.Heartbeat.Stop()
	if ch != nil {
		if err := ch.Close(); err != nil {
			log.WithError(err).Warn("tab detector: failed to close channel")
		}
	}
	s.wg.Wait()

	if active && s.leases != nil {
		return s.leases.Release(ctx, s.cfg.Owner)
	}
	return nil
}

func (s *Service) handshake(ctx context.Context) (bool, error) {
	if err := s.channel.Post(ports.TabMessage{
		Type: ports.TabMessageNewTab,
		From: s.cfg.Owner,
	}); err != nil {
		return false, err
	}

	select {
	case msg := <-s.replies:
		log.Infof("tab detector: instance %s is already running", msg.From)
		return true, nil
	case <-s.cfg.Clock.TickAfter(s.cfg.ReplyWindow):
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (s *Service) acquireLease(ctx context.Context) (bool, error) {
	if s.leases == nil {
		return false, nil
	}

	acquired, holder, err := s.leases.Acquire(
		ctx, s.cfg.Owner, s.cfg.LeaseTTL, s.cfg.Clock.Now(),
	)
	if err != nil {
		return false, err
	}
	if !acquired {
		log.Infof(
			"tab detector: storage leased by %s until %s",
			holder.Owner, holder.ExpiresAt.Format(time.RFC3339),
		)
	}
	return !acquired, nil
}

func (s *Service) listen(ch ports.BroadcastChannel) {
	defer s.wg.Done()

	for msg := range ch.Messages() {
		if msg.From == s.cfg.Owner {
			continue
		}

		switch msg.Type {
		case ports.TabMessageNewTab:
			if !s.active.Load() {
				continue
			}
			if err := ch.Post(ports.TabMessage{
				Type: ports.TabMessageExistingTab,
				From: s.cfg.Owner,
				To:   msg.From,
			}); err != nil {
				log.WithError(err).Warn("tab detector: failed to reply")
			}
		case ports.TabMessageExistingTab:
			if msg.To != s.cfg.Owner {
				continue
			}
			select {
			case s.replies <- msg:
			default:
			}
		}
	}
}

func (s *Service) keepAlive() {
	defer s.wg.Done()

	for {
		select {
		case <-s.cfg.Heartbeat.Ticks():
			acquired, holder, err := s.leases.Acquire(
				context.Background(), s.cfg.Owner, s.cfg.LeaseTTL,
				s.cfg.Clock.Now(),
			)
			if err != nil {
				log.WithError(err).Warn("tab detector: failed to renew lease")
				continue
			}
			if !acquired {
				log.Warnf("tab detector: lease taken over by %s", holder.Owner)
			}
		case <-s.quit:
			return
		}
	}
}

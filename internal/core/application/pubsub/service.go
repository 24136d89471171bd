package pubsub

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/mutinywallet/mutinyd/internal/core/application/megastore"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

var (
	ErrMissingPubSub = errors.New("missing pubsub")
	ErrInvalidEvent  = errors.New("invalid webhook event type")
)

// StateSource is the wallet store the notified events come from.
type StateSource interface {
	Subscribe() (<-chan megastore.State, func())
}

// Webhook is the registration of an endpoint for an event.
type Webhook struct {
	ID       string `json:"id,omitempty"`
	Event    string `json:"event"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret,omitempty"`
	Secured  bool   `json:"secured"`
}

// Service manages the webhooks and publishes the wallet events to them.
type Service struct {
	pubsub ports.PubSub

	lock        *sync.Mutex
	unsubscribe func()
	wg          *sync.WaitGroup
}

func NewService(pubsub ports.PubSub) (*Service, error) {
	if pubsub == nil {
		return nil, ErrMissingPubSub
	}
	return &Service{
		pubsub: pubsub,
		lock:   &sync.Mutex{},
		wg:     &sync.WaitGroup{},
	}, nil
}

func (s *Service) AddWebhook(hook Webhook) (string, error) {
	if !ports.IsValidTopic(hook.Event) {
		return "", ErrInvalidEvent
	}
	return s.pubsub.Subscribe(hook.Event, hook.Endpoint, hook.Secret)
}

func (s *Service) RemoveWebhook(id string) error {
	return s.pubsub.Unsubscribe(id)
}

// ListWebhooks returns the webhooks for the event, all of them if event is
// empty. Secrets are never returned.
func (s *Service) ListWebhooks(event string) []Webhook {
	subs := s.pubsub.ListSubscriptionsForTopic(event)
	webhooks := make([]Webhook, 0, len(subs))
	for _, sub := range subs {
		webhooks = append(webhooks, Webhook{
			ID:       sub.Id(),
			Event:    sub.Topic(),
			Endpoint: sub.NotifyAt(),
			Secured:  sub.IsSecured(),
		})
	}
	return webhooks
}

// Start publishes the events derived from the changes of the store state
// until Stop is called.
func (s *Service) Start(source StateSource) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.unsubscribe != nil {
		return
	}
	states, unsubscribe := source.Subscribe()
	s.unsubscribe = unsubscribe

	s.wg.Add(1)
	go s.listen(states)
}

func (s *Service) Stop() {
	s.lock.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.lock.Unlock()

	if unsubscribe != nil {
		unsubscribe()
		s.wg.Wait()
	}
}

func (s *Service) Close() error {
	s.Stop()
	return s.pubsub.Close()
}

func (s *Service) listen(states <-chan megastore.State) {
	defer s.wg.Done()

	var prev *megastore.State
	for state := range states {
		state := state
		for _, event := range eventsBetween(prev, state) {
			if err := s.publish(event.topic, event.payload); err != nil {
				log.WithError(err).Warnf("failed to notify %s event", event.topic)
			}
		}
		prev = &state
	}
}

func (s *Service) PublishBalanceChangedEvent(
	balance domain.Balance, lastSync *time.Time,
) error {
	return s.publish(ports.BalanceChangedTopic, balanceChangedPayload(
		balance, lastSync,
	))
}

func (s *Service) PublishSetupCompletedEvent(state megastore.State) error {
	return s.publish(ports.SetupCompletedTopic, setupCompletedPayload(state))
}

func (s *Service) PublishSetupFailedEvent(err *domain.SetupError) error {
	return s.publish(ports.SetupFailedTopic, setupFailedPayload(err))
}

func (s *Service) PublishPriceFallbackEvent(backoff int) error {
	return s.publish(ports.PriceFallbackTopic, priceFallbackPayload(backoff))
}

func (s *Service) publish(topic string, payload map[string]interface{}) error {
	payload["event"] = topic
	message, _ := json.Marshal(payload)
	return s.pubsub.Publish(topic, string(message))
}

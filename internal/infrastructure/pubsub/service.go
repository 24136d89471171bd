package pubsub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/mutinywallet/mutinyd/pkg/circuitbreaker"
	"github.com/sony/gobreaker"
	"github.com/timshannon/badgerhold/v4"
	"golang.org/x/sync/errgroup"
)

const DefaultRequestTimeout = 15 * time.Second

var (
	ErrMissingStore         = errors.New("missing webhook store")
	ErrInvalidTopic         = errors.New("topic is invalid")
	ErrSubscriptionNotFound = ports.ErrSubscriptionNotFound
)

type service struct {
	store      store
	httpClient *client
	cb         *gobreaker.CircuitBreaker
	clock      func() time.Time
}

// NewService returns a PubSub notifying webhooks. Subscriptions are
// persisted in the given store.
func NewService(
	db *badgerhold.Store, requestTimeout time.Duration,
) (ports.PubSub, error) {
	if db == nil {
		return nil, ErrMissingStore
	}
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	return &service{
		store:      store{db},
		httpClient: newHTTPClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("webhooks"),
		clock:      time.Now,
	}, nil
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	if err := ws.store.add(*sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (ws *service) Unsubscribe(id string) error {
	return ws.store.remove(id)
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	subs, err := ws.listSubscriptionsForTopic(topic)
	if err != nil {
		return nil
	}
	return subs.toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	subs, err := ws.listSubscriptionsForTopic(topic)
	if err != nil {
		return err
	}

	ctx := context.Background()
	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(ctx, sub, message) })
	}
	return eg.Wait()
}

func (ws *service) Close() error {
	return ws.store.close()
}

func (ws *service) listSubscriptionsForTopic(topic string) (subscriptions, error) {
	if topic == ports.UnspecifiedTopic {
		return ws.store.list()
	}
	if topic == ports.AnyTopic {
		return ws.store.list(ports.AnyTopic)
	}
	return ws.store.list(topic, ports.AnyTopic)
}

func (ws *service) doRequest(
	ctx context.Context, sub Subscription, payload string,
) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if sub.IsSecured() {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
				IssuedAt: ws.clock().Unix(),
				Subject:  sub.Event,
			})
			tokenString, err := token.SignedString([]byte(sub.Secret))
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(
			ctx, sub.Endpoint, payload, headers,
		)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("webhook %s: %d %s", sub.ID, status, resp)
		}
		return nil, nil
	})

	return err
}

package ports

import "errors"

// ErrSubscriptionNotFound is returned when unsubscribing an unknown id.
var ErrSubscriptionNotFound = errors.New("webhook not found")

const (
	// AnyTopic subscribers are notified about every topic.
	AnyTopic = "*"
	// UnspecifiedTopic lists the subscriptions of all topics.
	UnspecifiedTopic = ""

	BalanceChangedTopic = "BALANCE_CHANGED"
	SetupCompletedTopic = "SETUP_COMPLETED"
	SetupFailedTopic    = "SETUP_FAILED"
	PriceFallbackTopic  = "PRICE_FALLBACK"
)

// IsValidTopic returns whether topic can be subscribed to.
func IsValidTopic(topic string) bool {
	switch topic {
	case AnyTopic, BalanceChangedTopic, SetupCompletedTopic, SetupFailedTopic,
		PriceFallbackTopic:
		return true
	}
	return false
}

// Subscription is an endpoint registered to be notified about a topic.
type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// PubSub delivers wallet events to the endpoints subscribed to them.
// Subscriptions survive restarts, so implementations are backed by a store.
type PubSub interface {
	// Subscribe adds a new subscription for the requested topic. The secret,
	// if not empty, is used to sign the notifications.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the subscription with the given id.
	Unsubscribe(id string) error
	// ListSubscriptionsForTopic returns the subscriptions for a topic,
	// included those for AnyTopic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish notifies all subscribers of the topic with the message.
	Publish(topic string, message string) error
	Close() error
}

package pubsub_test

import (
	"github.com/mutinywallet/mutinyd/internal/core/application/megastore"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

type mockPubSub struct {
	mock.Mock
}

func (m *mockPubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	args := m.Called(topic, endpoint, secret)
	return args.String(0), args.Error(1)
}

func (m *mockPubSub) Unsubscribe(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockPubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	args := m.Called(topic)
	var res []ports.Subscription
	if a := args.Get(0); a != nil {
		res = a.([]ports.Subscription)
	}
	return res
}

func (m *mockPubSub) Publish(topic string, message string) error {
	args := m.Called(topic, message)
	return args.Error(0)
}

func (m *mockPubSub) Close() error {
	args := m.Called()
	return args.Error(0)
}

type subscription struct {
	id, topic, endpoint string
	secured             bool
}

func (s subscription) Topic() string    { return s.topic }
func (s subscription) Id() string       { return s.id }
func (s subscription) IsSecured() bool  { return s.secured }
func (s subscription) NotifyAt() string { return s.endpoint }

// stateSource delivers the given states, the channel is closed on
// unsubscribe.
type stateSource struct {
	ch chan megastore.State
}

func newStateSource(states []megastore.State) stateSource {
	ch := make(chan megastore.State, len(states))
	for _, s := range states {
		ch <- s
	}
	return stateSource{ch}
}

func (s stateSource) Subscribe() (<-chan megastore.State, func()) {
	return s.ch, func() { close(s.ch) }
}

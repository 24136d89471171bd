package pubsub_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mutinywallet/mutinyd/internal/core/application/megastore"
	"github.com/mutinywallet/mutinyd/internal/core/application/pubsub"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	_, err := pubsub.NewService(nil)
	require.ErrorIs(t, err, pubsub.ErrMissingPubSub)
}

func TestWebhooks(t *testing.T) {
	ps := &mockPubSub{}
	ps.On(
		"Subscribe", ports.BalanceChangedTopic, "https://example.com", "secret",
	).Return("id", nil)
	ps.On("ListSubscriptionsForTopic", ports.UnspecifiedTopic).Return(
		[]ports.Subscription{subscription{
			"id", ports.BalanceChangedTopic, "https://example.com", true,
		}},
	)
	ps.On("Unsubscribe", "id").Return(nil)

	svc, err := pubsub.NewService(ps)
	require.NoError(t, err)

	_, err = svc.AddWebhook(pubsub.Webhook{Event: "TRADE_SETTLED"})
	require.ErrorIs(t, err, pubsub.ErrInvalidEvent)

	id, err := svc.AddWebhook(pubsub.Webhook{
		Event:    ports.BalanceChangedTopic,
		Endpoint: "https://example.com",
		Secret:   "secret",
	})
	require.NoError(t, err)
	require.Equal(t, "id", id)

	hooks := svc.ListWebhooks(ports.UnspecifiedTopic)
	require.Equal(t, []pubsub.Webhook{{
		ID:       "id",
		Event:    ports.BalanceChangedTopic,
		Endpoint: "https://example.com",
		Secured:  true,
	}}, hooks)

	require.NoError(t, svc.RemoveWebhook("id"))
}

func TestStateEvents(t *testing.T) {
	lastSync := time.Unix(1700000000, 0).UTC()
	balance := domain.Balance{Lightning: 1000}
	states := []megastore.State{
		{LoadStage: domain.LoadStageFresh, PriceBackoff: 1},
		{LoadStage: domain.LoadStageSetup, PriceBackoff: 1},
		{
			LoadStage:    domain.LoadStageDone,
			Network:      domain.NetworkSignet,
			Balance:      &balance,
			LastSync:     &lastSync,
			PriceBackoff: 1,
		},
		// Same balance, nothing to notify.
		{
			LoadStage:    domain.LoadStageDone,
			Balance:      &domain.Balance{Lightning: 1000},
			PriceBackoff: 1,
		},
		{
			LoadStage:    domain.LoadStageDone,
			Balance:      &domain.Balance{Lightning: 1000},
			PriceBackoff: 2,
		},
		// Still in fallback.
		{
			LoadStage:    domain.LoadStageDone,
			Balance:      &domain.Balance{Lightning: 1000},
			PriceBackoff: 4,
		},
	}

	ps := &mockPubSub{}
	published := make(map[string][]string)
	ps.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		topic := args.String(0)
		published[topic] = append(published[topic], args.String(1))
	}).Return(errors.New("endpoint down"))

	source := newStateSource(states)
	svc, err := pubsub.NewService(ps)
	require.NoError(t, err)
	svc.Start(source)
	svc.Stop()

	require.Len(t, published[ports.SetupCompletedTopic], 1)
	require.Len(t, published[ports.BalanceChangedTopic], 1)
	require.Len(t, published[ports.PriceFallbackTopic], 1)
	require.Empty(t, published[ports.SetupFailedTopic])

	payload := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(
		[]byte(published[ports.BalanceChangedTopic][0]), &payload,
	))
	require.Equal(t, ports.BalanceChangedTopic, payload["event"])
	require.Equal(t, "2023-11-14T22:13:20Z", payload["last_sync"])
	require.Equal(t, float64(1000), payload["balance"].(map[string]interface{})["total"])

	require.NoError(t, json.Unmarshal(
		[]byte(published[ports.PriceFallbackTopic][0]), &payload,
	))
	require.Equal(t, float64(2), payload["backoff"])
}

func TestSetupFailedEvent(t *testing.T) {
	ps := &mockPubSub{}
	var message string
	ps.On("Publish", ports.SetupFailedTopic, mock.Anything).Run(
		func(args mock.Arguments) { message = args.String(1) },
	).Return(nil)

	svc, err := pubsub.NewService(ps)
	require.NoError(t, err)

	setupErr := domain.NewSetupError(
		domain.SetupErrTimeout, megastore.ErrSetupTimeout,
	)
	svc.Start(newStateSource([]megastore.State{
		{LoadStage: domain.LoadStageSetup},
		{LoadStage: domain.LoadStageSetup, SetupError: setupErr},
	}))
	svc.Stop()

	payload := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(message), &payload))
	require.Equal(t, "timeout", payload["kind"])
	require.Equal(t, setupErr.Error(), payload["error"])
	ps.AssertNumberOfCalls(t, "Publish", 1)
}

package pubsub

import (
	"time"

	"github.com/mutinywallet/mutinyd/internal/core/application/megastore"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

type event struct {
	topic   string
	payload map[string]interface{}
}

// eventsBetween returns the events to notify for the transition from prev
// to next. prev is nil for the first state received.
func eventsBetween(prev *megastore.State, next megastore.State) []event {
	if prev == nil {
		prev = &megastore.State{}
	}
	events := make([]event, 0)

	if next.LoadStage == domain.LoadStageDone &&
		prev.LoadStage != domain.LoadStageDone {
		events = append(events, event{
			ports.SetupCompletedTopic, setupCompletedPayload(next),
		})
	}
	if next.SetupError != nil && prev.SetupError == nil {
		events = append(events, event{
			ports.SetupFailedTopic, setupFailedPayload(next.SetupError),
		})
	}
	if next.Balance != nil && (prev.Balance == nil || *prev.Balance != *next.Balance) {
		events = append(events, event{
			ports.BalanceChangedTopic,
			balanceChangedPayload(*next.Balance, next.LastSync),
		})
	}
	if isPriceFallback(next) && !isPriceFallback(*prev) {
		events = append(events, event{
			ports.PriceFallbackTopic, priceFallbackPayload(next.PriceBackoff),
		})
	}
	return events
}

func isPriceFallback(state megastore.State) bool {
	return state.PriceBackoff > 1
}

func balanceChangedPayload(
	balance domain.Balance, lastSync *time.Time,
) map[string]interface{} {
	payload := map[string]interface{}{
		"balance": map[string]uint64{
			"federation":  balance.Federation,
			"lightning":   balance.Lightning,
			"confirmed":   balance.Confirmed,
			"unconfirmed": balance.Unconfirmed,
			"force_close": balance.ForceClose,
			"total":       balance.Total(),
		},
	}
	if lastSync != nil {
		payload["last_sync"] = lastSync.Format(time.RFC3339)
	}
	return payload
}

func setupCompletedPayload(state megastore.State) map[string]interface{} {
	return map[string]interface{}{
		"network":     state.Network,
		"federations": len(state.Federations),
		"safe_mode":   state.SafeMode,
	}
}

func setupFailedPayload(err *domain.SetupError) map[string]interface{} {
	return map[string]interface{}{
		"kind":  err.Kind,
		"error": err.Error(),
	}
}

func priceFallbackPayload(backoff int) map[string]interface{} {
	return map[string]interface{}{
		"fiat":    domain.BtcCurrency.Value,
		"backoff": backoff,
	}
}

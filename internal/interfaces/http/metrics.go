package httpinterface

import (
	"sync"

	"github.com/mutinywallet/mutinyd/internal/core/application/megastore"
	"github.com/mutinywallet/mutinyd/pkg/stats"
)

// metricsObserver keeps the prometheus metrics in line with the store state.
// Counters are derived from state transitions, so changes coalesced by the
// store subscription are not counted.
type metricsObserver struct {
	metrics *stats.Metrics

	lock        *sync.Mutex
	unsubscribe func()
	wg          *sync.WaitGroup
}

func newMetricsObserver(metrics *stats.Metrics) *metricsObserver {
	return &metricsObserver{
		metrics: metrics,
		lock:    &sync.Mutex{},
		wg:      &sync.WaitGroup{},
	}
}

func (o *metricsObserver) start(store WalletStore) {
	o.lock.Lock()
	defer o.lock.Unlock()

	if o.unsubscribe != nil {
		return
	}
	states, unsubscribe := store.Subscribe()
	o.unsubscribe = unsubscribe

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		var prev *megastore.State
		for st := range states {
			st := st
			o.observe(prev, st)
			prev = &st
		}
	}()
}

func (o *metricsObserver) stop() {
	o.lock.Lock()
	unsubscribe := o.unsubscribe
	o.unsubscribe = nil
	o.lock.Unlock()

	if unsubscribe != nil {
		unsubscribe()
		o.wg.Wait()
	}
}

func (o *metricsObserver) observe(prev *megastore.State, next megastore.State) {
	o.metrics.SetLoadStage(string(next.LoadStage))

	if b := next.Balance; b != nil {
		o.metrics.SetBalance("federation", b.Federation)
		o.metrics.SetBalance("lightning", b.Lightning)
		o.metrics.SetBalance("confirmed", b.Confirmed)
		o.metrics.SetBalance("unconfirmed", b.Unconfirmed)
		o.metrics.SetBalance("force_close", b.ForceClose)
	}
	o.metrics.SetPrice(next.Fiat.Value, next.Price.InexactFloat64())

	if prev == nil {
		return
	}
	if prev.IsSyncing && !next.IsSyncing {
		o.metrics.IncSync(synced(prev, next))
	}
	if next.PriceBackoff > prev.PriceBackoff {
		o.metrics.IncPriceFailure()
	}
}

func synced(prev *megastore.State, next megastore.State) bool {
	if next.LastSync == nil {
		return false
	}
	return prev.LastSync == nil || !prev.LastSync.Equal(*next.LastSync)
}

package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mutiny"

// Metrics exposes the wallet state to prometheus.
type Metrics struct {
	balance     *prometheus.GaugeVec
	price       *prometheus.GaugeVec
	loadStage   *prometheus.GaugeVec
	syncs       *prometheus.CounterVec
	priceErrors prometheus.Counter

	stages []string
}

// NewMetrics registers the wallet collectors. stages are all the load stages
// the wallet can be in, only the current one is set to 1.
func NewMetrics(reg prometheus.Registerer, stages []string) (*Metrics, error) {
	m := &Metrics{
		balance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balance_sats",
			Help:      "Wallet balance by component, in satoshis.",
		}, []string{"component"}),
		price: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "btc_price",
			Help:      "Price of one bitcoin in the selected currency.",
		}, []string{"currency"}),
		loadStage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "load_stage",
			Help:      "Current wallet load stage.",
		}, []string{"stage"}),
		syncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "syncs_total",
			Help:      "Completed balance syncs by result.",
		}, []string{"result"}),
		priceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_failures_total",
			Help:      "Failed price checks.",
		}),
		stages: stages,
	}

	for _, c := range []prometheus.Collector{
		m.balance, m.price, m.loadStage, m.syncs, m.priceErrors,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) SetBalance(component string, sats uint64) {
	m.balance.WithLabelValues(component).Set(float64(sats))
}

// SetPrice records the price for currency, dropping the one of any other
// currency.
func (m *Metrics) SetPrice(currency string, price float64) {
	m.price.Reset()
	m.price.WithLabelValues(currency).Set(price)
}

func (m *Metrics) SetLoadStage(stage string) {
	for _, s := range m.stages {
		v := 0.0
		if s == stage {
			v = 1
		}
		m.loadStage.WithLabelValues(s).Set(v)
	}
}

func (m *Metrics) IncSync(succeeded bool) {
	result := "success"
	if !succeeded {
		result = "failure"
	}
	m.syncs.WithLabelValues(result).Inc()
}

func (m *Metrics) IncPriceFailure() {
	m.priceErrors.Inc()
}

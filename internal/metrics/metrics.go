package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LedgerMetrics counts the write operations against the stock ledger.
type LedgerMetrics struct {
	OrdersPlaced      prometheus.Counter
	PurchasesReceived prometheus.Counter
	StockAdjustments  prometheus.Counter
	Anomalies         prometheus.Counter
}

// NewLedgerMetrics registers the ledger counters on the default registry.
func NewLedgerMetrics() *LedgerMetrics {
	return NewLedgerMetricsWith(prometheus.DefaultRegisterer)
}

// NewLedgerMetricsWith registers on an explicit registry (tests use their own).
func NewLedgerMetricsWith(reg prometheus.Registerer) *LedgerMetrics {
	m := &LedgerMetrics{
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rasoi",
			Name:      "orders_placed_total",
			Help:      "Total number of orders placed.",
		}),
		PurchasesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rasoi",
			Name:      "purchase_orders_received_total",
			Help:      "Total number of purchase orders received (exactly-once receipts).",
		}),
		StockAdjustments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rasoi",
			Name:      "stock_adjustments_total",
			Help:      "Total number of stock deltas applied to the ledger.",
		}),
		Anomalies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rasoi",
			Name:      "unmatched_ingredient_anomalies_total",
			Help:      "Total number of recipe or PO lines whose ingredient could not be resolved.",
		}),
	}

	reg.MustRegister(
		m.OrdersPlaced,
		m.PurchasesReceived,
		m.StockAdjustments,
		m.Anomalies,
	)
	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}

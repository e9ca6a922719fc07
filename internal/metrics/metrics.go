// Package metrics defines the Prometheus metrics exported by cupcraft-counter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Order metrics
var (
	OrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cupcraft_orders_total",
		Help: "Total number of orders received, by outcome",
	}, []string{"status"})

	OrderValueDollars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cupcraft_order_value_dollars",
		Help:    "Total price of accepted orders in dollars",
		Buckets: []float64{3.5, 4, 4.5, 5, 5.5, 6, 7, 8, 10},
	})

	ToppingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cupcraft_toppings_total",
		Help: "Toppings on accepted orders",
	}, []string{"topping"})

	OrderHandleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cupcraft_order_handle_duration_seconds",
		Help:    "Time to validate and journal an order",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
	})

	JournalErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cupcraft_journal_errors_total",
		Help: "Total number of failed journal writes",
	})
)

// Connection metrics
var (
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cupcraft_active_connections",
		Help: "Number of open websocket connections",
	})

	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cupcraft_messages_total",
		Help: "Total number of websocket messages, by direction",
	}, []string{"direction"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cupcraft_rate_limited_total",
		Help: "Total number of messages refused by the rate limiter",
	})
)

// Status labels for OrdersTotal.
const (
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
	StatusError    = "error"
)

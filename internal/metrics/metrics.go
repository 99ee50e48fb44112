package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint"},
	)

	// OrdersTotal tracks orders created, labelled by payment method
	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Total number of orders created",
		},
		[]string{"payment_method"},
	)

	// OrderStatusTransitions tracks lifecycle transitions applied
	OrderStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Total number of order status transitions",
		},
		[]string{"from", "to"},
	)

	// OrderAmount tracks order totals in minor currency units
	OrderAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_amount_minor_units",
			Help:    "Order totals in minor currency units",
			Buckets: []float64{500, 1000, 2500, 5000, 10000, 25000},
		},
	)

	// BoardPollFailures tracks failed order-board poll fetches
	BoardPollFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "board_poll_failures_total",
			Help: "Total number of failed order-board poll fetches",
		},
	)
)

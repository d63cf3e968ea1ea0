package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	confirmationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickrent_payment_confirmations_total",
		Help: "Payment confirmation signals by channel and outcome",
	}, []string{"channel", "result"})

	webhookLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quickrent_webhook_duration_seconds",
		Help:    "Webhook processing latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"event"})
)

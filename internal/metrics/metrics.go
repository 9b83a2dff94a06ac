package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WsConnections tracks currently open WebSocket connections.
	WsConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cipherchat_ws_connections",
		Help: "Number of active WebSocket connections.",
	})

	// MessagesRelayed counts messages accepted and fanned out per room.
	MessagesRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cipherchat_messages_relayed_total",
		Help: "Total messages relayed, labeled by message kind.",
	}, []string{"kind"})

	// CryptoFailures counts encrypt/decrypt errors surfaced by the adapter.
	CryptoFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cipherchat_crypto_failures_total",
		Help: "Total encryption or decryption failures.",
	})

	// AIRequests counts completion requests by outcome (ok, fallback).
	AIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cipherchat_ai_requests_total",
		Help: "Total AI completion requests, labeled by outcome.",
	}, []string{"outcome"})
)

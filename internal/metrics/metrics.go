package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransfersSubmitted tracks submitted on-chain transfers per family
	// and method label.
	TransfersSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custody_transfers_submitted_total",
			Help: "Total number of on-chain transfers submitted",
		},
		[]string{"family", "coin_type"},
	)

	// TransferErrors tracks failed transfer submissions per family
	TransferErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custody_transfer_errors_total",
			Help: "Total number of failed transfer submissions",
		},
		[]string{"family", "coin_type"},
	)

	// ReceiptPolls tracks receipt polls per family and resulting status
	ReceiptPolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custody_receipt_polls_total",
			Help: "Total number of receipt polls",
		},
		[]string{"family", "status"},
	)

	// RPCCallsTotal tracks chain RPC calls per endpoint kind and method
	RPCCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custody_rpc_calls_total",
			Help: "Total number of chain RPC calls",
		},
		[]string{"family", "method"},
	)

	// RPCLatency tracks chain RPC call latency
	RPCLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "custody_rpc_latency_seconds",
			Help:    "Chain RPC call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"family", "method"},
	)

	// SettlementsApproved tracks completed settlement approvals
	SettlementsApproved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custody_settlements_approved_total",
			Help: "Total number of approved settlements",
		},
		[]string{"coin_type", "forwarded"},
	)

	// SponsorTokenRefreshes tracks sponsor OAuth token refreshes
	SponsorTokenRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "custody_sponsor_token_refreshes_total",
			Help: "Total number of sponsor token refreshes",
		},
	)
)

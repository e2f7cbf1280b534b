// Package metrics holds the prometheus instruments for the valuation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PriceUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetgraph_price_updates_total",
			Help: "Price updates applied, by source",
		},
		[]string{"source"},
	)

	NodesRecomputedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assetgraph_nodes_recomputed_total",
			Help: "Node values recomputed while propagating updates",
		},
	)

	UpdateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assetgraph_update_duration_seconds",
			Help:    "Time spent applying one price update end to end",
			Buckets: prometheus.DefBuckets,
		},
	)

	ReconcileDriftTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assetgraph_reconcile_drift_total",
			Help: "Nodes where the cached value disagreed with a full recompute",
		},
	)

	StreamClientsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assetgraph_stream_clients",
			Help: "Connected websocket stream clients",
		},
	)
)

// Package metrics exposes the sampler's internal instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SweepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hdplda_sweep_duration_seconds",
		Help:    "Duration of a single sampler sweep stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	TopicCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hdplda_topic_count",
		Help: "Current number of live topics (K)",
	})

	TableCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hdplda_table_count",
		Help: "Current number of live tables across the franchise (m)",
	})

	GammaValue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hdplda_gamma",
		Help: "Current value of the top-level concentration parameter gamma",
	})

	Alpha0Value = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hdplda_alpha0",
		Help: "Current value of the per-restaurant concentration parameter alpha0",
	})

	SweepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hdplda_sweeps_total",
		Help: "Total number of completed sweep stages",
	}, []string{"stage"})
)

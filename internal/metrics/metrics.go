// Package metrics holds the prometheus collector of attack runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector owns a private registry with the attack and breaker metrics.
type Collector struct {
	registry *prometheus.Registry

	AttackRuns         prometheus.Counter
	AttackCandidates   prometheus.Counter
	AttackBestScore    prometheus.Gauge
	CandidateDurations prometheus.Histogram
	BreakerRestarts    prometheus.Counter
	BreakerIterations  prometheus.Counter
}

// New registers all metrics on a fresh registry.
func New() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,

		AttackRuns: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "attack_runs_total",
			Help: "The total number of ciphertext-only attacks started",
		}),
		AttackCandidates: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "attack_candidates_total",
			Help: "The total number of key lengths tried by attacks",
		}),
		AttackBestScore: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "attack_best_score",
			Help: "The score of the best candidate of the last attack",
		}),
		CandidateDurations: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "attack_candidate_duration_seconds",
			Help:    "Duration of trying one key length",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		BreakerRestarts: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "breaker_restarts_total",
			Help: "The total number of completed key table search restarts",
		}),
		BreakerIterations: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "breaker_iterations_total",
			Help: "The total number of key table mutations evaluated",
		}),
	}

	return c
}

// GetRegistry returns the registry the metrics are registered on.
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile dumps the registry in the node exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

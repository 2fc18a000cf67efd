package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bucket_manager"

// Allocation sources.
const (
	SourceRegistry = "registry"
	SourceFallback = "fallback"
)

// Metrics groups the collectors of the bucket manager. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	poolsGenerated  prometheus.Counter
	poolsFailed     prometheus.Counter
	allocations     *prometheus.CounterVec
	registrySize    prometheus.Gauge
	bucketCreations *prometheus.CounterVec
	compensations   *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		poolsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pools_generated_total",
			Help:      "Pools successfully created by preallocation.",
		}),
		poolsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pools_failed_total",
			Help:      "Pool creations the backend rejected.",
		}),
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_allocations_total",
			Help:      "Pools bound to new buckets, by source.",
		}, []string{"source"}),
		registrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "available_pools",
			Help:      "Entries in the available-pool registry at the last read.",
		}),
		bucketCreations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bucket_creations_total",
			Help:      "Bucket creation attempts, by result.",
		}, []string{"result"}),
		compensations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compensations_total",
			Help:      "Compensating actions, by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}

	m.registry.MustRegister(
		m.poolsGenerated,
		m.poolsFailed,
		m.allocations,
		m.registrySize,
		m.bucketCreations,
		m.compensations,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// PoolsGenerated records the outcome of one pool creation batch.
func (m *Metrics) PoolsGenerated(ok, failed int) {
	if m == nil {
		return
	}
	m.poolsGenerated.Add(float64(ok))
	m.poolsFailed.Add(float64(failed))
}

// Allocated counts a pool allocation from source.
func (m *Metrics) Allocated(source string) {
	if m == nil {
		return
	}
	m.allocations.WithLabelValues(source).Inc()
}

// RegistrySize sets the number of available pools last observed.
func (m *Metrics) RegistrySize(n int) {
	if m == nil {
		return
	}
	m.registrySize.Set(float64(n))
}

// BucketCreated counts a bucket creation attempt by result.
func (m *Metrics) BucketCreated(result string) {
	if m == nil {
		return
	}
	m.bucketCreations.WithLabelValues(result).Inc()
}

// Compensated counts a cleanup step by kind and outcome.
func (m *Metrics) Compensated(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	m.compensations.WithLabelValues(kind, outcome).Inc()
}

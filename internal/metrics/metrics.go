package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/boundary-resolver/internal/domain"
)

var latencyBucketsMs = []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}

var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "boundary_provider_requests_total",
		Help: "Provider attempts by provider family and outcome",
	}, []string{"provider", "outcome"})
	ProviderDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "boundary_provider_duration_ms",
		Help:    "Provider attempt duration in milliseconds",
		Buckets: latencyBucketsMs,
	}, []string{"provider"})
	CircuitStatus = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "boundary_circuit_status",
		Help: "Circuit status per provider family (0 closed, 1 open, 2 half-open)",
	}, []string{"provider"})
	RendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "boundary_renders_total",
		Help: "Resolve results by outcome (normal, simplified, fallback, failed)",
	}, []string{"outcome"})
	ResolveDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "boundary_resolve_duration_ms",
		Help:    "Resolve duration in milliseconds by tier",
		Buckets: latencyBucketsMs,
	}, []string{"tier"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "boundary_cache_hits_total",
		Help: "Total result cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "boundary_cache_misses_total",
		Help: "Total result cache misses",
	})
	CacheEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "boundary_cache_entries",
		Help: "Entries currently held by the result cache",
	})
)

func init() {
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderDurationMs)
	prometheus.MustRegister(CircuitStatus)
	prometheus.MustRegister(RendersTotal)
	prometheus.MustRegister(ResolveDurationMs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(CacheEntries)
}

// ObserveOutcome учитывает одну попытку запроса к провайдеру
func ObserveOutcome(o domain.ProviderOutcome) {
	ProviderRequestsTotal.WithLabelValues(o.ProviderID, string(o.Outcome)).Inc()
	if o.Latency > 0 {
		ProviderDurationMs.WithLabelValues(o.ProviderID).Observe(float64(o.Latency.Milliseconds()))
	}
}

// ObserveCircuit выставляет gauge состояния автомата
func ObserveCircuit(providerID string, status domain.CircuitStatus) {
	CircuitStatus.WithLabelValues(providerID).Set(float64(status))
}

func ObserveResolve(tierID string, d time.Duration) {
	ResolveDurationMs.WithLabelValues(tierID).Observe(float64(d.Milliseconds()))
}

func ObserveCache(hit bool) {
	if hit {
		CacheHitsTotal.Inc()
		return
	}
	CacheMissesTotal.Inc()
}

// Handler отдает зарегистрированные метрики для /metrics
func Handler() http.Handler { return promhttp.Handler() }

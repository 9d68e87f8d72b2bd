package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wallet_networks"

// Lookup results recorded by RegistryLookups.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

var ( //nolint:gochecknoglobals // Global for collectors
	// RegistryLookups counts network registry lookups by operation and result.
	RegistryLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "lookups_total",
		Help:      "Number of network registry lookups.",
	}, []string{"operation", "result"})

	// RegistryNetworks is the number of networks held by the most recently built registry.
	RegistryNetworks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "networks",
		Help:      "Number of networks in the registry.",
	})

	// PriceCacheRequests counts token price cache lookups by result.
	PriceCacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "prices",
		Name:      "cache_requests_total",
		Help:      "Token price cache lookups.",
	}, []string{"result"})

	// CoinGeckoRequestDuration observes outbound CoinGecko request latency.
	CoinGeckoRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "coingecko",
		Name:      "request_duration_seconds",
		Help:      "Latency of CoinGecko API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "status"})

	// HTTPRequests counts served API requests.
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests served.",
	}, []string{"route", "code"})

	registerOnce sync.Once
)

// MustRegisterMetrics registers every collector with the default Prometheus registry.
// Subsequent calls are no-ops.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RegistryLookups,
			RegistryNetworks,
			PriceCacheRequests,
			CoinGeckoRequestDuration,
			HTTPRequests,
		)
	})
}

// Package metrics provides observability for the scan domain.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for scan evaluation. All observe
// methods are nil-receiver safe so services can run without metrics wired.
type Metrics struct {
	ScansTotal         prometheus.Counter
	ScanDuration       prometheus.Histogram
	RegulationsMatched prometheus.Histogram
	ComplianceScore    prometheus.Histogram
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
}

// New creates and registers all scan metrics.
func New() *Metrics {
	return &Metrics{
		ScansTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regscope_scans_total",
			Help: "Total number of compliance scans evaluated",
		}),
		ScanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "regscope_scan_duration_seconds",
			Help:    "Duration of full scan evaluation including persistence",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		RegulationsMatched: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "regscope_regulations_matched",
			Help:    "Number of regulations matched per scan",
			Buckets: []float64{0, 1, 2, 4, 6, 8, 10, 15, 20},
		}),
		ComplianceScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "regscope_compliance_score",
			Help:    "Compliance score distribution across scans",
			Buckets: []float64{0, 10, 25, 50, 75, 90, 100},
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regscope_scan_cache_hits_total",
			Help: "Evaluations served from the result cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regscope_scan_cache_misses_total",
			Help: "Evaluations computed because the cache had no entry",
		}),
	}
}

// ObserveScan records one completed scan.
func (m *Metrics) ObserveScan(matched, score int, d time.Duration) {
	if m != nil {
		m.ScansTotal.Inc()
		m.ScanDuration.Observe(d.Seconds())
		m.RegulationsMatched.Observe(float64(matched))
		m.ComplianceScore.Observe(float64(score))
	}
}

// IncrementCacheHit records a cache hit.
func (m *Metrics) IncrementCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// IncrementCacheMiss records a cache miss.
func (m *Metrics) IncrementCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

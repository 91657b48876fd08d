// Package metrics provides prometheus collectors for sync, adapters and feed composition.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metric names
const (
	MetricSyncRunsTotal      = "pryzm_sync_runs_total"
	MetricSyncDuration       = "pryzm_sync_duration_seconds"
	MetricItemsUpsertedTotal = "pryzm_items_upserted_total"
	MetricAdapterItemsTotal  = "pryzm_adapter_items_total"
	MetricFeedBuildsTotal    = "pryzm_feed_builds_total"
	MetricFeedBuildDuration  = "pryzm_feed_build_duration_seconds"
	MetricLiveItemsTotal     = "pryzm_live_items_total"
)

// status label values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusEmpty   = "empty"
)

// Metrics holds all collectors, safe for concurrent use
type Metrics struct {
	syncRuns      *prometheus.CounterVec
	syncDuration  prometheus.Histogram
	itemsUpserted prometheus.Counter
	adapterItems  *prometheus.CounterVec
	feedBuilds    *prometheus.CounterVec
	feedDuration  prometheus.Histogram
	liveItems     *prometheus.CounterVec
}

// New creates collectors, call Register to expose them
func New() *Metrics {
	return &Metrics{
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricSyncRunsTotal,
			Help: "Number of bulk sync runs by status",
		}, []string{"status"}),
		syncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricSyncDuration,
			Help:    "Bulk sync duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		itemsUpserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricItemsUpsertedTotal,
			Help: "Number of items written to the store",
		}),
		adapterItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricAdapterItemsTotal,
			Help: "Number of items returned by each adapter",
		}, []string{"adapter"}),
		feedBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricFeedBuildsTotal,
			Help: "Number of feed builds by status",
		}, []string{"status"}),
		feedDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricFeedBuildDuration,
			Help:    "Feed build duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		liveItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricLiveItemsTotal,
			Help: "Number of live fetched items by policy",
		}, []string{"policy"}),
	}
}

// Register registers all collectors with the registry
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.syncRuns, m.syncDuration, m.itemsUpserted, m.adapterItems,
		m.feedBuilds, m.feedDuration, m.liveItems}
}

// SyncDone records a finished sync run
func (m *Metrics) SyncDone(status string, d time.Duration, upserted int) {
	if m == nil {
		return
	}
	m.syncRuns.WithLabelValues(status).Inc()
	m.syncDuration.Observe(d.Seconds())
	m.itemsUpserted.Add(float64(upserted))
}

// AdapterItems records how many items an adapter returned
func (m *Metrics) AdapterItems(adapter string, n int) {
	if m == nil {
		return
	}
	m.adapterItems.WithLabelValues(adapter).Add(float64(n))
}

// LiveItems records live fetched items for a policy
func (m *Metrics) LiveItems(policy string, n int) {
	if m == nil {
		return
	}
	m.liveItems.WithLabelValues(policy).Add(float64(n))
}

// FeedBuilt records a finished feed build
func (m *Metrics) FeedBuilt(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.feedBuilds.WithLabelValues(status).Inc()
	m.feedDuration.Observe(d.Seconds())
}

package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "notionblog"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	cacheResults     *prom.CounterVec
	upstreamDuration *prom.HistogramVec
	partialFailures  *prom.CounterVec
	materialize      prom.Histogram
	treeBlocks       prom.Histogram
	unsupported      *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		cacheResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_results_total",
			Help:      "Cache lookups by cache name and outcome",
		}, []string{"cache", "result"}),
		upstreamDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_call_duration_seconds",
			Help:      "Duration of content API calls",
			Buckets:   prom.DefBuckets,
		}, []string{"op", "result"}),
		partialFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "partial_failures_total",
			Help:      "Items dropped or left unexpanded, by kind",
		}, []string{"kind"}),
		materialize: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "tree_materialize_duration_seconds",
			Help:      "Duration of full document tree materialization",
			Buckets:   prom.DefBuckets,
		}),
		treeBlocks: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "tree_blocks",
			Help:      "Blocks per materialized document tree",
			Buckets:   prom.ExponentialBuckets(8, 2, 8),
		}),
		unsupported: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "unsupported_blocks_total",
			Help:      "Blocks skipped by the renderer, by upstream type",
		}, []string{"type"}),
	}
	reg.MustRegister(pr.cacheResults, pr.upstreamDuration, pr.partialFailures, pr.materialize, pr.treeBlocks, pr.unsupported)
	return pr
}

func (p *PrometheusRecorder) IncCacheResult(cache string, hit bool) {
	if p == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheResults.WithLabelValues(cache, res).Inc()
}

func (p *PrometheusRecorder) ObserveUpstreamCall(op string, d time.Duration, success bool) {
	if p == nil {
		return
	}
	p.upstreamDuration.WithLabelValues(op, resultLabel(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPartialFailure(kind string) {
	if p == nil {
		return
	}
	p.partialFailures.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) ObserveMaterialize(d time.Duration, blocks int) {
	if p == nil {
		return
	}
	p.materialize.Observe(d.Seconds())
	p.treeBlocks.Observe(float64(blocks))
}

func (p *PrometheusRecorder) IncUnsupportedBlock(blockType string) {
	if p == nil {
		return
	}
	p.unsupported.WithLabelValues(blockType).Inc()
}

// HTTPHandler returns an http.Handler that serves Prometheus metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry            *prom.Registry
	stageDuration       *prom.HistogramVec
	buildDuration       prom.Histogram
	buildOutcome        *prom.CounterVec
	snippetResults      *prom.CounterVec
	documentConcurrency prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on the
// given registry (a fresh one when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "snipdoc",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "snipdoc",
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "snipdoc",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.snippetResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "snipdoc",
		Name:      "snippet_results_total",
		Help:      "Snippet validation results by language and status",
	}, []string{"language", "status"})
	pr.documentConcurrency = prom.NewGauge(prom.GaugeOpts{
		Namespace: "snipdoc",
		Name:      "document_concurrency",
		Help:      "Configured document pipeline concurrency for the last build",
	})
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.buildOutcome, pr.snippetResults, pr.documentConcurrency)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncSnippetResult(language, status string) {
	p.snippetResults.WithLabelValues(language, status).Inc()
}

func (p *PrometheusRecorder) SetDocumentConcurrency(n int) {
	p.documentConcurrency.Set(float64(n))
}

// Handler returns an http.Handler serving the recorder's registry, used by
// watch mode's --metrics-addr endpoint.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Package telemetry counts hook activity and optionally exposes the
// counters over HTTP for scraping.
package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters updated while processing build outputs.
// All observer methods are safe on a nil receiver so callers that run
// without telemetry pass nil and move on.
type Metrics struct {
	BuildsTotal       prometheus.Counter
	FilesTransformed  prometheus.Counter
	TransformFailures prometheus.Counter
	BytesWritten      prometheus.Counter
}

// New creates the counter set and registers it with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BuildsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "veil_builds_total",
			Help: "Build attempts seen by the post-build hook.",
		}),
		FilesTransformed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "veil_files_transformed_total",
			Help: "Output files rewritten by the hook.",
		}),
		TransformFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "veil_transform_failures_total",
			Help: "Transformation tasks that ended in an error.",
		}),
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "veil_bytes_written_total",
			Help: "Transformed bytes written back to output files.",
		}),
	}
	reg.MustRegister(m.BuildsTotal, m.FilesTransformed, m.TransformFailures, m.BytesWritten)
	return m
}

// ObserveBuild records one hook invocation.
func (m *Metrics) ObserveBuild() {
	if m != nil {
		m.BuildsTotal.Inc()
	}
}

// ObserveTransformed records one rewritten file and its size.
func (m *Metrics) ObserveTransformed(bytes int) {
	if m != nil {
		m.FilesTransformed.Inc()
		m.BytesWritten.Add(float64(bytes))
	}
}

// ObserveFailure records one failed transformation task.
func (m *Metrics) ObserveFailure() {
	if m != nil {
		m.TransformFailures.Inc()
	}
}

// Expose serves the default registry's /metrics endpoint on the given port.
func Expose(port int) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
	}()
}

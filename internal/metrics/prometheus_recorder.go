package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "search_index"

// PrometheusRecorder implements Recorder using Prometheus metrics on a private registry.
type PrometheusRecorder struct {
	registry      *prom.Registry
	entryResults  *prom.CounterVec
	buildDuration prom.Gauge
	records       prom.Gauge
	artifactBytes prom.Gauge
	lastSuccess   prom.Gauge
}

// NewPrometheusRecorder constructs a recorder and registers its metrics on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		entryResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "entries_total",
			Help:      "Catalog entries processed by outcome",
		}, []string{"status"}),
		buildDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of the last search index build",
		}),
		records: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records written to the search index artifact",
		}),
		artifactBytes: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "artifact_bytes",
			Help:      "Size of the search index artifact",
		}),
		lastSuccess: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the artifact was last written",
		}),
	}
	reg.MustRegister(pr.entryResults, pr.buildDuration, pr.records, pr.artifactBytes, pr.lastSuccess)
	return pr
}

func (p *PrometheusRecorder) IncEntryResult(status string) {
	p.entryResults.WithLabelValues(status).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Set(d.Seconds())
}

func (p *PrometheusRecorder) SetRecords(n int) {
	p.records.Set(float64(n))
}

// SetArtifactBytes also marks the build as successful, since it is only
// called once the artifact is on disk.
func (p *PrometheusRecorder) SetArtifactBytes(n int) {
	p.artifactBytes.Set(float64(n))
	p.lastSuccess.SetToCurrentTime()
}

// Registry exposes the underlying registry.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

// WriteTextfile writes all metrics in text exposition format to path,
// for pickup by the node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

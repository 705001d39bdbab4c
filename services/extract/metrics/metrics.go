// Package metrics collects in-process Prometheus metrics for the
// extraction pipeline and exposes them as text exposition output, rather
// than serving them over HTTP — no HTTP surface is in scope for this
// pipeline. Grounded on the teacher's PrometheusSink
// (services/code_buddy/eval/telemetry/prometheus.go): a custom registry,
// namespaced collector set, registered once at construction.
package metrics

import (
	"bytes"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/AleutianAI/blockextract/services/extract/block"
)

// Collector holds every metric the pipeline emits, registered against a
// private registry so a caller embedding this package never collides
// with the process-wide default registry.
type Collector struct {
	registry *prometheus.Registry

	documentsTotal   prometheus.Counter
	documentDuration prometheus.Histogram
	candidatesFound  *prometheus.CounterVec
	blocksAccepted   *prometheus.CounterVec
	blocksRejected   *prometheus.CounterVec
}

// New builds a Collector with all metrics registered.
func New() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		documentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockextract",
			Name:      "documents_total",
			Help:      "Total documents processed by the extraction pipeline.",
		}),
		documentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blockextract",
			Name:      "document_duration_seconds",
			Help:      "Wall-clock time to run the full pipeline over one document.",
			Buckets:   prometheus.DefBuckets,
		}),
		candidatesFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockextract",
			Name:      "candidates_found_total",
			Help:      "Segmenter candidates found, by detection method.",
		}, []string{"detection_method"}),
		blocksAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockextract",
			Name:      "blocks_accepted_total",
			Help:      "Blocks surviving the precision filter, by block type.",
		}, []string{"block_type"}),
		blocksRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockextract",
			Name:      "blocks_rejected_total",
			Help:      "Blocks rejected by the precision filter, by rule.",
		}, []string{"filtered_by"}),
	}

	reg.MustRegister(
		c.documentsTotal,
		c.documentDuration,
		c.candidatesFound,
		c.blocksAccepted,
		c.blocksRejected,
	)

	return c
}

// ObserveDocument records one full pipeline run.
func (c *Collector) ObserveDocument(duration time.Duration) {
	c.documentsTotal.Inc()
	c.documentDuration.Observe(duration.Seconds())
}

// ObserveCandidate records one candidate the Segmenter emitted.
func (c *Collector) ObserveCandidate(method block.DetectionMethod) {
	c.candidatesFound.WithLabelValues(string(method)).Inc()
}

// ObserveFilterResult records one Precision Filter verdict.
func (c *Collector) ObserveFilterResult(a block.AcceptedBlock) {
	if a.FilterPassed {
		c.blocksAccepted.WithLabelValues(string(a.BlockType)).Inc()
		return
	}
	c.blocksRejected.WithLabelValues(a.FilteredBy).Inc()
}

// Gather dumps every registered metric in Prometheus text exposition
// format, via prometheus/common/expfmt rather than starting an HTTP
// listener, since this pipeline has no HTTP surface.
func (c *Collector) Gather() (string, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := encoder.Encode(mf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// Package metrics exports generation metrics to Prometheus. The CLI is a
// short-lived process, so metrics are written to a node_exporter textfile
// rather than served.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRegistry returns a fresh Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// Result labels of a generation run.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// GenerationObserver records generation runs.
type GenerationObserver struct {
	runsTotal        *prometheus.CounterVec
	runDuration      prometheus.Histogram
	entrypointTime   prometheus.Histogram
	contractsTotal   prometheus.Counter
	entrypointsTotal prometheus.Counter
	filesTotal       *prometheus.CounterVec
}

// NewGenerationObserver registers generation metrics on the registry.
func NewGenerationObserver(reg *prometheus.Registry) *GenerationObserver {
	o := &GenerationObserver{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contractgen_runs_total",
			Help: "Generation runs by result.",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "contractgen_run_duration_seconds",
			Help:    "Wall time of a generation run including file output.",
			Buckets: prometheus.DefBuckets,
		}),
		entrypointTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "contractgen_entrypoint_duration_seconds",
			Help:    "Time spent generating the declarations of one entrypoint.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		contractsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contractgen_contracts_total",
			Help: "Contracts for which a client was generated.",
		}),
		entrypointsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contractgen_entrypoints_total",
			Help: "Entrypoints for which declarations were generated.",
		}),
		filesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contractgen_files_written_total",
			Help: "Files written by kind (ts, js, dts).",
		}, []string{"kind"}),
	}
	reg.MustRegister(
		o.runsTotal,
		o.runDuration,
		o.entrypointTime,
		o.contractsTotal,
		o.entrypointsTotal,
		o.filesTotal,
	)
	return o
}

// Run records a finished run.
func (o *GenerationObserver) Run(d time.Duration, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	o.runsTotal.WithLabelValues(result).Inc()
	o.runDuration.Observe(d.Seconds())
}

// Entrypoint records the time spent on one entrypoint.
func (o *GenerationObserver) Entrypoint(d time.Duration) {
	o.entrypointsTotal.Inc()
	o.entrypointTime.Observe(d.Seconds())
}

// Contracts adds n generated contract clients.
func (o *GenerationObserver) Contracts(n int) {
	o.contractsTotal.Add(float64(n))
}

// FileWritten records one written file of the given kind.
func (o *GenerationObserver) FileWritten(kind string) {
	o.filesTotal.WithLabelValues(kind).Inc()
}

// WriteTextfile writes every metric of reg in the text exposition format.
func WriteTextfile(reg *prometheus.Registry, path string) error {
	return prometheus.WriteToTextfile(path, reg)
}

package mwaxstats

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what a run produced. It has its own registry so a short-lived
// command can write it out as a node-exporter textfile when it finishes.
type Metrics struct {
	Registry       *prometheus.Registry
	recordsWritten *prometheus.CounterVec
	filesWritten   *prometheus.CounterVec
	channels       *prometheus.CounterVec
	packetsLost    prometheus.Counter
	inputsWithLoss prometheus.Gauge
	lastSuccess    prometheus.Gauge
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		recordsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mwaxstats",
			Name:      "records_written_total",
			Help:      "Records written to statistics files, by file kind.",
		}, []string{"kind"}),
		filesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mwaxstats",
			Name:      "files_written_total",
			Help:      "Statistics files written, by file kind.",
		}, []string{"kind"}),
		channels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mwaxstats",
			Name:      "channels_total",
			Help:      "Coarse channels processed, by result.",
		}, []string{"result"}),
		packetsLost: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mwaxstats",
			Name:      "packets_lost_total",
			Help:      "Packets lost over all RF inputs of the extracted subfiles.",
		}),
		inputsWithLoss: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mwaxstats",
			Name:      "inputs_with_loss",
			Help:      "RF inputs with at least one lost packet in the last subfile.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mwaxstats",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run in which every unit succeeded.",
		}),
	}
	m.Registry.MustRegister(m.recordsWritten, m.filesWritten, m.channels,
		m.packetsLost, m.inputsWithLoss, m.lastSuccess)
	return m
}

// FileWritten counts a produced file and its records.
func (m *Metrics) FileWritten(runID string, product *FileProduct) {
	m.filesWritten.WithLabelValues(product.Kind).Inc()
	m.recordsWritten.WithLabelValues(product.Kind).Add(float64(product.Records))
}

// ObserveRun counts channel outcomes of a visibility run.
func (m *Metrics) ObserveRun(summary *RunSummary) {
	ok := true
	for _, r := range summary.Results {
		if r.Err != nil {
			m.channels.WithLabelValues("failed").Inc()
			ok = false
		} else {
			m.channels.WithLabelValues("ok").Inc()
		}
	}
	if ok {
		m.lastSuccess.SetToCurrentTime()
	}
}

// ObservePacketLoss records the counters of one packet-loss extraction.
func (m *Metrics) ObservePacketLoss(counts []uint16) {
	var total float64
	withLoss := 0
	for _, c := range counts {
		total += float64(c)
		if c > 0 {
			withLoss++
		}
	}
	m.packetsLost.Add(total)
	m.inputsWithLoss.Set(float64(withLoss))
	m.lastSuccess.SetToCurrentTime()
}

// WriteTextfile writes the metrics in Prometheus text format to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

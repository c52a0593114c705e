package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// aggregateStatuses are the label values the status gauge is kept at 0 or 1 for.
var aggregateStatuses = []string{"others_busy", "others_failed", "others_succeeded"}

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	pollDuration    prom.Histogram
	polls           *prom.CounterVec
	jobs            *prom.GaugeVec
	waitDuration    prom.Gauge
	aggregateStatus *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers the leader's metrics on reg,
// or on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		pollDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "matrixleader",
			Name:      "poll_duration_seconds",
			Help:      "Duration of build matrix snapshot requests",
			Buckets:   prom.DefBuckets,
		}),
		polls: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "matrixleader",
			Name:      "polls_total",
			Help:      "Build matrix snapshots taken, by result",
		}, []string{"result"}),
		jobs: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "matrixleader",
			Name:      "matrix_jobs",
			Help:      "Matrix jobs in the last snapshot, by state",
		}, []string{"state"}),
		waitDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: "matrixleader",
			Name:      "wait_duration_seconds",
			Help:      "Time the leader spent waiting for its siblings",
		}),
		aggregateStatus: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "matrixleader",
			Name:      "aggregate_status",
			Help:      "Final aggregate status of the build matrix (1 for the reported status)",
		}, []string{"status"}),
	}
	reg.MustRegister(pr.pollDuration, pr.polls, pr.jobs, pr.waitDuration, pr.aggregateStatus)
	return pr
}

func (p *PrometheusRecorder) ObservePoll(d time.Duration, result PollResult) {
	p.pollDuration.Observe(d.Seconds())
	p.polls.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetJobs(state string, n int) {
	p.jobs.WithLabelValues(state).Set(float64(n))
}

func (p *PrometheusRecorder) ObserveWait(d time.Duration) {
	p.waitDuration.Set(d.Seconds())
}

func (p *PrometheusRecorder) SetAggregateStatus(status string) {
	for _, s := range aggregateStatuses {
		p.aggregateStatus.WithLabelValues(s).Set(0)
	}
	p.aggregateStatus.WithLabelValues(status).Set(1)
}

// WriteTextfile writes every registered metric to path in the text exposition
// format, for pickup by a node_exporter textfile collector or a later CI step.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

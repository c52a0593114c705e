package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherFamily(t *testing.T, reg *prom.Registry, name string) *dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric family %s not found", name)
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestPrometheusRecorder_Polls(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObservePoll(120*time.Millisecond, PollSuccess)
	pr.ObservePoll(80*time.Millisecond, PollSuccess)
	pr.ObservePoll(10*time.Millisecond, PollError)

	polls := gatherFamily(t, reg, "matrixleader_polls_total")
	counts := map[string]float64{}
	for _, m := range polls.GetMetric() {
		counts[labelValue(m, "result")] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"success": 2, "error": 1}, counts)

	hist := gatherFamily(t, reg, "matrixleader_poll_duration_seconds")
	require.Len(t, hist.GetMetric(), 1)
	assert.Equal(t, uint64(3), hist.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestPrometheusRecorder_AggregateStatusIsExclusive(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.SetAggregateStatus("others_busy")
	pr.SetAggregateStatus("others_failed")

	status := gatherFamily(t, reg, "matrixleader_aggregate_status")
	values := map[string]float64{}
	for _, m := range status.GetMetric() {
		values[labelValue(m, "status")] = m.GetGauge().GetValue()
	}
	assert.Equal(t, map[string]float64{
		"others_busy":      0,
		"others_failed":    1,
		"others_succeeded": 0,
	}, values)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetJobs(StatePending, 0)
	pr.SetJobs(StateFinished, 3)
	pr.ObserveWait(42 * time.Second)
	pr.SetAggregateStatus("others_succeeded")

	path := filepath.Join(t.TempDir(), "leader.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `matrixleader_matrix_jobs{state="finished"} 3`)
	assert.Contains(t, text, `matrixleader_wait_duration_seconds 42`)
	assert.Contains(t, text, `matrixleader_aggregate_status{status="others_succeeded"} 1`)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObservePoll(time.Second, PollSuccess)
	r.SetJobs(StatePending, 1)
	r.ObserveWait(time.Second)
	r.SetAggregateStatus("others_busy")
}

// Package metrics records what the leader observed while waiting. The default
// NoopRecorder keeps callers free of nil checks; PrometheusRecorder is used
// when a textfile destination is configured.
package metrics

import "time"

// PollResult labels the outcome of a single matrix snapshot.
type PollResult string

const (
	PollSuccess PollResult = "success"
	PollError   PollResult = "error"
)

// Job states reported through SetJobs.
const (
	StatePending      = "pending"
	StateFinished     = "finished"
	StateFailed       = "failed"
	StateAllowFailure = "allow_failure"
)

// Recorder defines the hooks the coordinator calls.
type Recorder interface {
	ObservePoll(d time.Duration, result PollResult)
	SetJobs(state string, n int)
	ObserveWait(d time.Duration)
	SetAggregateStatus(status string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePoll(time.Duration, PollResult) {}
func (NoopRecorder) SetJobs(string, int)                   {}
func (NoopRecorder) ObserveWait(time.Duration)             {}
func (NoopRecorder) SetAggregateStatus(string)             {}

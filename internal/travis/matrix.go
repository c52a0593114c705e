package travis

import (
	"fmt"
	"strings"
)

// AggregateStatus is the leader's classification of the whole matrix.
type AggregateStatus string

const (
	// StatusBusy means at least one sibling still needs waiting for.
	StatusBusy AggregateStatus = "others_busy"
	// StatusFailed means every sibling is done and at least one failed.
	StatusFailed AggregateStatus = "others_failed"
	// StatusSucceeded means every sibling is done and none failed.
	StatusSucceeded AggregateStatus = "others_succeeded"
)

// JobStatus is one matrix job as observed in a single snapshot.
type JobStatus struct {
	Number       string
	Finished     bool
	Result       *int // nil while the API reports null
	AllowFailure bool
	Leader       bool
}

// NeedsWaiting reports whether the leader must keep polling for this job.
func (j JobStatus) NeedsWaiting() bool {
	return !(j.Leader || j.Finished || j.AllowFailure)
}

// Settled reports whether the job has finished or is the leader itself.
// Unlike NeedsWaiting, an allowed failure still running is not settled.
func (j JobStatus) Settled() bool {
	return j.Leader || j.Finished
}

// IsFailure reports whether the job finished unsuccessfully and counts
// against the build. A finished job with a null result counts as failed.
func (j JobStatus) IsFailure() bool {
	if j.AllowFailure || !j.Finished {
		return false
	}
	return j.Result == nil || *j.Result != 0
}

func (j JobStatus) String() string {
	result := "null"
	if j.Result != nil {
		result = fmt.Sprint(*j.Result)
	}
	return fmt.Sprintf("JobStatus(%s,F=%t,R=%s,A=%t,L=%t)",
		j.Number, j.Finished, result, j.AllowFailure, j.Leader)
}

// Snapshot is a point-in-time read of every job in a build matrix.
type Snapshot []JobStatus

// NeedsWaiting reports whether any job still needs waiting for.
func (s Snapshot) NeedsWaiting() bool {
	for _, j := range s {
		if j.NeedsWaiting() {
			return true
		}
	}
	return false
}

// Settled reports whether every job has finished, apart from the leader.
// The polling loop runs until this holds.
func (s Snapshot) Settled() bool {
	for _, j := range s {
		if !j.Settled() {
			return false
		}
	}
	return true
}

// IsFailure reports whether any job is a failure.
func (s Snapshot) IsFailure() bool {
	for _, j := range s {
		if j.IsFailure() {
			return true
		}
	}
	return false
}

// Status resolves the aggregate status. Busy takes precedence over failed,
// failed over succeeded.
func (s Snapshot) Status() AggregateStatus {
	if s.NeedsWaiting() {
		return StatusBusy
	}
	if s.IsFailure() {
		return StatusFailed
	}
	return StatusSucceeded
}

// Counts tallies jobs by state.
type Counts struct {
	Total        int
	Pending      int
	Running      int
	Finished     int
	Failed       int
	AllowFailure int
}

// Counts returns per-state job tallies for display and metrics.
func (s Snapshot) Counts() Counts {
	c := Counts{Total: len(s)}
	for _, j := range s {
		if j.NeedsWaiting() {
			c.Pending++
		}
		if !j.Settled() {
			c.Running++
		}
		if j.Finished {
			c.Finished++
		}
		if j.IsFailure() {
			c.Failed++
		}
		if j.AllowFailure {
			c.AllowFailure++
		}
	}
	return c
}

func (s Snapshot) String() string {
	parts := make([]string, len(s))
	for i, j := range s {
		parts[i] = j.String()
	}
	return fmt.Sprintf("Snapshot(W=%t,F=%t,E=%s)", s.NeedsWaiting(), s.IsFailure(), strings.Join(parts, ","))
}

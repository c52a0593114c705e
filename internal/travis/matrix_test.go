package travis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestJobStatus_NeedsWaiting(t *testing.T) {
	tests := []struct {
		name string
		job  JobStatus
		want bool
	}{
		{"pending sibling", JobStatus{Number: "1.1"}, true},
		{"leader", JobStatus{Number: "1.1", Leader: true}, false},
		{"finished", JobStatus{Number: "1.1", Finished: true, Result: intPtr(0)}, false},
		{"allow failure", JobStatus{Number: "1.1", AllowFailure: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.NeedsWaiting())
		})
	}
}

func TestJobStatus_IsFailure(t *testing.T) {
	tests := []struct {
		name string
		job  JobStatus
		want bool
	}{
		{"finished with non-zero result", JobStatus{Finished: true, Result: intPtr(1)}, true},
		{"allowed to fail", JobStatus{Finished: true, Result: intPtr(1), AllowFailure: true}, false},
		{"unfinished ignores result", JobStatus{Finished: false, Result: intPtr(1)}, false},
		{"finished success", JobStatus{Finished: true, Result: intPtr(0)}, false},
		{"finished with null result", JobStatus{Finished: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.IsFailure())
		})
	}
}

func TestSnapshot_NeedsWaitingTransitions(t *testing.T) {
	snap := Snapshot{
		{Number: "7.1"},
		{Number: "7.2", Finished: true, Result: intPtr(0)},
		{Number: "7.3", Finished: true, Result: intPtr(0)},
	}
	assert.True(t, snap.NeedsWaiting())

	snap[0].Finished = true
	snap[0].Result = intPtr(0)
	assert.False(t, snap.NeedsWaiting())
}

func TestSnapshot_SettledWaitsForAllowedFailures(t *testing.T) {
	snap := Snapshot{
		{Number: "4.1", Leader: true},
		{Number: "4.2", Finished: true, Result: intPtr(0)},
		{Number: "4.3", AllowFailure: true},
	}
	assert.False(t, snap.NeedsWaiting())
	assert.False(t, snap.Settled())

	snap[2].Finished = true
	snap[2].Result = intPtr(1)
	assert.True(t, snap.Settled())
	assert.Equal(t, StatusSucceeded, snap.Status())
}

func TestSnapshot_StatusPriority(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want AggregateStatus
	}{
		{
			name: "busy beats failed",
			snap: Snapshot{
				{Number: "1.1"},
				{Number: "1.2", Finished: true, Result: intPtr(1)},
			},
			want: StatusBusy,
		},
		{
			name: "failed",
			snap: Snapshot{
				{Number: "1.1", Leader: true},
				{Number: "1.2", Finished: true, Result: intPtr(1)},
			},
			want: StatusFailed,
		},
		{
			name: "allowed failure still succeeds",
			snap: Snapshot{
				{Number: "1.1", Leader: true},
				{Number: "1.2", Finished: true, Result: intPtr(1), AllowFailure: true},
			},
			want: StatusSucceeded,
		},
		{
			name: "empty matrix succeeds",
			snap: Snapshot{},
			want: StatusSucceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.Status())
		})
	}
}

func TestSnapshot_Counts(t *testing.T) {
	snap := Snapshot{
		{Number: "3.1", Leader: true},
		{Number: "3.2"},
		{Number: "3.3", Finished: true, Result: intPtr(2)},
		{Number: "3.4", AllowFailure: true},
	}

	assert.Equal(t, Counts{Total: 4, Pending: 1, Running: 2, Finished: 1, Failed: 1, AllowFailure: 1}, snap.Counts())
}

func TestSnapshot_String(t *testing.T) {
	snap := Snapshot{
		{Number: "3.1", Leader: true},
		{Number: "3.2", Finished: true, Result: intPtr(0)},
	}

	assert.Equal(t,
		"Snapshot(W=false,F=false,E=JobStatus(3.1,F=false,R=null,A=false,L=true),JobStatus(3.2,F=true,R=0,A=false,L=false))",
		snap.String())
}

package travis

import (
	"context"
	"fmt"
	"time"

	"github.com/RevCBH/matrixleader/internal/logfields"
)

// PollEvent describes one snapshot attempt made by the polling loop.
type PollEvent struct {
	Poll     int // counts from 1
	Snapshot Snapshot
	Duration time.Duration
	Err      error
}

// Observer is called after every snapshot attempt, failed ones included.
type Observer func(PollEvent)

// WaitOptions controls WaitForMatrix.
type WaitOptions struct {
	BuildID         string
	LeaderJobNumber string
	PollInterval    time.Duration

	// MaxWait bounds the total wait. Zero waits forever and leaves hung
	// builds to the CI platform's own timeout.
	MaxWait time.Duration

	Observer Observer
}

// WaitForMatrix polls the build until every job other than the leader has
// finished, allowed failures included, and returns that snapshot. A failed
// snapshot ends the wait; nothing is retried beyond the regular polling
// cadence.
func (c *Client) WaitForMatrix(ctx context.Context, opts WaitOptions) (Snapshot, error) {
	start := time.Now()

	for poll := 1; ; poll++ {
		began := time.Now()
		snap, err := c.Snapshot(ctx, opts.BuildID, opts.LeaderJobNumber)
		if opts.Observer != nil {
			opts.Observer(PollEvent{Poll: poll, Snapshot: snap, Duration: time.Since(began), Err: err})
		}
		if err != nil {
			return nil, err
		}

		if snap.Settled() {
			return snap, nil
		}

		if opts.MaxWait > 0 && time.Since(start) >= opts.MaxWait {
			return snap, fmt.Errorf("%w after %s: %s", ErrWaitTimeout, opts.MaxWait, snap)
		}

		counts := snap.Counts()
		c.logger.Info("Leader waits for minions",
			logfields.Poll(poll),
			logfields.Pending(counts.Pending),
			logfields.Running(counts.Running),
			logfields.Failed(counts.Failed),
			logfields.Jobs(counts.Total),
			logfields.Snapshot(snap.String()),
		)

		interval := opts.PollInterval
		if opts.MaxWait > 0 {
			interval = min(interval, opts.MaxWait-time.Since(start))
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return snap, ctx.Err()
		case <-timer.C:
		}
	}
}

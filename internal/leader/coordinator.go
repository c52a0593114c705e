package leader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RevCBH/matrixleader/internal/config"
	"github.com/RevCBH/matrixleader/internal/logfields"
	"github.com/RevCBH/matrixleader/internal/metrics"
	"github.com/RevCBH/matrixleader/internal/travis"
)

// ErrMissingBuildID is returned when a leader has no build to poll.
var ErrMissingBuildID = errors.New("build id is not set (" + config.EnvBuildID + ")")

// MatrixAPI is the part of the CI client the coordinator needs.
type MatrixAPI interface {
	ExchangeToken(ctx context.Context, githubToken string) (string, error)
	SetToken(token string)
	Snapshot(ctx context.Context, buildID, leaderJobNumber string) (travis.Snapshot, error)
	WaitForMatrix(ctx context.Context, opts travis.WaitOptions) (travis.Snapshot, error)
}

// Outcome is what a coordinator run decided and, for a leader, observed.
type Outcome struct {
	Role   Role
	Status travis.AggregateStatus
	Final  travis.Snapshot
	Vars   []ExportVar
}

// Coordinator runs one job's part in leader election.
type Coordinator struct {
	cfg      *config.Config
	api      MatrixAPI
	recorder metrics.Recorder
	logger   *slog.Logger
	observer travis.Observer
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRecorder sets the metrics recorder. Defaults to metrics.NoopRecorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Coordinator) {
		c.recorder = r
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// WithObserver registers an extra callback for every poll the leader makes.
func WithObserver(o travis.Observer) Option {
	return func(c *Coordinator) {
		c.observer = o
	}
}

// NewCoordinator creates a coordinator for cfg backed by api.
func NewCoordinator(cfg *config.Config, api MatrixAPI, opts ...Option) *Coordinator {
	c := &Coordinator{
		cfg:      cfg,
		api:      api,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run elects this job's role. Minions return at once, whatever the state of
// settings only a leader uses. The leader validates those, exchanges
// its token, waits for the matrix to settle, takes a final snapshot and
// writes the export file. Sibling failures are reported through
// Outcome.Status, never as an error.
func (c *Coordinator) Run(ctx context.Context) (Outcome, error) {
	jobNumber := c.cfg.Job.Number

	role, err := Elect(jobNumber, c.cfg.MasterNumber, c.cfg.IsMaster)
	if err != nil {
		c.logger.Error("Don't use defining leader for build without matrix",
			logfields.Fatal(),
			logfields.JobNumber(jobNumber),
		)
		return Outcome{}, err
	}
	c.logger.Debug("Leader election",
		logfields.JobNumber(jobNumber),
		logfields.MasterNumber(c.cfg.MasterNumber),
		logfields.Leader(role == RoleLeader),
	)

	if role == RoleMinion {
		c.logger.Info("This is a minion", logfields.JobNumber(jobNumber))
		if err := c.cfg.ValidateLeader(); err != nil {
			c.logger.Debug("Ignoring leader settings", logfields.Error(err))
		}
		return Outcome{Role: RoleMinion}, nil
	}

	c.logger.Info("This is a leader",
		logfields.JobNumber(jobNumber),
		logfields.Entry(c.cfg.TravisEntry),
	)

	if err := c.cfg.ValidateLeader(); err != nil {
		return Outcome{Role: RoleLeader}, err
	}

	buildID := c.cfg.Job.BuildID
	if buildID == "" {
		return Outcome{Role: RoleLeader}, ErrMissingBuildID
	}

	token, err := c.api.ExchangeToken(ctx, c.cfg.Job.GitHubToken)
	if err != nil {
		return Outcome{Role: RoleLeader}, err
	}
	c.api.SetToken(token)

	maxWait, err := c.cfg.MaxWaitDuration()
	if err != nil {
		return Outcome{Role: RoleLeader}, fmt.Errorf("max wait: %w", err)
	}

	start := time.Now()
	_, err = c.api.WaitForMatrix(ctx, travis.WaitOptions{
		BuildID:         buildID,
		LeaderJobNumber: jobNumber,
		PollInterval:    c.cfg.PollInterval(),
		MaxWait:         maxWait,
		Observer:        c.observe,
	})
	c.recorder.ObserveWait(time.Since(start))
	if err != nil {
		return Outcome{Role: RoleLeader}, fmt.Errorf("wait for matrix: %w", err)
	}

	began := time.Now()
	final, err := c.api.Snapshot(ctx, buildID, jobNumber)
	c.recordPoll(time.Since(began), final, err)
	if err != nil {
		return Outcome{Role: RoleLeader}, fmt.Errorf("final snapshot: %w", err)
	}

	status := final.Status()
	c.recorder.SetAggregateStatus(string(status))
	c.logger.Info("Final results",
		logfields.Status(string(status)),
		logfields.Snapshot(final.String()),
	)

	vars := ReportVars(status)
	c.logger.Info("Exporting variables",
		slog.String("variables", FormatExport(vars)),
		logfields.Path(c.cfg.ExportFile),
	)
	if err := WriteExportFile(c.cfg.ExportFile, vars); err != nil {
		return Outcome{Role: RoleLeader, Status: status, Final: final}, err
	}

	return Outcome{Role: RoleLeader, Status: status, Final: final, Vars: vars}, nil
}

func (c *Coordinator) observe(ev travis.PollEvent) {
	c.recordPoll(ev.Duration, ev.Snapshot, ev.Err)
	if ev.Err != nil {
		c.logger.Error("Snapshot failed", logfields.Poll(ev.Poll), logfields.Error(ev.Err))
	}
	if c.observer != nil {
		c.observer(ev)
	}
}

func (c *Coordinator) recordPoll(d time.Duration, snap travis.Snapshot, err error) {
	if err != nil {
		c.recorder.ObservePoll(d, metrics.PollError)
		return
	}
	c.recorder.ObservePoll(d, metrics.PollSuccess)

	counts := snap.Counts()
	c.recorder.SetJobs(metrics.StatePending, counts.Running)
	c.recorder.SetJobs(metrics.StateFinished, counts.Finished)
	c.recorder.SetJobs(metrics.StateFailed, counts.Failed)
	c.recorder.SetJobs(metrics.StateAllowFailure, counts.AllowFailure)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for a leader election run.
// It is immutable after creation via Load().
type Config struct {
	// TravisEntry is the CI API base URL
	TravisEntry string `yaml:"travis_entry"`

	// IsMaster forces this job to act as leader
	IsMaster bool `yaml:"is_master"`

	// MasterNumber is the job ordinal (suffix after the last '.') that leads
	MasterNumber int `yaml:"master_number"`

	// Poll is the polling interval in seconds
	Poll int `yaml:"poll"`

	// MaxWait optionally bounds the leader's wait ("0" or "" = unbounded)
	MaxWait string `yaml:"max_wait"`

	// ExportFile receives the KEY=VALUE results
	ExportFile string `yaml:"export_file"`

	// MetricsFile, when set, receives a Prometheus textfile after the run
	MetricsFile string `yaml:"metrics_file"`

	// LogLevel controls log verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Job identifies the running CI job. Only ever read from the environment.
	Job JobConfig `yaml:"-"`

	// deferred holds file and environment values that could not be applied.
	// Only a leader reads the settings they affect, see ValidateLeader.
	deferred []error
}

// JobConfig is the per-job identity supplied by the CI environment.
type JobConfig struct {
	// Number is the job number, "<build>.<ordinal>" in a matrix build
	Number string

	// BuildID is the numeric build identifier used in API paths
	BuildID string

	// GitHubToken is exchanged for an API access token when set
	GitHubToken string
}

// PollInterval returns the polling interval as a Duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Poll) * time.Second
}

// MaxWaitDuration parses MaxWait. An empty value means unbounded (zero).
func (c *Config) MaxWaitDuration() (time.Duration, error) {
	if c.MaxWait == "" {
		return 0, nil
	}
	return time.ParseDuration(c.MaxWait)
}

// LoadOptions controls where Load reads configuration from.
type LoadOptions struct {
	// ConfigPath is an optional YAML file
	ConfigPath string

	// RequireConfig turns a missing ConfigPath into an error
	RequireConfig bool

	// EnvFile is an optional dotenv file consulted after the process environment
	EnvFile string

	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)

	// Overrides are applied after the file and before the environment,
	// typically explicitly set command-line flags.
	Overrides []func(*Config)
}

// Load builds the configuration. It applies defaults, then file values,
// then overrides, then environment overrides.
//
// Load fails only on problems that keep a job from deciding its role.
// Settings that only the leader uses are checked by ValidateLeader, so a
// minion is never held back by them.
func Load(opts LoadOptions) (*Config, error) {
	cfg := DefaultConfig()

	if opts.ConfigPath != "" {
		err := loadFile(cfg, opts.ConfigPath)
		switch {
		case err == nil:
		case opts.RequireConfig:
			return nil, err
		case errors.Is(err, fs.ErrNotExist):
			// missing optional config file: use defaults
		default:
			cfg.deferred = append(cfg.deferred, err)
		}
	}

	for _, override := range opts.Overrides {
		override(cfg)
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if opts.EnvFile != "" {
		fileEnv, err := godotenv.Read(opts.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("read env file: %w", err)
		}
		lookup = chainLookup(lookup, fileEnv)
	}

	if err := applyEnvOverrides(cfg, lookup); err != nil {
		cfg.deferred = append(cfg.deferred, fmt.Errorf("apply environment: %w", err))
	}

	if err := validateJob(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// ValidateLeader reports every problem with the settings a leader needs,
// including config file and environment values Load could not apply.
func (c *Config) ValidateLeader() error {
	errs := append([]error(nil), c.deferred...)
	if err := validateLeader(c); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validate config: %w", errors.Join(errs...))
}

// loadFile merges the YAML file at path into cfg. cfg is left untouched
// when the file cannot be parsed.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	parsed := *cfg
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	*cfg = parsed
	return nil
}

// chainLookup prefers the process environment and falls back to values read
// from an env file.
func chainLookup(primary func(string) (string, bool), fallback map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := primary(key); ok {
			return v, true
		}
		v, ok := fallback[key]
		return v, ok
	}
}

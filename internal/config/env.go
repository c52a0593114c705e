package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Environment variables read by the leader.
const (
	EnvJobNumber       = "TRAVIS_JOB_NUMBER"
	EnvBuildID         = "TRAVIS_BUILD_ID"
	EnvPollingInterval = "LEADER_POLLING_INTERVAL"
	EnvGitHubToken     = "GITHUB_TOKEN"
	EnvLogLevel        = "MATRIXLEADER_LOG_LEVEL"
)

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string) error
}{
	{
		envVar: EnvJobNumber,
		apply: func(c *Config, v string) error {
			c.Job.Number = v
			return nil
		},
	},
	{
		envVar: EnvBuildID,
		apply: func(c *Config, v string) error {
			c.Job.BuildID = v
			return nil
		},
	},
	{
		envVar: EnvGitHubToken,
		apply: func(c *Config, v string) error {
			c.Job.GitHubToken = v
			return nil
		},
	},
	{
		envVar: EnvPollingInterval,
		apply: func(c *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: not an integer number of seconds: %q", EnvPollingInterval, v)
			}
			c.Poll = n
			return nil
		},
	},
	{
		envVar: EnvLogLevel,
		apply: func(c *Config, v string) error {
			c.LogLevel = v
			return nil
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
// Empty values are ignored.
func applyEnvOverrides(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	for _, override := range envOverrides {
		val, ok := lookup(override.envVar)
		if !ok || val == "" {
			continue
		}
		if err := override.apply(cfg, val); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

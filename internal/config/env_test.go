package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestEnvOverrides_JobIdentity(t *testing.T) {
	cfg := DefaultConfig()
	err := applyEnvOverrides(cfg, mapLookup(map[string]string{
		EnvJobNumber:   "55.2",
		EnvBuildID:     "123456",
		EnvGitHubToken: "gh-secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "55.2", cfg.Job.Number)
	assert.Equal(t, "123456", cfg.Job.BuildID)
	assert.Equal(t, "gh-secret", cfg.Job.GitHubToken)
}

func TestEnvOverrides_PollingInterval(t *testing.T) {
	cfg := DefaultConfig()
	err := applyEnvOverrides(cfg, mapLookup(map[string]string{EnvPollingInterval: " 12 "}))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Poll)
}

func TestEnvOverrides_InvalidPollingInterval(t *testing.T) {
	cfg := DefaultConfig()
	err := applyEnvOverrides(cfg, mapLookup(map[string]string{EnvPollingInterval: "soon"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPollingInterval)
	assert.Equal(t, DefaultPoll, cfg.Poll)
}

func TestEnvOverrides_EmptyNoChange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Job.Number = "original"
	err := applyEnvOverrides(cfg, mapLookup(map[string]string{
		EnvJobNumber:       "",
		EnvPollingInterval: "",
		EnvLogLevel:        "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "original", cfg.Job.Number)
	assert.Equal(t, DefaultPoll, cfg.Poll)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

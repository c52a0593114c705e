package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidation_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"relative entry", func(c *Config) { c.TravisEntry = "api.travis-ci.org" }, "travis_entry"},
		{"ftp entry", func(c *Config) { c.TravisEntry = "ftp://api.travis-ci.org" }, "travis_entry"},
		{"zero poll", func(c *Config) { c.Poll = 0 }, "poll"},
		{"bad max wait", func(c *Config) { c.MaxWait = "forever" }, "max_wait"},
		{"negative max wait", func(c *Config) { c.MaxWait = "-5m" }, "max_wait"},
		{"empty export file", func(c *Config) { c.ExportFile = "" }, "export_file"},
		{"unknown log level", func(c *Config) { c.LogLevel = "INFO" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateLeader(cfg)
			if err == nil {
				t.Fatalf("expected validation error for %s", tt.field)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestValidation_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Poll = 0
	cfg.ExportFile = ""

	err := validateLeader(cfg)
	if err == nil {
		t.Fatal("expected errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "config.poll") || !strings.Contains(msg, "config.export_file") {
		t.Errorf("expected both poll and export_file errors, got: %v", msg)
	}
}

func TestValidation_JobStage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Poll = 0
	if err := validateJob(cfg); err != nil {
		t.Fatalf("leader-only settings must not fail the job stage: %v", err)
	}

	cfg.MasterNumber = -1
	err := validateJob(cfg)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "master_number" {
		t.Fatalf("expected master_number error, got %v", err)
	}
}

func TestValidation_MaxWaitValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxWait = "90m"
	if err := validateLeader(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

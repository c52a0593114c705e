package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// validateJob checks the settings every job needs to decide its role.
func validateJob(cfg *Config) error {
	if cfg.MasterNumber < 0 {
		return &ValidationError{
			Field:   "master_number",
			Value:   cfg.MasterNumber,
			Message: "must be non-negative",
		}
	}
	return nil
}

// validateLeader checks the settings only a leader uses.
// Returns nil if valid, or joined errors for all validation failures.
func validateLeader(cfg *Config) error {
	var errs []error

	// TravisEntry must be an absolute http(s) URL
	if u, err := url.Parse(cfg.TravisEntry); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, &ValidationError{
			Field:   "travis_entry",
			Value:   cfg.TravisEntry,
			Message: "must be an absolute http or https URL",
		})
	}

	if cfg.Poll < 1 {
		errs = append(errs, &ValidationError{
			Field:   "poll",
			Value:   cfg.Poll,
			Message: "must be at least 1 second",
		})
	}

	// MaxWait must be a valid, non-negative Go duration string when set
	if d, err := cfg.MaxWaitDuration(); err != nil {
		errs = append(errs, &ValidationError{
			Field:   "max_wait",
			Value:   cfg.MaxWait,
			Message: fmt.Sprintf("invalid duration: %v", err),
		})
	} else if d < 0 {
		errs = append(errs, &ValidationError{
			Field:   "max_wait",
			Value:   cfg.MaxWait,
			Message: "must not be negative",
		})
	}

	if cfg.ExportFile == "" {
		errs = append(errs, &ValidationError{
			Field:   "export_file",
			Value:   cfg.ExportFile,
			Message: "must not be empty",
		})
	}

	// LogLevel must be one of: debug, info, warn, error (case-sensitive)
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		errs = append(errs, &ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: "must be one of: debug, info, warn, error",
		})
	}

	return errors.Join(errs...)
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FailMode selects how the evaluator treats an image-metadata lookup failure.
type FailMode string

const (
	// FailClosed treats an unverifiable image as non-compliant. This is the
	// default: a false positive costs an instance; a false negative runs a
	// malicious image.
	FailClosed FailMode = "closed"

	// FailOpen treats an unverifiable image as compliant. Only for
	// deployments with strict availability requirements.
	FailOpen FailMode = "open"
)

// Config is the full runtime configuration. It is read once per cold start;
// nothing in it changes between invocations.
type Config struct {
	// LogLevel is the logrus level name ("debug", "info", ...). Default "info".
	LogLevel string

	// DryRun disables the mutating remediation calls. Suspension and
	// termination are logged and reported as succeeded; findings note the
	// dry run. Default false.
	DryRun bool

	// LookupFailMode controls fail-open/fail-closed on image lookup failure,
	// including lookup timeouts. Default FailClosed.
	LookupFailMode FailMode

	// Concurrency bounds parallel per-record processing within one batch.
	// Default 4.
	Concurrency int

	// TrustedOwners, when non-empty, additionally requires every launch AMI
	// to be owned by one of these account ids.
	TrustedOwners []string

	// FindingsBucket, when set, enables archiving each submitted finding as
	// JSON to this S3 bucket.
	FindingsBucket string

	// MetricsEnabled turns on CloudWatch batch-summary metrics.
	MetricsEnabled bool
}

// Loader is the interface for reading Config.
// The default implementation reads AMIGUARD_* environment variables.
type Loader interface {
	Load() (*Config, error)
}

// EnvLoader reads configuration from the process environment.
type EnvLoader struct{}

// Load implements Loader. Unset variables fall back to safe defaults;
// malformed values are errors rather than silent defaults.
func (EnvLoader) Load() (*Config, error) {
	cfg := &Config{
		LogLevel:       "info",
		LookupFailMode: FailClosed,
		Concurrency:    4,
	}

	if v := os.Getenv("AMIGUARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("AMIGUARD_DRY_RUN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse AMIGUARD_DRY_RUN %q: %w", v, err)
		}
		cfg.DryRun = b
	}

	if v := os.Getenv("AMIGUARD_LOOKUP_FAIL_MODE"); v != "" {
		switch FailMode(strings.ToLower(v)) {
		case FailClosed:
			cfg.LookupFailMode = FailClosed
		case FailOpen:
			cfg.LookupFailMode = FailOpen
		default:
			return nil, fmt.Errorf("invalid AMIGUARD_LOOKUP_FAIL_MODE %q: want %q or %q", v, FailClosed, FailOpen)
		}
	}

	if v := os.Getenv("AMIGUARD_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid AMIGUARD_CONCURRENCY %q: want a positive integer", v)
		}
		cfg.Concurrency = n
	}

	if v := os.Getenv("AMIGUARD_TRUSTED_OWNERS"); v != "" {
		for _, owner := range strings.Split(v, ",") {
			if owner = strings.TrimSpace(owner); owner != "" {
				cfg.TrustedOwners = append(cfg.TrustedOwners, owner)
			}
		}
	}

	cfg.FindingsBucket = os.Getenv("AMIGUARD_FINDINGS_BUCKET")

	if v := os.Getenv("AMIGUARD_METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse AMIGUARD_METRICS_ENABLED %q: %w", v, err)
		}
		cfg.MetricsEnabled = b
	}

	return cfg, nil
}

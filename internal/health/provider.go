// Package health reports the liveness status of the running process.
package health

import (
	"fmt"
	"os"
	"time"

	"github.com/benvon/healthz-api/internal/models"
	"github.com/benvon/healthz-api/internal/version"
)

// processStart approximates the process start time.
var processStart = time.Now()

// VersionEnvVar overrides the reported version when set.
const VersionEnvVar = "APP_VERSION"

// StatusError is an error whose message is safe to return to clients.
type StatusError struct {
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StatusError) Unwrap() error { return e.Err }

// StatusProvider produces the current health status.
type StatusProvider interface {
	Status() (models.HealthStatus, error)
}

// VersionSource returns the version to report.
type VersionSource func() (string, error)

// EnvVersion reads the version from the environment variable key, falling back to the
// build version.
func EnvVersion(key string) VersionSource {
	return func() (string, error) {
		if v := os.Getenv(key); v != "" {
			return v, nil
		}
		return version.Resolve(), nil
	}
}

// StaticVersion always reports v.
func StaticVersion(v string) VersionSource {
	return func() (string, error) { return v, nil }
}

// Provider computes HealthStatus from the clock, start time and a version source.
type Provider struct {
	started time.Time
	now     func() time.Time
	version VersionSource
}

// Option configures a Provider
type Option func(*Provider)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithStartTime sets the instant uptime is measured from
func WithStartTime(t time.Time) Option {
	return func(p *Provider) { p.started = t }
}

// WithVersionSource replaces the default APP_VERSION lookup
func WithVersionSource(src VersionSource) Option {
	return func(p *Provider) { p.version = src }
}

// NewProvider creates a provider measuring uptime from process start.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		started: processStart,
		now:     time.Now,
		version: EnvVersion(VersionEnvVar),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Status returns a fresh healthy status.
func (p *Provider) Status() (models.HealthStatus, error) {
	now := p.now()

	v, err := p.version()
	if err != nil {
		return models.HealthStatus{}, &StatusError{Message: "version lookup failed", Err: err}
	}
	if v == "" {
		v = version.Default
	}

	uptime := now.Sub(p.started).Seconds()
	if uptime < 0 {
		uptime = 0
	}

	return models.HealthStatus{
		Status:    models.HealthStateHealthy,
		Timestamp: models.FormatTimestamp(now),
		Uptime:    uptime,
		Version:   v,
	}, nil
}

// SafeStatus calls provider.Status and converts a panic into an error.
func SafeStatus(provider StatusProvider) (status models.HealthStatus, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("status provider panicked: %v", r)
		}
	}()
	return provider.Status()
}

package models

import "time"

// HealthState is the overall state reported by a health check
type HealthState string

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateUnhealthy HealthState = "unhealthy"
)

// TimestampFormat is ISO-8601 in UTC with millisecond precision, e.g. 2024-05-01T12:00:00.000Z
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampFormat
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// HealthStatus describes the running process. Built fresh for every request.
type HealthStatus struct {
	Status    HealthState `json:"status"`
	Timestamp string      `json:"timestamp"`
	Uptime    float64     `json:"uptime"`
	Version   string      `json:"version,omitempty"`
}

// HealthFailure is the payload returned when the status could not be computed
type HealthFailure struct {
	Status    HealthState `json:"status"`
	Timestamp string      `json:"timestamp"`
	Error     string      `json:"error"`
}

// ReadinessStatus reports the state of the service's backing dependencies
type ReadinessStatus struct {
	Status    HealthState       `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

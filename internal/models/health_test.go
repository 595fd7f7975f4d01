package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 5, 1, 14, 0, 0, 123456789, loc)

	got := FormatTimestamp(ts)
	if got != "2024-05-01T12:00:00.123Z" {
		t.Errorf("FormatTimestamp() = %q, want 2024-05-01T12:00:00.123Z", got)
	}

	parsed, err := time.Parse(time.RFC3339, got)
	if err != nil {
		t.Fatalf("timestamp %q is not RFC3339: %v", got, err)
	}
	if !parsed.Equal(ts.Truncate(time.Millisecond)) {
		t.Errorf("parsed %v, want %v", parsed, ts.Truncate(time.Millisecond))
	}
}

func TestHealthStatus_ZeroUptimeIsEncoded(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(HealthStatus{Status: HealthStateHealthy, Timestamp: "t"})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if !strings.Contains(string(data), `"uptime":0`) {
		t.Errorf("Expected uptime to be present, got %s", data)
	}
	if strings.Contains(string(data), "version") {
		t.Errorf("Expected empty version to be omitted, got %s", data)
	}
}

func TestHealthFailure_HasNoUptime(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(HealthFailure{Status: HealthStateUnhealthy, Timestamp: "t", Error: "boom"})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if _, ok := body["uptime"]; ok {
		t.Error("Expected no uptime in failure payload")
	}
	if body["error"] != "boom" {
		t.Errorf("Expected error 'boom', got %v", body["error"])
	}
}

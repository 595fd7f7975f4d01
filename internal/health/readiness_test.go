package health

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/benvon/healthz-api/internal/models"
)

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping called without deadline")
	}
	return f.err
}

func TestReadinessChecker_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		db         Pinger
		redis      Pinger
		wantStatus models.HealthState
		wantChecks map[string]string
	}{
		{
			name:       "no dependencies configured",
			wantStatus: models.HealthStateHealthy,
			wantChecks: map[string]string{},
		},
		{
			name:       "all healthy",
			db:         fakePinger{},
			redis:      fakePinger{},
			wantStatus: models.HealthStateHealthy,
			wantChecks: map[string]string{"database": "healthy", "redis": "healthy"},
		},
		{
			name:       "database down",
			db:         fakePinger{err: errors.New("connection refused")},
			redis:      fakePinger{},
			wantStatus: models.HealthStateUnhealthy,
			wantChecks: map[string]string{"database": "unhealthy: connection refused", "redis": "healthy"},
		},
		{
			name:       "only redis configured",
			redis:      fakePinger{err: errors.New("timeout")},
			wantStatus: models.HealthStateUnhealthy,
			wantChecks: map[string]string{"redis": "unhealthy: timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewReadinessChecker(tt.db, tt.redis).Check(context.Background())
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", got.Status, tt.wantStatus)
			}
			if len(got.Checks) != len(tt.wantChecks) {
				t.Fatalf("Checks = %v, want %v", got.Checks, tt.wantChecks)
			}
			for k, v := range tt.wantChecks {
				if got.Checks[k] != v {
					t.Errorf("Checks[%s] = %q, want %q", k, got.Checks[k], v)
				}
			}
			if !strings.HasSuffix(got.Timestamp, "Z") {
				t.Errorf("Expected UTC timestamp, got %q", got.Timestamp)
			}
		})
	}
}

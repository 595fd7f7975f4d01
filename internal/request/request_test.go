package request

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		wantIP  string
	}{
		{"x-forwarded-for", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "", "1.2.3.4"},
		{"x-forwarded-for first", map[string]string{"X-Forwarded-For": " 1.2.3.4 , 5.6.7.8 "}, "", "1.2.3.4"},
		{"x-real-ip", map[string]string{"X-Real-IP": "9.9.9.9"}, "", "9.9.9.9"},
		{"remote addr", nil, "10.0.0.1:12345", "10.0.0.1"},
		{"remote addr without port", nil, "10.0.0.2", "10.0.0.2"},
		{"xff over xri", map[string]string{"X-Forwarded-For": "1.2.3.4", "X-Real-IP": "9.9.9.9"}, "", "1.2.3.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if tt.remote != "" {
				r.RemoteAddr = tt.remote
			}
			got := ClientIP(r)
			if got != tt.wantIP {
				t.Errorf("ClientIP() = %q, want %q", got, tt.wantIP)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()
	ctx := WithRequestID(context.Background(), "abc-123")
	r := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	if got := RequestID(r); got != "abc-123" {
		t.Errorf("RequestID() = %q, want abc-123", got)
	}
}

func TestRequestID_Missing(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest("GET", "/", nil)
	if got := RequestID(r); got != "" {
		t.Errorf("RequestID() = %q, want empty", got)
	}
}

func TestRequestID_WrongType(t *testing.T) {
	t.Parallel()
	ctx := context.WithValue(context.Background(), requestIDContextKey, 42)
	r := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	if got := RequestID(r); got != "" {
		t.Errorf("RequestID() = %q, want empty", got)
	}
}

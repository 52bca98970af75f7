package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health", "", nil)
	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadinessHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]DependencyCheck
		wantStatus int
		wantBody   string
	}{
		{"no dependencies", nil, http.StatusOK, "ok"},
		{"all healthy", map[string]DependencyCheck{"mongo": ok, "redis": ok}, http.StatusOK, "ok"},
		{"nil check skipped", map[string]DependencyCheck{"mongo": ok, "redis": nil}, http.StatusOK, "ok"},
		{"one down", map[string]DependencyCheck{"mongo": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/health/ready", "", nil)
			if err := NewReadinessHandler(tt.checks).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp readinessResponse
			decodeBody(t, rec, &resp)
			if resp.Status != tt.wantBody {
				t.Fatalf("expected %q, got %q", tt.wantBody, resp.Status)
			}
			if _, listed := resp.Dependencies["redis"]; listed && tt.checks["redis"] == nil {
				t.Fatalf("nil check must not be reported: %+v", resp.Dependencies)
			}
		})
	}
}

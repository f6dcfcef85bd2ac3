package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/lostfound/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func serveHealth(t *testing.T, checks httpx.HealthChecks) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr, resp
}

func TestHealthHandler(t *testing.T) {
	down := &stubChecker{err: errors.New("conn refused")}
	up := &stubChecker{}

	tests := []struct {
		name       string
		checks     httpx.HealthChecks
		wantStatus int
		wantFields map[string]string
	}{
		{
			name:       "all healthy",
			checks:     httpx.HealthChecks{Database: up, Redis: up, EventBus: up, Media: up},
			wantStatus: http.StatusOK,
			wantFields: map[string]string{"status": "ok", "media": "ok"},
		},
		{
			name:       "media disabled",
			checks:     httpx.HealthChecks{Database: up, Redis: up, EventBus: up},
			wantStatus: http.StatusOK,
			wantFields: map[string]string{"status": "ok", "media": "disabled"},
		},
		{
			name:       "database down",
			checks:     httpx.HealthChecks{Database: down, Redis: up, EventBus: up},
			wantStatus: http.StatusServiceUnavailable,
			wantFields: map[string]string{"status": "degraded", "database": "unreachable"},
		},
		{
			name:       "redis down",
			checks:     httpx.HealthChecks{Database: up, Redis: down, EventBus: up},
			wantStatus: http.StatusServiceUnavailable,
			wantFields: map[string]string{"status": "degraded", "redis": "unreachable"},
		},
		{
			name:       "event bus down",
			checks:     httpx.HealthChecks{Database: up, Redis: up, EventBus: down},
			wantStatus: http.StatusServiceUnavailable,
			wantFields: map[string]string{"status": "degraded", "event_bus": "unreachable"},
		},
		{
			name:       "media down",
			checks:     httpx.HealthChecks{Database: up, Redis: up, EventBus: up, Media: down},
			wantStatus: http.StatusServiceUnavailable,
			wantFields: map[string]string{"status": "degraded", "media": "unreachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, resp := serveHealth(t, tt.checks)
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
			for k, v := range tt.wantFields {
				if resp[k] != v {
					t.Errorf("%s: got %q, want %q", k, resp[k], v)
				}
			}
		})
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	rr, _ := serveHealth(t, httpx.HealthChecks{
		Database: &stubChecker{},
		Redis:    &stubChecker{},
		EventBus: &stubChecker{},
	})

	ct := rr.Header().Get("Content-Type")
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
	}
}

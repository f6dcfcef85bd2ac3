package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/otel"

	"github.com/ghuser/lostfound/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:     "test-service",
		ServiceVersion:  "test",
		Environment:     "testing",
		MediaBackend:    config.MediaBackendLocal,
		OtelEndpoint:    "", // disabled
		OtelSampleRatio: 1,
	}
}

func TestSetup_NoOtelEndpoint(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected non-nil shutdown")
	}
	if handler == nil {
		t.Fatal("expected non-nil metrics handler")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_MetricsHandlerServesPrometheusFormat(t *testing.T) {
	_, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	ct := rr.Header().Get("Content-Type")
	if !strings.Contains(ct, "text/plain") {
		t.Errorf("expected text/plain content-type, got %q", ct)
	}
}

func TestSetup_InstallsTraceContextPropagator(t *testing.T) {
	shutdown, _, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer shutdown(context.Background()) //nolint:errcheck

	if !slices.Contains(otel.GetTextMapPropagator().Fields(), "traceparent") {
		t.Fatalf("traceparent not propagated: %v", otel.GetTextMapPropagator().Fields())
	}
}

func TestSetupSentry_NoDSNIsNoop(t *testing.T) {
	if err := SetupSentry(baseConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScrubEvent_RemovesCredentials(t *testing.T) {
	event := &sentry.Event{Request: &sentry.Request{
		Cookies: "lostfound_session=abc",
		Headers: map[string]string{
			"Authorization": "Bearer secret",
			"Cookie":        "lostfound_session=abc",
			"User-Agent":    "curl/8",
		},
	}}

	got := scrubEvent(event, nil)

	if got.Request.Cookies != "" {
		t.Errorf("cookies kept: %q", got.Request.Cookies)
	}
	for _, h := range []string{"Authorization", "Cookie"} {
		if _, ok := got.Request.Headers[h]; ok {
			t.Errorf("%s header kept", h)
		}
	}
	if got.Request.Headers["User-Agent"] != "curl/8" {
		t.Errorf("unrelated header dropped: %v", got.Request.Headers)
	}
}

func TestScrubEvent_NoRequest(t *testing.T) {
	event := &sentry.Event{Message: "boom"}
	if got := scrubEvent(event, nil); got != event {
		t.Fatal("expected event to pass through")
	}
}

func TestCaptureError_WithoutHubIsNoop(t *testing.T) {
	// Must not panic when SentryMiddleware was never installed.
	CaptureError(httptest.NewRequest(http.MethodGet, "/api/items", http.NoBody), context.Canceled)
}

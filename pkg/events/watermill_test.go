package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/lostfound/pkg/config"
	"github.com/ghuser/lostfound/pkg/logger"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

type samplePayload struct {
	TicketNumber string `json:"ticket_number"`
}

func TestNewMessage_PayloadAndMetadata(t *testing.T) {
	msg, err := NewMessage(context.Background(), samplePayload{TicketNumber: "LST-123456-007"})
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}

	var got samplePayload
	if err := json.Unmarshal(msg.Payload, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got.TicketNumber != "LST-123456-007" {
		t.Errorf("unexpected payload: %+v", got)
	}
	if msg.Metadata.Get("event_id") != msg.UUID {
		t.Errorf("event_id metadata %q does not match message UUID %q", msg.Metadata.Get("event_id"), msg.UUID)
	}
	if msg.Metadata.Get("event_version") != schemaVersion {
		t.Errorf("event_version: got %q", msg.Metadata.Get("event_version"))
	}
}

func TestNewMessage_UnmarshalablePayload(t *testing.T) {
	_, err := NewMessage(context.Background(), make(chan int))
	if err == nil {
		t.Fatal("expected marshal error")
	}
}

// TestNewMessage_InjectsTraceContext verifies the publishing span can be
// restored from message metadata by a consumer.
func TestNewMessage_InjectsTraceContext(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	ctx, span := otel.Tracer("test").Start(context.Background(), "publish-span")
	defer span.End()
	wantTraceID := span.SpanContext().TraceID()

	msg, err := NewMessage(ctx, samplePayload{})
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}

	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	msgCtx := otel.GetTextMapPropagator().Extract(context.Background(), carrier)

	gotSpan := trace.SpanFromContext(msgCtx)
	if !gotSpan.SpanContext().IsValid() {
		t.Fatal("extracted span context is not valid")
	}
	if gotSpan.SpanContext().TraceID() != wantTraceID {
		t.Errorf("trace ID mismatch: want %s, got %s", wantTraceID, gotSpan.SpanContext().TraceID())
	}
}

func TestFieldsToArgs(t *testing.T) {
	args := fieldsToArgs(watermill.LogFields{"topic": "item.reported"})
	if len(args) != 2 || args[0] != "topic" || args[1] != "item.reported" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestSlogAdapter_With(t *testing.T) {
	a := &slogAdapter{log: logger.Discard()}
	child := a.With(watermill.LogFields{"k": "v"})
	if child == nil {
		t.Fatal("expected non-nil child adapter")
	}
	child.Error("publish failed", errors.New("boom"), nil)
}

// Integration tests: skipped unless DATABASE_URL is set.
// The SQL transport takes the standard library handles directly.
var (
	_ watermillsql.Beginner        = (*sql.DB)(nil)
	_ watermillsql.ContextExecutor = (*sql.Tx)(nil)
)

func TestNewTxPublisher_BindsStdTx(t *testing.T) {
	bus := &EventBus{log: logger.Discard()}
	pub, err := bus.NewTxPublisher(&sql.Tx{})
	if err != nil {
		t.Fatalf("NewTxPublisher: %v", err)
	}
	if pub == nil {
		t.Fatal("expected publisher")
	}
}

func TestEventBusIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	cfg := &config.Config{DatabaseURL: url, ServiceName: "lostfound-test"}
	bus, err := NewEventBus(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("NewEventBus: %v", err)
	}
	defer bus.Close() //nolint:errcheck

	ctx := context.Background()
	if err := bus.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	const topic = "test.events_integration"
	if err := bus.EnsureTopics(topic); err != nil {
		t.Fatalf("EnsureTopics: %v", err)
	}

	tx, err := bus.db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := bus.PublishTx(ctx, tx, topic, samplePayload{TicketNumber: "FND-000001-001"}); err != nil {
		_ = tx.Rollback()
		t.Fatalf("PublishTx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
}

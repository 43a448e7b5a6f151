package tracing

import (
	"context"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServiceName != "deskfit-mcp-server" {
		t.Errorf("expected service name 'deskfit-mcp-server', got %q", cfg.ServiceName)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %v", cfg.SampleRate)
	}
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected no-op shutdown function")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("no-op shutdown returned error: %v", err)
	}
}

func TestSetup_StdoutExporter(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{
		ServiceName:    "test",
		ServiceVersion: "0.0.1",
		Enabled:        true,
		SampleRate:     0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		_ = shutdown(context.Background())
	}()

	ctx, span := StartSpan(context.Background(), "test-span")
	if ctx == nil {
		t.Error("expected context from StartSpan")
	}
	AddToolAttributes(span, "get_weather", "weather")
	AddUpstreamAttributes(span, "open_meteo", "forecast")
	RecordError(span, nil)
	span.End()
}

func TestTracer(t *testing.T) {
	if Tracer() == nil {
		t.Error("expected tracer")
	}
}

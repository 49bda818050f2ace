package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := stringFields("provider", "  gemini  ", "model", "   ", "dangling")

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "provider" || fields[0].String != "gemini" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}
}

func TestWithHelpers(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	WithCommonFields(base, "openai", "MiniMax-M2.5-highspeed").Info("generation")
	WithEvaluationFields(base, "coaching", " ").Info("evaluation state")
	WithRequestID(base, "req-1").Info("http request")

	entries := observed.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldProvider] != "openai" || ctx[FieldModel] != "MiniMax-M2.5-highspeed" {
		t.Fatalf("unexpected backend fields: %+v", ctx)
	}

	ctx = entries[1].ContextMap()
	if ctx[FieldVariant] != "coaching" {
		t.Fatalf("unexpected variant: %+v", ctx)
	}
	if _, ok := ctx[FieldPath]; ok {
		t.Fatalf("expected blank path to be omitted, got %+v", ctx)
	}

	if entries[2].ContextMap()[FieldRequestID] != "req-1" {
		t.Fatalf("unexpected request id: %+v", entries[2].ContextMap())
	}
}

func TestWithNilLogger(t *testing.T) {
	// Logging through the fallback must not panic.
	WithCommonFields(nil, "gemini", "gemini-2.5-pro").Info("fallback")
	With(nil).Info("fallback")
}

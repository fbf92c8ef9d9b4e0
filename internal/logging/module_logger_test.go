package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-langneg/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "langneg.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger = WithFields(logger, map[string]any{"foo": "bar"})
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := NegotiationLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != negotiationModule {
		t.Fatalf("expected module %s, got %v", negotiationModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != negotiationModule {
		t.Fatalf("expected module field %s, got %v", negotiationModule, got)
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestLikelyLoggerRequestsLikelyModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = LikelyLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != likelyModule {
		t.Fatalf("expected likely module request, got %v", provider.requested)
	}
}

func TestWithNegotiationContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	_ = WithNegotiationContext(rec, " lookup ", "")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldStrategy] != "lookup" {
		t.Fatalf("expected strategy field, got %v", rec.fields[0])
	}
	if _, ok := rec.fields[0][fieldDefaultLocale]; ok {
		t.Fatalf("expected empty default locale to be skipped, got %v", rec.fields[0])
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "a"})
	ctx = ContextWithFields(ctx, map[string]any{"request_id": "b", "tenant": "acme"})

	fields := ContextFields(ctx)
	if fields["request_id"] != "b" || fields["tenant"] != "acme" {
		t.Fatalf("unexpected merged fields: %v", fields)
	}

	fields["tenant"] = "mutated"
	if ContextFields(ctx)["tenant"] != "acme" {
		t.Fatal("expected ContextFields to return a copy")
	}
}

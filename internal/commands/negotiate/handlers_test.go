package negotiatecmd

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/goliatone/go-langneg/internal/commands"
	"github.com/goliatone/go-langneg/internal/commands/fixtures"
	"github.com/goliatone/go-langneg/internal/langtag"
	"github.com/goliatone/go-langneg/internal/likely"
	"github.com/goliatone/go-langneg/internal/logging/console"
	"github.com/goliatone/go-langneg/internal/negotiation"
)

type stubNegotiator struct {
	calls    int
	strategy negotiation.Strategy
	result   []string
}

func (s *stubNegotiator) Negotiate(requested, available []string, defaultLocale string, strategy negotiation.Strategy) []string {
	s.calls++
	s.strategy = strategy
	return s.result
}

func newEngine(t *testing.T) *negotiation.Engine[langtag.Tag] {
	t.Helper()
	maximizer, err := likely.NewDefaultStatic()
	if err != nil {
		t.Fatalf("load likely subtags: %v", err)
	}
	return negotiation.NewEngine[langtag.Tag](langtag.Matcher{}, maximizer)
}

func TestNegotiateHandlerRunsEngine(t *testing.T) {
	var results []Result
	handler := NewNegotiateHandler(newEngine(t), nil, HandlerConfig{
		DefaultStrategy: negotiation.Filtering,
		Sink: func(_ context.Context, _ NegotiateLocalesCommand, result Result) {
			results = append(results, result)
		},
	})

	cases := []struct {
		strategy string
		want     []string
	}{
		{strategy: "", want: []string{"fr", "en-US"}},
		{strategy: "lookup", want: []string{"fr"}},
	}
	for _, tc := range cases {
		err := handler.Execute(context.Background(), NegotiateLocalesCommand{
			Requested: []string{"fr", "en-US"},
			Available: []string{"en-US", "fr"},
			Default:   "en-US",
			Strategy:  tc.strategy,
		})
		if err != nil {
			t.Fatalf("execute %q: %v", tc.strategy, err)
		}
		got := results[len(results)-1]
		if !reflect.DeepEqual(got.Supported, tc.want) {
			t.Fatalf("strategy %q: expected %v, got %v", tc.strategy, tc.want, got.Supported)
		}
	}
	if results[0].Strategy != "filtering" || results[1].Strategy != "lookup" {
		t.Fatalf("unexpected strategies recorded: %+v", results)
	}
}

func TestNegotiateHandlerUsesDefaultStrategy(t *testing.T) {
	stub := &stubNegotiator{result: []string{"de"}}
	handler := NewNegotiateHandler(stub, nil, HandlerConfig{DefaultStrategy: negotiation.Matching})

	if err := handler.Execute(context.Background(), NegotiateLocalesCommand{Requested: []string{"de"}}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stub.calls != 1 || stub.strategy != negotiation.Matching {
		t.Fatalf("expected one matching call, got calls=%d strategy=%v", stub.calls, stub.strategy)
	}
}

func TestNegotiateHandlerRejectsUnknownStrategy(t *testing.T) {
	stub := &stubNegotiator{}
	handler := NewNegotiateHandler(stub, nil, HandlerConfig{})

	err := handler.Execute(context.Background(), NegotiateLocalesCommand{Strategy: "fuzzy"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatal("expected negotiator not to be called")
	}
	if fields := commands.FieldErrors(err); fields["strategy"] == "" {
		t.Fatalf("expected strategy field error, got %v", fields)
	}
}

func TestNegotiateHandlerRejectsInvalidDefaultStrategy(t *testing.T) {
	stub := &stubNegotiator{}
	handler := NewNegotiateHandler(stub, nil, HandlerConfig{DefaultStrategy: negotiation.Strategy(9)})

	err := handler.Execute(context.Background(), NegotiateLocalesCommand{Requested: []string{"fr"}})
	if code := commands.TextCode(err); code != commands.TextCodeStrategyInvalid {
		t.Fatalf("expected %s, got %q (%v)", commands.TextCodeStrategyInvalid, code, err)
	}
	if !errors.Is(err, negotiation.ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatal("expected negotiator not to be called")
	}
}

func TestNegotiateHandlerRejectsOversizedTags(t *testing.T) {
	long := make([]byte, maxTagLength+1)
	for i := range long {
		long[i] = 'a'
	}
	handler := NewNegotiateHandler(&stubNegotiator{}, nil, HandlerConfig{})
	err := handler.Execute(context.Background(), NegotiateLocalesCommand{Requested: []string{"fr", string(long)}})
	if err == nil {
		t.Fatal("expected oversized tag to fail validation")
	}
	if fields := commands.FieldErrors(err); fields["requested.1"] == "" {
		t.Fatalf("expected requested.1 field error, got %v", fields)
	}
}

func TestNegotiateHandlerNilNegotiator(t *testing.T) {
	handler := NewNegotiateHandler(nil, nil, HandlerConfig{})
	err := handler.Execute(context.Background(), NegotiateLocalesCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if code := commands.TextCode(err); code != commands.TextCodeNegotiatorMissing {
		t.Fatalf("expected %s, got %q", commands.TextCodeNegotiatorMissing, code)
	}
	if !errors.Is(err, ErrNegotiatorRequired) {
		t.Fatalf("expected ErrNegotiatorRequired, got %v", err)
	}
}

func TestNegotiateHandlerLogsExecutionFields(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})
	stub := &stubNegotiator{result: []string{"fr"}}

	handler, err := RegisterNegotiateCommands(nil, stub, provider, HandlerConfig{})
	if err != nil {
		t.Fatalf("register negotiate commands: %v", err)
	}
	if err := handler.Execute(context.Background(), NegotiateLocalesCommand{Requested: []string{"fr"}}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var line string
	for _, entry := range strings.Split(buf.String(), "\n") {
		if strings.Contains(entry, " negotiate.command.completed ") {
			line = entry
		}
	}
	if line == "" {
		t.Fatalf("expected completion entry, got %q", buf.String())
	}
	for _, want := range []string{
		"module=langneg.commands.negotiate",
		"command=langneg.negotiate",
		"operation=negotiate.locales",
		"requested=fr",
		"supported_count=1",
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}

func TestNegotiateHandlerCancelledContext(t *testing.T) {
	stub := &stubNegotiator{}
	handler := NewNegotiateHandler(stub, nil, HandlerConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := handler.Execute(ctx, NegotiateLocalesCommand{}); err == nil {
		t.Fatal("expected cancellation error")
	}
	if stub.calls != 0 {
		t.Fatal("expected negotiator not to be called")
	}
}

func TestNegotiateHandlerRecordsSupportedOnSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	stub := &stubNegotiator{result: []string{"fr", "en-US"}}
	handler := NewNegotiateHandler(stub, nil, HandlerConfig{},
		commands.WithTracerProvider[NegotiateLocalesCommand](provider),
	)
	if err := handler.Execute(context.Background(), NegotiateLocalesCommand{Requested: []string{"fr"}}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	if spans[0].Name() != negotiateMessageType {
		t.Fatalf("unexpected span name %q", spans[0].Name())
	}
	var supported []string
	for _, attr := range spans[0].Attributes() {
		if attr.Key == "langneg.supported" {
			supported = attr.Value.AsStringSlice()
		}
	}
	if !reflect.DeepEqual(supported, []string{"fr", "en-US"}) {
		t.Fatalf("expected supported attribute, got %v", spans[0].Attributes())
	}
}

func TestRegisterNegotiateCommandsRegistersHandler(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()
	applied := false

	handler, err := RegisterNegotiateCommands(reg, &stubNegotiator{}, nil, HandlerConfig{},
		WithHandlerOptions(func(h *commands.Handler[NegotiateLocalesCommand]) {
			applied = true
		}),
	)
	if err != nil {
		t.Fatalf("register negotiate commands: %v", err)
	}
	if len(reg.Handlers) != 1 || reg.Handlers[0] != handler {
		t.Fatalf("expected handler registered, got %#v", reg.Handlers)
	}
	if !applied {
		t.Fatal("expected handler options applied")
	}
}

func TestRegisterNegotiateCommandsErrors(t *testing.T) {
	if _, err := RegisterNegotiateCommands(nil, nil, nil, HandlerConfig{}); err == nil {
		t.Fatal("expected error for nil negotiator")
	}

	reg := fixtures.NewRecordingRegistry()
	reg.Err = errors.New("registry closed")
	if _, err := RegisterNegotiateCommands(reg, &stubNegotiator{}, nil, HandlerConfig{}); !errors.Is(err, reg.Err) {
		t.Fatalf("expected registry error, got %v", err)
	}
}

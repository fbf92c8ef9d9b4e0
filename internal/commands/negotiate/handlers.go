package negotiatecmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-langneg/internal/commands"
	"github.com/goliatone/go-langneg/internal/logging"
	"github.com/goliatone/go-langneg/internal/negotiation"
	"github.com/goliatone/go-langneg/pkg/interfaces"
)

const negotiateOperation = "negotiate.locales"

// ErrNegotiatorRequired is returned when no negotiator is supplied.
var ErrNegotiatorRequired = errors.New("negotiate command: negotiator is nil")

var _ command.Commander[NegotiateLocalesCommand] = (*NegotiateHandler)(nil)

// Negotiator is the engine surface the handler depends on.
type Negotiator interface {
	Negotiate(requested, available []string, defaultLocale string, strategy negotiation.Strategy) []string
}

// Result is what a successful execution produced.
type Result struct {
	Supported []string `json:"supported"`
	Strategy  string   `json:"strategy"`
	Default   string   `json:"default,omitempty"`
}

// ResultSink receives the result of every successful execution.
type ResultSink func(ctx context.Context, msg NegotiateLocalesCommand, result Result)

// HandlerConfig carries the handler defaults.
type HandlerConfig struct {
	// DefaultStrategy applies when a command leaves Strategy empty.
	DefaultStrategy negotiation.Strategy
	Sink            ResultSink
}

// NegotiateHandler runs locale negotiation through the shared command handler.
type NegotiateHandler struct {
	inner *commands.Handler[NegotiateLocalesCommand]
}

// NewNegotiateHandler creates a handler bound to negotiator.
func NewNegotiateHandler(negotiator Negotiator, logger interfaces.Logger, cfg HandlerConfig, opts ...commands.HandlerOption[NegotiateLocalesCommand]) *NegotiateHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg NegotiateLocalesCommand) error {
		if negotiator == nil {
			return commands.ExecutionError(ErrNegotiatorRequired, commands.TextCodeNegotiatorMissing, "negotiate command not wired")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		strategy := cfg.DefaultStrategy
		if msg.Strategy != "" {
			parsed, err := negotiation.ParseStrategy(msg.Strategy)
			if err != nil {
				return commands.InvalidInputError(err, commands.TextCodeStrategyInvalid, "negotiate strategy invalid")
			}
			strategy = parsed
		}
		if !strategy.Valid() {
			return commands.InvalidInputError(
				fmt.Errorf("%w: %s", negotiation.ErrUnknownStrategy, strategy),
				commands.TextCodeStrategyInvalid,
				"negotiate strategy invalid",
			)
		}

		supported := negotiator.Negotiate(msg.Requested, msg.Available, msg.Default, strategy)

		trace.SpanFromContext(ctx).SetAttributes(
			attribute.String("langneg.strategy", strategy.String()),
			attribute.StringSlice("langneg.supported", supported),
		)
		logging.WithFields(baseLogger.WithContext(ctx), map[string]any{
			"strategy":        strategy.String(),
			"requested_count": len(msg.Requested),
			"available_count": len(msg.Available),
			"supported_count": len(supported),
		}).Info("negotiate.command.completed")

		if cfg.Sink != nil {
			cfg.Sink(ctx, msg, Result{
				Supported: supported,
				Strategy:  strategy.String(),
				Default:   msg.Default,
			})
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[NegotiateLocalesCommand]{
		commands.WithLogger[NegotiateLocalesCommand](baseLogger),
		commands.WithOperation[NegotiateLocalesCommand](negotiateOperation),
		commands.WithMessageFields[NegotiateLocalesCommand](func(msg NegotiateLocalesCommand) map[string]any {
			fields := map[string]any{
				"requested": msg.Requested,
			}
			if msg.Strategy != "" {
				fields["strategy"] = msg.Strategy
			}
			if msg.Default != "" {
				fields["default_locale"] = msg.Default
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[NegotiateLocalesCommand](nil)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &NegotiateHandler{
		inner: commands.NewHandler[NegotiateLocalesCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[NegotiateLocalesCommand].
func (h *NegotiateHandler) Execute(ctx context.Context, msg NegotiateLocalesCommand) error {
	return h.inner.Execute(ctx, msg)
}

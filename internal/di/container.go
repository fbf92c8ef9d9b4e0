package di

import (
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-langneg/internal/commands"
	negotiatecmd "github.com/goliatone/go-langneg/internal/commands/negotiate"
	"github.com/goliatone/go-langneg/internal/langtag"
	"github.com/goliatone/go-langneg/internal/likely"
	"github.com/goliatone/go-langneg/internal/logging"
	"github.com/goliatone/go-langneg/internal/logging/console"
	"github.com/goliatone/go-langneg/internal/logging/gologger"
	"github.com/goliatone/go-langneg/internal/negotiation"
	"github.com/goliatone/go-langneg/internal/runtimeconfig"
	"github.com/goliatone/go-langneg/pkg/interfaces"
)

// Container wires the negotiation engine, its maximizer and the command layer
// from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	tracerProvider trace.TracerProvider
	maximizer      interfaces.Maximizer
	registry       negotiatecmd.CommandRegistry
	resultSink     negotiatecmd.ResultSink

	strategy         negotiation.Strategy
	engine           *negotiation.Engine[langtag.Tag]
	negotiateHandler *negotiatecmd.NegotiateHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithTracerProvider sets the provider used for command spans. It takes
// precedence over the global provider selected by Features.Tracing.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.tracerProvider = provider
		}
	}
}

// WithMaximizer replaces the maximizer built from Config.Maximizer.
func WithMaximizer(maximizer interfaces.Maximizer) Option {
	return func(c *Container) {
		if maximizer != nil {
			c.maximizer = maximizer
		}
	}
}

// WithCommandRegistry registers the negotiate handler with reg during construction.
func WithCommandRegistry(reg negotiatecmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithResultSink receives the outcome of every negotiate command.
func WithResultSink(sink negotiatecmd.ResultSink) Option {
	return func(c *Container) {
		c.resultSink = sink
	}
}

// NewContainer validates cfg and builds every component it describes.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strategy, err := cfg.ParsedStrategy()
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		strategy: strategy,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureMaximizer(); err != nil {
		return nil, err
	}

	c.engine = negotiation.NewEngine[langtag.Tag](
		langtag.Matcher{},
		c.maximizer,
		negotiation.WithLogger[langtag.Tag](logging.NegotiationLogger(c.loggerProvider)),
	)

	if err := c.configureCommands(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureMaximizer() error {
	if c.maximizer != nil {
		return nil
	}
	maximizer, err := likely.FromProviders(
		c.Config.Maximizer.Providers,
		c.Config.Maximizer.Overrides,
		logging.LikelyLogger(c.loggerProvider),
	)
	if err != nil {
		return err
	}
	c.maximizer = maximizer
	return nil
}

func (c *Container) configureCommands() error {
	tracer := c.tracerProvider
	if tracer == nil && c.Config.Features.Tracing {
		tracer = otel.GetTracerProvider()
	}

	handlerOpts := []commands.HandlerOption[negotiatecmd.NegotiateLocalesCommand]{
		commands.WithTimeout[negotiatecmd.NegotiateLocalesCommand](c.Config.Commands.Timeout),
	}
	if tracer != nil {
		handlerOpts = append(handlerOpts, commands.WithTracerProvider[negotiatecmd.NegotiateLocalesCommand](tracer))
	}

	handler, err := negotiatecmd.RegisterNegotiateCommands(
		c.registry,
		c.engine,
		c.loggerProvider,
		negotiatecmd.HandlerConfig{
			DefaultStrategy: c.strategy,
			Sink:            c.resultSink,
		},
		negotiatecmd.WithHandlerOptions(handlerOpts...),
	)
	if err != nil {
		return err
	}
	c.negotiateHandler = handler
	return nil
}

// LoggerProvider returns the configured provider, nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Maximizer returns the likely-subtags maximizer in use.
func (c *Container) Maximizer() interfaces.Maximizer {
	return c.maximizer
}

// Engine returns the negotiation engine.
func (c *Container) Engine() *negotiation.Engine[langtag.Tag] {
	return c.engine
}

// Strategy returns the configured default strategy.
func (c *Container) Strategy() negotiation.Strategy {
	return c.strategy
}

// NegotiateHandler returns the command handler bound to the engine.
func (c *Container) NegotiateHandler() *negotiatecmd.NegotiateHandler {
	return c.negotiateHandler
}

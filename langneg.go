// Package langneg negotiates which of an application's available locales best
// serve an ordered list of requested locales.
package langneg

import (
	"context"
	"sync"

	negotiatecmd "github.com/goliatone/go-langneg/internal/commands/negotiate"
	"github.com/goliatone/go-langneg/internal/di"
	"github.com/goliatone/go-langneg/internal/langtag"
	"github.com/goliatone/go-langneg/internal/likely"
	"github.com/goliatone/go-langneg/internal/negotiation"
)

// Strategy selects how many available locales a negotiation returns.
type Strategy = negotiation.Strategy

const (
	// Filtering returns every available locale matching any requested locale.
	Filtering = negotiation.Filtering
	// Matching returns the best available locale for each requested locale.
	Matching = negotiation.Matching
	// Lookup returns the single best available locale.
	Lookup = negotiation.Lookup
)

// Tier identifies which fallback step produced a match.
type Tier = negotiation.Tier

// Match is one negotiated locale together with the requested tag and tier
// that selected it.
type Match = negotiation.Match

// NegotiateCommand is the command message executed by NegotiateHandler.
type NegotiateCommand = negotiatecmd.NegotiateLocalesCommand

// NegotiateResult is delivered to result sinks after a negotiate command.
type NegotiateResult = negotiatecmd.Result

// ErrUnknownStrategy is returned by ParseStrategy for unrecognised names.
var ErrUnknownStrategy = negotiation.ErrUnknownStrategy

// ParseStrategy resolves "filtering", "matching" or "lookup", ignoring case.
func ParseStrategy(name string) (Strategy, error) {
	return negotiation.ParseStrategy(name)
}

// Option customises the module wiring.
type Option = di.Option

var (
	// WithLoggerProvider overrides the provider derived from Config.Logging.
	WithLoggerProvider = di.WithLoggerProvider
	// WithTracerProvider sets the OpenTelemetry provider for command spans.
	WithTracerProvider = di.WithTracerProvider
	// WithMaximizer replaces the maximizer built from Config.Maximizer.
	WithMaximizer = di.WithMaximizer
	// WithCommandRegistry registers the negotiate handler with a command registry.
	WithCommandRegistry = di.WithCommandRegistry
	// WithResultSink receives the outcome of every negotiate command.
	WithResultSink = di.WithResultSink
)

// Module is the configured negotiation runtime.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg and optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Negotiate returns the locales from available that support requested, in
// priority order, with defaultLocale appended according to strategy.
func (m *Module) Negotiate(requested, available []string, defaultLocale string, strategy Strategy) []string {
	return m.container.Engine().Negotiate(requested, available, defaultLocale, strategy)
}

// Explain is Negotiate with the requested tag and tier of each result.
func (m *Module) Explain(requested, available []string, defaultLocale string, strategy Strategy) []Match {
	return m.container.Engine().Explain(requested, available, defaultLocale, strategy)
}

// Resolve negotiates requested against the configured locales, default
// locale and strategy.
func (m *Module) Resolve(requested []string) []string {
	cfg := m.container.Config
	return m.Negotiate(requested, cfg.Locales, cfg.DefaultLocale, m.container.Strategy())
}

// Execute runs msg through the negotiate command handler.
func (m *Module) Execute(ctx context.Context, msg NegotiateCommand) error {
	return m.container.NegotiateHandler().Execute(ctx, msg)
}

// NegotiateHandler returns the command handler bound to the module engine.
func (m *Module) NegotiateHandler() *negotiatecmd.NegotiateHandler {
	return m.container.NegotiateHandler()
}

var defaultEngine = sync.OnceValue(func() *negotiation.Engine[langtag.Tag] {
	return negotiation.NewEngine[langtag.Tag](langtag.Matcher{}, likely.NewCLDR())
})

// NegotiateLanguages negotiates with CLDR likely subtags and no logging. An
// empty defaultLocale means no default is appended.
func NegotiateLanguages(requested, available []string, defaultLocale string, strategy Strategy) []string {
	return defaultEngine().Negotiate(requested, available, defaultLocale, strategy)
}

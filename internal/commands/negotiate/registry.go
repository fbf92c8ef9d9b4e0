package negotiatecmd

import (
	"errors"

	"github.com/goliatone/go-langneg/internal/commands"
	"github.com/goliatone/go-langneg/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	handlerOpts []commands.HandlerOption[NegotiateLocalesCommand]
}

// WithHandlerOptions forwards options to the NegotiateHandler constructor.
func WithHandlerOptions(opts ...commands.HandlerOption[NegotiateLocalesCommand]) Option {
	return func(cfg *options) {
		cfg.handlerOpts = append(cfg.handlerOpts, opts...)
	}
}

// RegisterNegotiateCommands builds the negotiate handler and registers it with reg when
// reg is non-nil. The handler is returned so callers can execute it directly.
func RegisterNegotiateCommands(reg CommandRegistry, negotiator Negotiator, provider interfaces.LoggerProvider, cfg HandlerConfig, opts ...Option) (*NegotiateHandler, error) {
	if negotiator == nil {
		return nil, errors.New("negotiate command registration: negotiator is nil")
	}

	wiring := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&wiring)
		}
	}

	logger := commands.CommandLogger(provider, "negotiate")
	handler := NewNegotiateHandler(negotiator, logger, cfg, wiring.handlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}

package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-langneg/pkg/interfaces"
)

const (
	rootModule        = "langneg"
	negotiationModule = "langneg.negotiation"
	likelyModule      = "langneg.likely"
)

const (
	fieldStrategy      = "strategy"
	fieldDefaultLocale = "default_locale"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// NegotiationLogger returns the logger namespace used by the negotiation engine.
func NegotiationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, negotiationModule)
}

// LikelyLogger returns the logger namespace used by likely-subtags providers.
func LikelyLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, likelyModule)
}

// WithNegotiationContext adds the strategy and default locale of a
// negotiation run. Empty values are skipped.
func WithNegotiationContext(logger interfaces.Logger, strategy, defaultLocale string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(strategy); trimmed != "" {
		fields[fieldStrategy] = trimmed
	}
	if trimmed := strings.TrimSpace(defaultLocale); trimmed != "" {
		fields[fieldDefaultLocale] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-langneg/internal/langtag"
	"github.com/goliatone/go-langneg/internal/likely"
	"github.com/goliatone/go-langneg/internal/negotiation"
)

var (
	ErrStrategyInvalid          = errors.New("langneg config: strategy is invalid")
	ErrDefaultLocaleInvalid     = errors.New("langneg config: default locale is not a valid tag")
	ErrLocaleInvalid            = errors.New("langneg config: available locale is not a valid tag")
	ErrMaximizerProviderUnknown = errors.New("langneg config: maximizer provider is invalid")
	ErrMaximizerOverrideInvalid = errors.New("langneg config: maximizer override is invalid")
	ErrCommandTimeoutInvalid    = errors.New("langneg config: command timeout must be zero or positive")
	ErrLoggingProviderRequired  = errors.New("langneg config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("langneg config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("langneg config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("langneg config: logging format is invalid")
)

// Config aggregates the negotiation defaults and runtime toggles.
// Fields use simple types so it can be filled from flags, env or files.
type Config struct {
	DefaultLocale string          `env:"DEFAULT_LOCALE"`
	Locales       []string        `env:"LOCALES" envSeparator:","`
	Strategy      string          `env:"STRATEGY"`
	Maximizer     MaximizerConfig `envPrefix:"MAXIMIZER_"`
	Commands      CommandsConfig  `envPrefix:"COMMAND_"`
	Features      Features
	Logging       LoggingConfig `envPrefix:"LOG_"`
}

// MaximizerConfig selects likely-subtags providers. Overrides are consulted
// before any provider.
type MaximizerConfig struct {
	Providers []string          `env:"PROVIDERS" envSeparator:","`
	Overrides map[string]string `env:"OVERRIDES" envSeparator:"," envKeyValSeparator:":"`
}

// CommandsConfig captures command-layer behaviour.
type CommandsConfig struct {
	Timeout time.Duration `env:"TIMEOUT"`
}

// Features toggles optional runtime behaviour.
type Features struct {
	Logger  bool `env:"LOGGER"`
	Tracing bool `env:"TRACING"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `env:"PROVIDER"`
	Level     string   `env:"LEVEL"`
	Format    string   `env:"FORMAT"`
	AddSource bool     `env:"ADD_SOURCE"`
	Focus     []string `env:"FOCUS" envSeparator:","`
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en-US",
		Locales:       []string{"en-US"},
		Strategy:      negotiation.Filtering.String(),
		Maximizer: MaximizerConfig{
			Providers: []string{likely.ProviderCLDR},
			Overrides: map[string]string{},
		},
		Commands: CommandsConfig{
			Timeout: 5 * time.Second,
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// ParsedStrategy returns the configured strategy, defaulting to filtering
// when unset.
func (cfg Config) ParsedStrategy() (negotiation.Strategy, error) {
	if strings.TrimSpace(cfg.Strategy) == "" {
		return negotiation.Filtering, nil
	}
	strategy, err := negotiation.ParseStrategy(cfg.Strategy)
	if err != nil {
		return negotiation.Filtering, fmt.Errorf("%w: %s", ErrStrategyInvalid, cfg.Strategy)
	}
	return strategy, nil
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if _, err := cfg.ParsedStrategy(); err != nil {
		return err
	}
	if locale := strings.TrimSpace(cfg.DefaultLocale); locale != "" {
		if _, err := langtag.Parse(locale); err != nil {
			return fmt.Errorf("%w: %s", ErrDefaultLocaleInvalid, locale)
		}
	}
	for _, locale := range cfg.Locales {
		if _, err := langtag.Parse(locale); err != nil {
			return fmt.Errorf("%w: %q", ErrLocaleInvalid, locale)
		}
	}
	for _, provider := range cfg.Maximizer.Providers {
		if strings.TrimSpace(provider) == "" {
			continue
		}
		if !likely.IsSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrMaximizerProviderUnknown, provider)
		}
	}
	for key, value := range cfg.Maximizer.Overrides {
		if _, err := langtag.Parse(value); err != nil || strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: %s=%s", ErrMaximizerOverrideInvalid, key, value)
		}
	}
	if cfg.Commands.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrCommandTimeoutInvalid, cfg.Commands.Timeout)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

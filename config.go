package langneg

import "github.com/goliatone/go-langneg/internal/runtimeconfig"

// Configuration errors reported by New and Config.Validate.
var (
	ErrStrategyInvalid          = runtimeconfig.ErrStrategyInvalid
	ErrDefaultLocaleInvalid     = runtimeconfig.ErrDefaultLocaleInvalid
	ErrLocaleInvalid            = runtimeconfig.ErrLocaleInvalid
	ErrMaximizerProviderUnknown = runtimeconfig.ErrMaximizerProviderUnknown
	ErrMaximizerOverrideInvalid = runtimeconfig.ErrMaximizerOverrideInvalid
	ErrCommandTimeoutInvalid    = runtimeconfig.ErrCommandTimeoutInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

// Configuration types accepted by New.
type (
	Config          = runtimeconfig.Config
	MaximizerConfig = runtimeconfig.MaximizerConfig
	CommandsConfig  = runtimeconfig.CommandsConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
)

// DefaultConfig returns filtering negotiation over en-US with CLDR likely
// subtags and logging disabled.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv overlays LANGNEG_* environment variables on DefaultConfig.
func ConfigFromEnv() (Config, error) {
	return runtimeconfig.FromEnv()
}

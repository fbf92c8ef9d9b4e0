package runtimeconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every variable read by FromEnv.
const EnvPrefix = "LANGNEG_"

// FromEnv overlays LANGNEG_* environment variables on DefaultConfig.
func FromEnv() (Config, error) {
	return FromEnvironment(nil)
}

// FromEnvironment is FromEnv reading from the supplied map instead of the
// process environment when environ is non-nil.
func FromEnvironment(environ map[string]string) (Config, error) {
	cfg := DefaultConfig()
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

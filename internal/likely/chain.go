package likely

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-langneg/internal/logging"
	"github.com/goliatone/go-langneg/pkg/interfaces"
)

const (
	ProviderCLDR   = "cldr"
	ProviderStatic = "static"
)

// ErrUnknownProvider is returned for provider names FromProviders does not know.
var ErrUnknownProvider = errors.New("likely: unknown maximizer provider")

// Chain asks each maximizer in order and returns the first hit.
type Chain []interfaces.Maximizer

var _ interfaces.Maximizer = Chain(nil)

func (c Chain) Maximize(tag string) (string, bool) {
	for _, m := range c {
		if m == nil {
			continue
		}
		if out, ok := m.Maximize(tag); ok {
			return out, true
		}
	}
	return "", false
}

// IsSupportedProvider reports whether name is a known provider.
func IsSupportedProvider(name string) bool {
	switch normalizeProvider(name) {
	case ProviderCLDR, ProviderStatic:
		return true
	default:
		return false
	}
}

// FromProviders builds the maximizer described by configuration. Overrides,
// when present, are consulted before any provider. An empty provider list
// falls back to CLDR.
func FromProviders(names []string, overrides map[string]string, logger interfaces.Logger) (interfaces.Maximizer, error) {
	if logger == nil {
		logger = logging.NoOp()
	}

	chain := Chain{}
	if len(overrides) > 0 {
		chain = append(chain, NewStatic(overrides))
	}

	resolved := make([]string, 0, len(names))
	for _, name := range names {
		name = normalizeProvider(name)
		if name == "" {
			continue
		}
		switch name {
		case ProviderCLDR:
			chain = append(chain, NewCLDR())
		case ProviderStatic:
			static, err := NewDefaultStatic()
			if err != nil {
				return nil, err
			}
			chain = append(chain, static)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
		}
		resolved = append(resolved, name)
	}
	if len(resolved) == 0 {
		chain = append(chain, NewCLDR())
		resolved = append(resolved, ProviderCLDR)
	}

	logger.Debug("likely.providers.configured",
		"providers", strings.Join(resolved, ","),
		"overrides", len(overrides),
	)

	if len(chain) == 1 {
		return chain[0], nil
	}
	return chain, nil
}

func normalizeProvider(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package negotiation

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects how many available locales a negotiation returns.
type Strategy int

const (
	// Filtering returns every available locale that matches any requested
	// locale, ordered by request priority then tier.
	Filtering Strategy = iota
	// Matching returns at most one available locale per requested locale.
	Matching
	// Lookup returns the single best available locale.
	Lookup
)

// ErrUnknownStrategy is returned when a strategy name cannot be parsed.
var ErrUnknownStrategy = errors.New("negotiation: unknown strategy")

var strategyNames = [...]string{
	Filtering: "filtering",
	Matching:  "matching",
	Lookup:    "lookup",
}

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Filtering, Matching, Lookup}
}

// ParseStrategy maps a case-insensitive name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range strategyNames {
		if candidate == normalized {
			return Strategy(i), nil
		}
	}
	return Filtering, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	return s >= Filtering && s <= Lookup
}

func (s Strategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(strategyNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// limit is the number of pool entries a single tier may take.
// Zero means no limit.
func (s Strategy) limit() int {
	if s == Filtering {
		return 0
	}
	return 1
}

type gate int

const (
	nextTier gate = iota
	nextRequested
	stopNegotiation
)

// after decides where the scan continues once a tier has run.
func (s Strategy) after(found bool) gate {
	if !found {
		return nextTier
	}
	switch s {
	case Matching:
		return nextRequested
	case Lookup:
		return stopNegotiation
	default:
		return nextTier
	}
}

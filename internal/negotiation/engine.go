package negotiation

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-langneg/internal/logging"
	"github.com/goliatone/go-langneg/pkg/interfaces"
)

// Tier identifies the fallback stage that produced a match.
type Tier int

const (
	// TierDefault marks the default locale appended after negotiation.
	TierDefault Tier = iota
	TierExact
	TierRange
	TierMaximized
	TierVariantRange
	TierRegionMaximized
	TierRegionRange
)

var tierNames = [...]string{
	TierDefault:         "default",
	TierExact:           "exact",
	TierRange:           "range",
	TierMaximized:       "maximized",
	TierVariantRange:    "variant_range",
	TierRegionMaximized: "region_maximized",
	TierRegionRange:     "region_range",
}

func (t Tier) String() string {
	if t < TierDefault || int(t) >= len(tierNames) {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// Match is one entry of a negotiation result.
type Match struct {
	// Locale is the available tag exactly as supplied by the caller.
	Locale string
	// Requested is the requested tag that claimed Locale, empty for the default.
	Requested string
	Tier      Tier
}

// Option configures an Engine.
type Option[T any] func(*Engine[T])

// WithLogger sets the logger used for tier traces and run summaries.
func WithLogger[T any](logger interfaces.Logger) Option[T] {
	return func(e *Engine[T]) {
		e.logger = logging.Ensure(logger)
	}
}

// Engine negotiates locales using a TagMatcher for structure and a Maximizer
// for likely subtags. It holds no per-call state and is safe for concurrent use.
type Engine[T any] struct {
	matcher   interfaces.TagMatcher[T]
	maximizer interfaces.Maximizer
	logger    interfaces.Logger
	catchAll  T
}

// NewEngine wires an engine. A nil maximizer disables the two maximizing tiers.
func NewEngine[T any](matcher interfaces.TagMatcher[T], maximizer interfaces.Maximizer, opts ...Option[T]) *Engine[T] {
	if matcher == nil {
		panic("negotiation: matcher cannot be nil")
	}
	if maximizer == nil {
		maximizer = interfaces.MaximizerFunc(func(string) (string, bool) { return "", false })
	}

	e := &Engine[T]{
		matcher:   matcher,
		maximizer: maximizer,
		logger:    logging.NoOp(),
	}
	// Requested tags that fail to parse fall back to the undetermined tag.
	if catchAll, err := matcher.Parse("und"); err == nil {
		e.catchAll = catchAll
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Negotiate returns the available locales supporting requested, in priority
// order, followed by defaultLocale when the strategy calls for it. An empty
// defaultLocale means no default. The result is never nil.
func (e *Engine[T]) Negotiate(requested, available []string, defaultLocale string, strategy Strategy) []string {
	matches := e.Explain(requested, available, defaultLocale, strategy)
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.Locale)
	}
	return out
}

// Explain is Negotiate with the requested tag and tier recorded per result.
func (e *Engine[T]) Explain(requested, available []string, defaultLocale string, strategy Strategy) []Match {
	if !strategy.Valid() {
		e.logger.Warn("negotiation.strategy.invalid", "strategy", int(strategy), "fallback", Filtering.String())
		strategy = Filtering
	}
	logger := logging.WithNegotiationContext(e.logger, strategy.String(), defaultLocale)

	p := e.buildPool(available, logger)
	candidates := p.len()

	matches := make([]Match, 0, candidates+1)
	for _, tag := range requested {
		if tag == "" {
			continue
		}
		var next gate
		matches, next = e.resolve(p, tag, strategy, matches, logger)
		if next == stopNegotiation {
			break
		}
	}

	matches = withDefault(matches, defaultLocale, strategy)

	logger.Debug("negotiation.completed",
		"requested", len(requested),
		"available", candidates,
		"supported", len(matches),
	)
	return matches
}

func (e *Engine[T]) buildPool(available []string, logger interfaces.Logger) *pool[T] {
	p := newPool[T](len(available))
	for _, tag := range available {
		parsed, err := e.matcher.Parse(tag)
		if err != nil {
			logger.Trace("negotiation.available.skipped", "available", tag, "error", err)
			continue
		}
		if !p.add(tag, parsed) {
			logger.Trace("negotiation.available.duplicate", "available", tag)
		}
	}
	return p
}

// resolve runs the six tiers for one requested tag. The reference tag is
// carried between tiers: tier 3 replaces it with its maximized form, tier 4
// drops its variants and tier 5 drops its region. Tier 5 matches against the
// maximized region-less form while tier 6 sees the plain region-less one.
func (e *Engine[T]) resolve(p *pool[T], requested string, strategy Strategy, matches []Match, logger interfaces.Logger) ([]Match, gate) {
	reference, err := e.matcher.Parse(requested)
	if err != nil {
		logger.Trace("negotiation.requested.unparsable", "requested", requested, "error", err)
		reference = e.catchAll
	}

	run := func(tier Tier, ref T, candidateRange, referenceRange bool) bool {
		taken := p.take(strategy.limit(), func(candidate T) bool {
			return e.matcher.Matches(candidate, ref, candidateRange, referenceRange)
		})
		if len(taken) == 0 {
			return false
		}
		for _, tag := range taken {
			matches = append(matches, Match{Locale: tag, Requested: requested, Tier: tier})
		}
		logger.Trace("negotiation.tier.matched",
			"requested", requested,
			"reference", e.matcher.String(ref),
			"tier", tier.String(),
			"matched", taken,
		)
		return true
	}

	// Tiers 1 and 2 share the found flag; every later tier starts from false.
	found := run(TierExact, reference, false, false)
	if next := strategy.after(found); next != nextTier {
		return matches, next
	}
	found = run(TierRange, reference, true, false) || found
	if next := strategy.after(found); next != nextTier {
		return matches, next
	}

	found = false
	if maximized, ok := e.maximize(reference); ok {
		reference = maximized
		found = run(TierMaximized, reference, true, false)
	}
	if next := strategy.after(found); next != nextTier {
		return matches, next
	}

	reference = e.matcher.ClearVariants(reference)
	found = run(TierVariantRange, reference, true, true)
	if next := strategy.after(found); next != nextTier {
		return matches, next
	}

	reference = e.clearRegion(reference)
	found = false
	if maximized, ok := e.maximize(reference); ok {
		found = run(TierRegionMaximized, maximized, true, false)
	}
	if next := strategy.after(found); next != nextTier {
		return matches, next
	}

	found = run(TierRegionRange, reference, true, true)
	return matches, strategy.after(found)
}

func (e *Engine[T]) maximize(tag T) (T, bool) {
	var zero T
	expanded, ok := e.maximizer.Maximize(e.matcher.String(tag))
	if !ok {
		return zero, false
	}
	parsed, err := e.matcher.Parse(expanded)
	if err != nil {
		e.logger.Warn("negotiation.maximized.unparsable", "tag", e.matcher.String(tag), "maximized", expanded, "error", err)
		return zero, false
	}
	return parsed, true
}

func (e *Engine[T]) clearRegion(tag T) T {
	cleared, err := e.matcher.SetRegion(tag, "")
	if err != nil {
		panic(fmt.Sprintf("negotiation: matcher could not clear region of %q: %v", e.matcher.String(tag), err))
	}
	return cleared
}

func withDefault(matches []Match, defaultLocale string, strategy Strategy) []Match {
	if defaultLocale == "" {
		return matches
	}
	switch strategy {
	case Lookup:
		if len(matches) > 0 {
			return matches
		}
	default:
		if slices.ContainsFunc(matches, func(m Match) bool { return m.Locale == defaultLocale }) {
			return matches
		}
	}
	return append(matches, Match{Locale: defaultLocale, Tier: TierDefault})
}

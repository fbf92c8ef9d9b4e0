package langtag

import (
	"slices"

	"github.com/goliatone/go-langneg/pkg/interfaces"
)

// Matches reports whether t, taken as an available candidate, is compatible
// with reference. Language, script, region and the variant set are compared
// independently; extensions are ignored.
//
// With candidateRange a subtag missing from t matches anything, so "en"
// accepts a reference of "en-US". With referenceRange a subtag missing from
// reference matches anything, so once a reference region has been cleared
// "en-GB" and "en-AU" are both acceptable for it.
func (t Tag) Matches(reference Tag, candidateRange, referenceRange bool) bool {
	return subtagMatches(t.language, reference.language, candidateRange, referenceRange) &&
		subtagMatches(t.script, reference.script, candidateRange, referenceRange) &&
		subtagMatches(t.region, reference.region, candidateRange, referenceRange) &&
		variantsMatch(t.variants, reference.variants, candidateRange, referenceRange)
}

func subtagMatches(candidate, reference string, candidateRange, referenceRange bool) bool {
	if candidateRange && candidate == "" {
		return true
	}
	if referenceRange && reference == "" {
		return true
	}
	return candidate == reference
}

func variantsMatch(candidate, reference []string, candidateRange, referenceRange bool) bool {
	if candidateRange && len(candidate) == 0 {
		return true
	}
	if referenceRange && len(reference) == 0 {
		return true
	}
	return slices.Equal(candidate, reference)
}

// Matcher exposes the Tag operations through interfaces.TagMatcher.
type Matcher struct{}

var _ interfaces.TagMatcher[Tag] = Matcher{}

func (Matcher) Parse(tag string) (Tag, error) { return Parse(tag) }

func (Matcher) Matches(candidate, reference Tag, candidateRange, referenceRange bool) bool {
	return candidate.Matches(reference, candidateRange, referenceRange)
}

func (Matcher) ClearVariants(tag Tag) Tag { return tag.ClearVariants() }

func (Matcher) SetRegion(tag Tag, region string) (Tag, error) { return tag.SetRegion(region) }

func (Matcher) String(tag Tag) string { return tag.String() }

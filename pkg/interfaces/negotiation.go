package interfaces

// TagMatcher parses locale tags into an opaque structured form T and answers
// structural compatibility queries between two parsed tags.
//
// Implementations must be pure: the same inputs always produce the same
// outputs, and derived tags never alias the tag they were derived from.
type TagMatcher[T any] interface {
	// Parse converts a textual tag into its structured form.
	Parse(tag string) (T, error)
	// Matches reports whether candidate is compatible with reference.
	// candidateRange makes subtags absent from candidate act as wildcards;
	// referenceRange does the same for subtags absent from reference.
	Matches(candidate, reference T, candidateRange, referenceRange bool) bool
	// ClearVariants returns a copy of tag without variant subtags.
	ClearVariants(tag T) T
	// SetRegion returns a copy of tag with region replaced. The empty string
	// clears the region and must always succeed.
	SetRegion(tag T, region string) (T, error)
	// String renders tag in canonical textual form.
	String(tag T) string
}

// Maximizer expands a tag to its most likely language-script-region form
// (for example "en" to "en-Latn-US"). The boolean is false when no likely
// form is known.
type Maximizer interface {
	Maximize(tag string) (string, bool)
}

// MaximizerFunc adapts a plain function to the Maximizer contract.
type MaximizerFunc func(tag string) (string, bool)

// Maximize calls f.
func (f MaximizerFunc) Maximize(tag string) (string, bool) {
	return f(tag)
}

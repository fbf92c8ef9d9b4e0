package langtag

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrEmptyTag        = errors.New("langtag: tag is empty")
	ErrInvalidSubtag   = errors.New("langtag: invalid subtag")
	ErrInvalidLanguage = errors.New("langtag: invalid language subtag")
	ErrInvalidRegion   = errors.New("langtag: invalid region subtag")
)

const undetermined = "und"

// Tag is a parsed locale identifier. The zero value is the undetermined tag,
// which has no fixed subtags.
//
// Subtags are stored in canonical case: language and variants lowercase,
// script titlecase, region uppercase. Variants are sorted and unique so two
// tags listing the same variants in a different order compare equal.
type Tag struct {
	language   string
	script     string
	region     string
	variants   []string
	extensions []string
}

// Parse decomposes a textual tag. Subtags may be separated by '-' or '_' and
// are matched case-insensitively.
//
// The grammar is deliberately lenient about variants: any 3 to 8 character
// alphanumeric subtag after the region is accepted, so legacy platform
// variants such as "ja-JP-mac" parse.
func Parse(s string) (Tag, error) {
	if strings.TrimSpace(s) == "" {
		return Tag{}, ErrEmptyTag
	}

	parts := strings.Split(strings.ReplaceAll(s, "_", "-"), "-")
	for _, part := range parts {
		if len(part) == 0 || len(part) > 8 || !isAlnum(part) {
			return Tag{}, fmt.Errorf("%w: %q in %q", ErrInvalidSubtag, part, s)
		}
	}

	lang := strings.ToLower(parts[0])
	if !isLanguage(lang) {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, parts[0])
	}

	i := 1
	if len(lang) <= 3 && lang != undetermined {
		for n := 0; n < 3 && i < len(parts) && isExtlang(parts[i]); n++ {
			lang += "-" + strings.ToLower(parts[i])
			i++
		}
	}

	var tag Tag
	if lang != undetermined {
		tag.language = lang
	}
	if i < len(parts) && isScript(parts[i]) {
		tag.script = titleCase(parts[i])
		i++
	}
	if i < len(parts) && isRegion(parts[i]) {
		tag.region = strings.ToUpper(parts[i])
		i++
	}
	for i < len(parts) && isVariant(parts[i]) {
		tag.variants = append(tag.variants, strings.ToLower(parts[i]))
		i++
	}
	tag.variants = normalizeVariants(tag.variants)

	if i < len(parts) {
		extensions, err := parseExtensions(parts[i:])
		if err != nil {
			return Tag{}, fmt.Errorf("%w in %q", err, s)
		}
		tag.extensions = extensions
	}

	return tag, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(s string) Tag {
	tag, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return tag
}

// Language returns the language subtag (including extlangs), or "" when undetermined.
func (t Tag) Language() string { return t.language }

// Script returns the script subtag, or "".
func (t Tag) Script() string { return t.script }

// Region returns the region subtag, or "".
func (t Tag) Region() string { return t.region }

// Variants returns a copy of the variant subtags.
func (t Tag) Variants() []string { return slices.Clone(t.variants) }

// IsUndetermined reports whether the tag fixes no subtag at all.
func (t Tag) IsUndetermined() bool {
	return t.language == "" && t.script == "" && t.region == "" && len(t.variants) == 0
}

// ClearVariants returns a copy of t without variants.
func (t Tag) ClearVariants() Tag {
	out := t.clone()
	out.variants = nil
	return out
}

// SetRegion returns a copy of t with the region replaced. An empty region
// clears it.
func (t Tag) SetRegion(region string) (Tag, error) {
	out := t.clone()
	if region == "" {
		out.region = ""
		return out, nil
	}
	if !isRegion(region) {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidRegion, region)
	}
	out.region = strings.ToUpper(region)
	return out, nil
}

// String renders the canonical form, using "und" when no language is set.
func (t Tag) String() string {
	var b strings.Builder
	if t.language == "" {
		b.WriteString(undetermined)
	} else {
		b.WriteString(t.language)
	}
	if t.script != "" {
		b.WriteByte('-')
		b.WriteString(t.script)
	}
	if t.region != "" {
		b.WriteByte('-')
		b.WriteString(t.region)
	}
	for _, variant := range t.variants {
		b.WriteByte('-')
		b.WriteString(variant)
	}
	for _, ext := range t.extensions {
		b.WriteByte('-')
		b.WriteString(ext)
	}
	return b.String()
}

func (t Tag) clone() Tag {
	out := t
	out.variants = slices.Clone(t.variants)
	out.extensions = slices.Clone(t.extensions)
	return out
}

func parseExtensions(parts []string) ([]string, error) {
	var out []string
	for i := 0; i < len(parts); {
		singleton := strings.ToLower(parts[i])
		if len(singleton) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSubtag, parts[i])
		}
		i++
		start := i
		if singleton == "x" {
			i = len(parts)
		} else {
			for i < len(parts) && len(parts[i]) > 1 {
				i++
			}
		}
		if i == start {
			return nil, fmt.Errorf("%w: extension %q has no subtags", ErrInvalidSubtag, singleton)
		}
		segment := append([]string{singleton}, parts[start:i]...)
		out = append(out, strings.ToLower(strings.Join(segment, "-")))
	}
	return out, nil
}

func normalizeVariants(variants []string) []string {
	if len(variants) == 0 {
		return nil
	}
	slices.Sort(variants)
	return slices.Compact(variants)
}

func isLanguage(s string) bool {
	n := len(s)
	return isAlpha(s) && ((n >= 2 && n <= 3) || (n >= 5 && n <= 8))
}

func isExtlang(s string) bool {
	return len(s) == 3 && isAlpha(s)
}

func isScript(s string) bool {
	return len(s) == 4 && isAlpha(s)
}

func isRegion(s string) bool {
	return (len(s) == 2 && isAlpha(s)) || (len(s) == 3 && isDigit(s))
}

func isVariant(s string) bool {
	return len(s) >= 3 && len(s) <= 8 && isAlnum(s)
}

func titleCase(s string) string {
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return s != ""
}

func isDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9') && !('a' <= c|0x20 && c|0x20 <= 'z') {
			return false
		}
	}
	return s != ""
}

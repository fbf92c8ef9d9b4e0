package likely

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-langneg/internal/langtag"
	"github.com/goliatone/go-langneg/pkg/interfaces"
)

// CLDR maximizes tags with the likely-subtags data bundled in
// golang.org/x/text/language.
type CLDR struct{}

var _ interfaces.Maximizer = CLDR{}

// NewCLDR returns the x/text backed maximizer.
func NewCLDR() CLDR {
	return CLDR{}
}

// Maximize returns the language-script-region form of tag. Tags that x/text
// cannot parse (including the lenient platform variants accepted elsewhere),
// tags without an explicit language, and tags for which no confident script or
// region exists are reported as misses.
func (CLDR) Maximize(tag string) (string, bool) {
	parsed, err := language.Raw.Parse(tag)
	if err != nil {
		return "", false
	}

	rawBase, _, _ := parsed.Raw()
	if rawBase.String() == undetermined {
		return "", false
	}

	base, baseConf := parsed.Base()
	script, scriptConf := parsed.Script()
	region, regionConf := parsed.Region()
	if baseConf == language.No || scriptConf == language.No || regionConf == language.No {
		return "", false
	}

	// Compose with the default canonicalisation would suppress the script
	// (en-US rather than en-Latn-US), so the form is assembled by hand.
	return primaryLanguage(tag, base.String()) + "-" + script.String() + "-" + region.String(), true
}

// primaryLanguage keeps a lang-extlang prefix as written. x/text folds
// zh-yue into yue, while langtag keeps zh-yue as the language, and the
// maximized form must stay comparable with the caller's tags.
func primaryLanguage(tag, base string) string {
	parsed, err := langtag.Parse(tag)
	if err != nil || !strings.Contains(parsed.Language(), "-") {
		return base
	}
	return parsed.Language()
}

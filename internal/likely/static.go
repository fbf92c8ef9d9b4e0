package likely

import (
	"strings"

	"github.com/goliatone/go-langneg/pkg/interfaces"
)

const undetermined = "und"

// Static maximizes tags from a fixed lookup table. It is read-only after
// construction and safe for concurrent use.
type Static struct {
	subtags        map[string]string
	regionMatching map[string]struct{}
}

var _ interfaces.Maximizer = (*Static)(nil)

// NewStatic builds a maximizer from explicit entries. Keys are matched
// case-insensitively and accept '_' separators.
func NewStatic(entries map[string]string) *Static {
	return FromTable(&Table{Subtags: entries})
}

// FromTable builds a maximizer from a decoded table.
func FromTable(table *Table) *Static {
	s := &Static{
		subtags:        map[string]string{},
		regionMatching: map[string]struct{}{},
	}
	if table == nil {
		return s
	}
	for key, value := range table.Subtags {
		key = normalizeKey(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		s.subtags[key] = value
	}
	for _, lang := range table.RegionMatching {
		if lang = normalizeKey(lang); lang != "" {
			s.regionMatching[lang] = struct{}{}
		}
	}
	return s
}

// NewDefaultStatic loads the embedded table.
func NewDefaultStatic() (*Static, error) {
	table, err := DefaultTable()
	if err != nil {
		return nil, err
	}
	return FromTable(table), nil
}

// Maximize looks tag up in the table. Bare languages listed as region
// matching expand to language-LANGUAGE.
func (s *Static) Maximize(tag string) (string, bool) {
	if s == nil {
		return "", false
	}
	key := normalizeKey(tag)
	if key == "" || key == undetermined {
		return "", false
	}
	if value, ok := s.subtags[key]; ok {
		return value, true
	}
	if _, ok := s.regionMatching[key]; ok {
		return key + "-" + strings.ToUpper(key), true
	}
	return "", false
}

// Len reports the number of explicit entries.
func (s *Static) Len() int {
	if s == nil {
		return 0
	}
	return len(s.subtags)
}

package likely

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a serialised likely-subtags table.
//
// Subtags maps a minimal tag to its maximized form. RegionMatching lists bare
// languages whose likely region shares the language code (de to de-DE).
type Table struct {
	Subtags        map[string]string `json:"subtags"`
	RegionMatching []string          `json:"region_matching"`
}

//go:embed data/likely_subtags.json
var defaultTableData embed.FS

// DefaultTable loads the built-in table.
func DefaultTable() (*Table, error) {
	data, err := defaultTableData.ReadFile("data/likely_subtags.json")
	if err != nil {
		return nil, fmt.Errorf("likely: read embedded table: %w", err)
	}
	return decodeTable(bytes.NewReader(data))
}

// Loader reads likely-subtags tables from disk.
type Loader struct {
	path string
}

// NewLoader constructs a loader for the provided file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the configured table file.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	if l == nil || l.path == "" {
		return nil, errors.New("likely: loader path cannot be empty")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("likely: open table %q: %w", l.path, err)
	}
	defer file.Close()

	return decodeTable(file)
}

func decodeTable(r io.Reader) (*Table, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var table Table
	if err := decoder.Decode(&table); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("likely: decode table: %w", err)
	}

	if table.Subtags == nil {
		table.Subtags = map[string]string{}
	}

	return &table, nil
}

func normalizeKey(tag string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
}

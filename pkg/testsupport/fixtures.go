package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture reads a raw fixture file.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden decodes a JSON golden file into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// MustLoadGolden decodes testdata/<name> into v, failing the test on error.
func MustLoadGolden(t testing.TB, name string, v any) {
	t.Helper()
	path := filepath.Join("testdata", name)
	if err := LoadGolden(path, v); err != nil {
		t.Fatalf("load golden %s: %v", path, err)
	}
}

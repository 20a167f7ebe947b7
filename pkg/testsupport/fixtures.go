package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture reads a fixture file, failing the test when it is missing.
// Paths are relative to the package under test.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON decodes a JSON fixture into dest, typically a table
// listing: its name, primary key and the columns an inspector reports.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("decode fixture %s: %v", path, err)
	}
}

// FixturePath returns testdata/<filename>.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

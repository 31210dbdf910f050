// Package testdata provides test fixtures for network service tests.
// The JSON files follow the shapes returned by UniFi OS controllers.
package testdata

import (
	"embed"
	"encoding/json"
	"testing"
)

// FS embeds all JSON fixture files.
//
//go:embed **/*.json
var FS embed.FS

// LoadFixture reads and returns fixture content as string.
// The path should be relative to testdata directory (e.g., "sites/list.json").
func LoadFixture(t *testing.T, path string) string {
	t.Helper()

	data, err := FS.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", path, err)
	}

	return string(data)
}

// LoadFixtureJSON reads fixture and unmarshals into provided value.
func LoadFixtureJSON(t *testing.T, path string, v any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal([]byte(data), v); err != nil {
		t.Fatalf("failed to unmarshal fixture %s: %v", path, err)
	}
}

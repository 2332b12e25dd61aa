package gear

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gear.json")
	if err := os.WriteFile(path, []byte(`{"g123": "Pegasus 40"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMap(path)
	if err != nil {
		t.Fatalf("expected nil error, got %q", err)
	}
	if m["g123"] != "Pegasus 40" {
		t.Errorf("expected Pegasus 40, got %q", m["g123"])
	}
}

func TestLoadMapMissingFile(t *testing.T) {
	m, err := LoadMap(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected nil error for missing optional file, got %q", err)
	}
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}

func TestLoadMapEmptyPath(t *testing.T) {
	m, err := LoadMap("")
	if err != nil || len(m) != 0 {
		t.Errorf("expected empty map and nil error, got %v, %v", m, err)
	}
}

func TestLoadMapMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gear.json")
	if err := os.WriteFile(path, []byte(`not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMap(path); err == nil {
		t.Error("expected error for malformed file, got nil")
	}
}

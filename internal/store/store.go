// Package store reads and writes the running-data JSON files. Errors are
// wrapped and surfaced as-is: retry policy belongs to the caller.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lildude/runboard/internal/dataset"
)

// PathForYear returns the per-year dataset file path, e.g.
// running-data-2025.json.
func PathForYear(dir string, year int) string {
	return filepath.Join(dir, fmt.Sprintf("running-data-%d.json", year))
}

// Path returns the combined dataset file path.
func Path(dir string) string {
	return filepath.Join(dir, "running-data.json")
}

// Load reads and decodes a dataset file.
func Load(path string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	var ds dataset.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decoding dataset %s: %w", path, err)
	}
	return &ds, nil
}

// Save writes a dataset file, two-space indented to match the published
// format, creating the directory if needed.
func Save(path string, ds *dataset.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing dataset %s: %w", path, err)
	}
	return nil
}

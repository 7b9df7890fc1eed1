// Package source acquires input for the pipeline: it discovers stat export
// files on disk and parses them into records.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/crimson-sun/restat/internal/model"
)

// Discover returns the files under dir whose base name matches pattern,
// sorted lexicographically for deterministic processing order.
func Discover(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("source: bad pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Load reads one stat file and decodes it as a JSON array of records.
// A decode failure is recoverable at the run level: the caller warns and
// moves on to the next file.
func Load(path string) ([]model.StatRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	var records []model.StatRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("source: parse %s: %w", path, err)
	}
	return records, nil
}

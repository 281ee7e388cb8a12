// Package storage persists analysis results as a single JSON file so
// repeated batch runs accumulate history that downstream tooling can
// reload.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ceo-tweet-analyzer/internal/types"
)

// DefaultResultsFile is the results location when none is configured.
const DefaultResultsFile = "data/results.json"

var mu sync.Mutex

// Store reads and writes analysis results at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store. An empty path uses the default, and the
// ANALYZER_DATA_FILE environment variable overrides both.
func NewStore(path string) *Store {
	if v := os.Getenv("ANALYZER_DATA_FILE"); v != "" {
		path = v
	}
	if path == "" {
		path = DefaultResultsFile
	}
	return &Store{path: path}
}

// Save writes the full result set, replacing any previous file.
func (s *Store) Save(results []types.AnalysisResult) error {
	mu.Lock()
	defer mu.Unlock()
	return s.save(results)
}

// Load reads the stored result set. A missing file is an empty set,
// not an error.
func (s *Store) Load() ([]types.AnalysisResult, error) {
	mu.Lock()
	defer mu.Unlock()
	return s.load()
}

// Append loads the existing set, replaces any entry for the same
// handle/ticker pair, appends the new result and saves.
func (s *Store) Append(result *types.AnalysisResult) error {
	mu.Lock()
	defer mu.Unlock()

	results, err := s.load()
	if err != nil {
		return err
	}

	kept := results[:0]
	for _, r := range results {
		if r.Handle == result.Handle && r.Ticker == result.Ticker {
			continue
		}
		kept = append(kept, r)
	}
	kept = append(kept, *result)

	return s.save(kept)
}

func (s *Store) save(results []types.AnalysisResult) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}

func (s *Store) load() ([]types.AnalysisResult, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.AnalysisResult{}, nil
		}
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	var results []types.AnalysisResult
	if err := json.Unmarshal(b, &results); err != nil {
		return nil, fmt.Errorf("failed to parse results file: %w", err)
	}
	return results, nil
}

package retry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodexForgeBR/spec-retry/internal/logging"
)

// Store persists failed units per attempt, one JSON array file per attempt.
// Attempt N's failures live in "<N+1>.json", the file the next attempt reads
// its spec list from.
//
// Records are deduplicated by exact string equality of the normalized path.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. Nothing is touched on disk.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the result directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the record file for attempt.
func (s *Store) Path(attempt int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d.json", attempt+1))
}

// Reset removes the result directory and recreates it empty. Only the first
// attempt of a fresh run calls this; retries keep earlier records.
func (s *Store) Reset() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("remove result dir: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create result dir: %w", err)
	}
	return nil
}

// Read loads the record for attempt. A missing or unparseable record means
// nothing was recorded and yields an empty slice.
func (s *Store) Read(attempt int) []string {
	path := s.Path(attempt)
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Debug(fmt.Sprintf("No failed specs recorded at %s: %v", path, err))
		return []string{}
	}

	var units []string
	if err := json.Unmarshal(data, &units); err != nil {
		logging.Debug(fmt.Sprintf("Ignoring unreadable record %s: %v", path, err))
		return []string{}
	}
	if units == nil {
		return []string{}
	}
	return units
}

// Append merges units into the record for attempt and writes it back.
// Existing entries keep their position; new ones follow in the given order.
func (s *Store) Append(attempt int, units []string) error {
	merged := s.Read(attempt)
	seen := make(map[string]struct{}, len(merged)+len(units))
	out := make([]string, 0, len(merged)+len(units))
	for _, list := range [][]string{merged, units} {
		for _, u := range list {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, u)
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal failed specs: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create result dir: %w", err)
	}
	if err := os.WriteFile(s.Path(attempt), data, 0644); err != nil {
		return fmt.Errorf("write failed specs: %w", err)
	}
	return nil
}

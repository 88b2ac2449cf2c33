// Package state persists the session manifest that ties the attempts of one
// retry chain together.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const stateFileName = "session.json"

// Path returns the session file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, stateFileName)
}

// NewSession starts a manifest for a fresh run.
func NewSession(maxAttempts, units int, now time.Time) *Session {
	ts := now.UTC().Format(time.RFC3339)
	return &Session{
		SchemaVersion: SchemaVersion,
		SessionID:     uuid.New().String(),
		StartedAt:     ts,
		LastUpdated:   ts,
		MaxAttempts:   maxAttempts,
		Units:         units,
		Attempts:      []AttemptEntry{},
	}
}

// SaveSession persists the session as indented JSON.
func SaveSession(s *Session, dir string) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// LoadSession reads and parses the session from dir.
func LoadSession(dir string) (*Session, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if s.SessionID == "" {
		return nil, fmt.Errorf("unmarshal session: missing session_id")
	}
	return &s, nil
}

// LoadOrCreate returns the session stored in dir, or a new one when the
// file is missing or unreadable. created reports which happened.
func LoadOrCreate(dir string, maxAttempts, units int, now time.Time) (s *Session, created bool) {
	if loaded, err := LoadSession(dir); err == nil {
		return loaded, false
	}
	return NewSession(maxAttempts, units, now), true
}

// RecordAttempt appends or replaces the entry for e.Attempt.
func (s *Session) RecordAttempt(e AttemptEntry, now time.Time) {
	if e.FinishedAt == "" {
		e.FinishedAt = now.UTC().Format(time.RFC3339)
	}
	s.LastUpdated = now.UTC().Format(time.RFC3339)
	for i := range s.Attempts {
		if s.Attempts[i].Attempt == e.Attempt {
			s.Attempts[i] = e
			return
		}
	}
	s.Attempts = append(s.Attempts, e)
}

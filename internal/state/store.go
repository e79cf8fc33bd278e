package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Record describes a session started through the CLI. SessionID is the
// server-issued identifier, recorded verbatim.
type Record struct {
	SessionID   string    `json:"session_id"`
	Project     string    `json:"project"`
	SessionName string    `json:"session_name,omitempty"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is a JSON-file-backed record of CLI-started sessions.
// It stores the index in sessions/sessions.json and creates
// per-session directories at sessions/<sessionID>/. The newest record
// for a project is that project's current session.
type Store struct {
	root string
	mu   sync.RWMutex
}

// NewStore creates a file-backed Store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) indexPath() string {
	return filepath.Join(s.root, "sessions", "sessions.json")
}

func (s *Store) sessionsDir() string {
	return filepath.Join(s.root, "sessions")
}

func (s *Store) sessionDir(id string) string {
	return filepath.Join(s.root, "sessions", id)
}

// checkSessionID rejects identifiers that cannot be used as a single
// path component under the sessions directory. Session IDs come from
// the server (or an import file), so a hostile value like "../../x"
// must not escape the store root.
func checkSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("empty session id")
	}
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid session id: %s", id)
	}
	return nil
}

// loadIndex reads sessions.json. Records are ordered oldest first.
func (s *Store) loadIndex() ([]*Record, error) {
	data, err := os.ReadFile(s.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session index: %w", err)
	}

	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal session index: %w", err)
	}
	return records, nil
}

// saveIndex marshals with indentation and writes atomically.
func (s *Store) saveIndex(records []*Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session index: %w", err)
	}

	if err := os.MkdirAll(s.sessionsDir(), 0o755); err != nil {
		return fmt.Errorf("create sessions dir: %w", err)
	}

	// Atomic write: write to temp file then rename
	tmp := s.indexPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := os.Rename(tmp, s.indexPath()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp index: %w", err)
	}
	return nil
}

// Add appends a record and creates the session directory. A zero
// CreatedAt is filled in with the current time.
func (s *Store) Add(_ context.Context, rec *Record) error {
	if err := checkSessionID(rec.SessionID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadIndex()
	if err != nil {
		return err
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	records = append(records, rec)

	if err := s.saveIndex(records); err != nil {
		return err
	}

	if err := os.MkdirAll(s.sessionDir(rec.SessionID), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return nil
}

// Current returns the newest record for the given project, or the
// newest record overall when project is empty.
func (s *Store) Current(_ context.Context, project string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	for i := len(records) - 1; i >= 0; i-- {
		if project == "" || records[i].Project == project {
			return records[i], nil
		}
	}
	if project == "" {
		return nil, fmt.Errorf("no sessions recorded")
	}
	return nil, fmt.Errorf("no sessions recorded for project %s", project)
}

// Get returns the record with the given session ID.
func (s *Store) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.SessionID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("session not found: %s", id)
}

// List returns all records, oldest first.
func (s *Store) List(_ context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadIndex()
}

// Remove deletes one record and its session directory.
func (s *Store) Remove(_ context.Context, id string) error {
	if err := checkSessionID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadIndex()
	if err != nil {
		return err
	}

	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.SessionID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return fmt.Errorf("session not found: %s", id)
	}

	if err := s.saveIndex(kept); err != nil {
		return err
	}
	if err := os.RemoveAll(s.sessionDir(id)); err != nil {
		return fmt.Errorf("remove session dir: %w", err)
	}
	return nil
}

// RemoveAll deletes every record and session directory.
func (s *Store) RemoveAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(s.sessionsDir()); err != nil {
		return fmt.Errorf("remove sessions dir: %w", err)
	}
	return nil
}

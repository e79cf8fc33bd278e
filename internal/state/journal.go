package state

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry records one event the CLI sent to the server. EventID is the
// server-issued identifier.
type Entry struct {
	EventID    string    `json:"event_id"`
	EventName  string    `json:"event_name"`
	EventType  string    `json:"event_type"`
	DurationMS float64   `json:"duration_ms,omitempty"`
	SentAt     time.Time `json:"sent_at"`
}

// Journal is a JSONL-backed append-only record of sent events, stored
// per-session in sessions/<sessionID>/events.jsonl.
type Journal struct {
	root  string
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewJournal creates a file-backed Journal rooted at the given directory.
func NewJournal(root string) *Journal {
	return &Journal{
		root:  root,
		locks: make(map[string]*sync.Mutex),
	}
}

// getLock returns the per-session mutex, creating one if it doesn't exist.
func (j *Journal) getLock(sessionID string) *sync.Mutex {
	j.mu.Lock()
	defer j.mu.Unlock()

	if lock, ok := j.locks[sessionID]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	j.locks[sessionID] = lock
	return lock
}

func (j *Journal) entriesPath(sessionID string) string {
	return filepath.Join(j.root, "sessions", sessionID, "events.jsonl")
}

// Append writes one entry to the session's journal. A zero SentAt is
// filled in with the current time.
func (j *Journal) Append(_ context.Context, sessionID string, e *Entry) error {
	if err := checkSessionID(sessionID); err != nil {
		return err
	}

	lock := j.getLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if e.SentAt.IsZero() {
		e.SentAt = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	path := j.entriesPath(sessionID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	return nil
}

// Count returns the number of journaled entries for a session.
func (j *Journal) Count(_ context.Context, sessionID string) (int64, error) {
	if err := checkSessionID(sessionID); err != nil {
		return 0, err
	}

	lock := j.getLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.Open(j.entriesPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var count int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scan journal: %w", err)
	}
	return count, nil
}

// Entries returns all journaled entries for a session, oldest first.
func (j *Journal) Entries(_ context.Context, sessionID string) ([]*Entry, error) {
	if err := checkSessionID(sessionID); err != nil {
		return nil, err
	}

	lock := j.getLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.Open(j.entriesPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var entries []*Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("unmarshal journal entry: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}
	return entries, nil
}

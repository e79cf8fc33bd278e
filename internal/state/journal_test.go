package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestJournalAppendAndCount(t *testing.T) {
	dir := t.TempDir()
	journal := NewJournal(dir)
	ctx := context.Background()

	count, err := journal.Count(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected 0 for unknown session, got %d", count)
	}

	entries := []*Entry{
		{EventID: "e1", EventName: "first", EventType: "model", DurationMS: 100},
		{EventID: "e2", EventName: "second", EventType: "tool"},
	}
	for _, e := range entries {
		if err := journal.Append(ctx, "session-1", e); err != nil {
			t.Fatal(err)
		}
	}

	count, err = journal.Count(ctx, "session-1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 entries, got %d", count)
	}
}

func TestJournalEntries(t *testing.T) {
	dir := t.TempDir()
	journal := NewJournal(dir)
	ctx := context.Background()

	journal.Append(ctx, "s", &Entry{EventID: "e1", EventName: "a", EventType: "model"})
	journal.Append(ctx, "s", &Entry{EventID: "e2", EventName: "b", EventType: "chain"})

	got, err := journal.Entries(ctx, "s")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].EventID != "e1" || got[1].EventID != "e2" {
		t.Errorf("expected oldest-first order, got %v, %v", got[0].EventID, got[1].EventID)
	}
	if got[0].SentAt.IsZero() {
		t.Error("expected SentAt to be filled in")
	}
}

func TestJournalRejectsTraversingSessionID(t *testing.T) {
	root := t.TempDir()
	journal := NewJournal(filepath.Join(root, "data"))
	ctx := context.Background()

	entry := &Entry{EventID: "e", EventName: "n", EventType: "model"}
	for _, id := range []string{"../../escaped", "..", "a/b"} {
		if err := journal.Append(ctx, id, entry); err == nil {
			t.Errorf("Append should reject session id %q", id)
		}
		if _, err := journal.Count(ctx, id); err == nil {
			t.Errorf("Count should reject session id %q", id)
		}
		if _, err := journal.Entries(ctx, id); err == nil {
			t.Errorf("Entries should reject session id %q", id)
		}
	}

	if _, err := os.Stat(filepath.Join(root, "escaped")); !os.IsNotExist(err) {
		t.Error("journal written outside store root")
	}
}

func TestJournalSessionsIsolated(t *testing.T) {
	dir := t.TempDir()
	journal := NewJournal(dir)
	ctx := context.Background()

	journal.Append(ctx, "s1", &Entry{EventID: "e1", EventName: "a", EventType: "model"})
	journal.Append(ctx, "s2", &Entry{EventID: "e2", EventName: "b", EventType: "model"})
	journal.Append(ctx, "s2", &Entry{EventID: "e3", EventName: "c", EventType: "model"})

	c1, _ := journal.Count(ctx, "s1")
	c2, _ := journal.Count(ctx, "s2")
	if c1 != 1 || c2 != 2 {
		t.Errorf("expected counts 1 and 2, got %d and %d", c1, c2)
	}
}

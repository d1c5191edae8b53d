package models

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordAndQueryEntries(t *testing.T) {
	db := openTestDatabase(t)

	entries := []*Entry{
		{RunID: "run-1", Directory: "Show.S01E01", Action: ActionExtract, Outcome: OutcomeDone},
		{RunID: "run-1", Directory: "Show.S01E02", Action: ActionMarkPending, Outcome: OutcomeDone},
		{RunID: "run-2", Directory: "Show.S01E01", Action: ActionClean, Outcome: OutcomeFailed, Detail: "permission denied"},
	}
	for _, entry := range entries {
		if err := db.RecordEntry(entry); err != nil {
			t.Fatalf("RecordEntry: %v", err)
		}
		if entry.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}
	}

	recent, err := db.GetRecentEntries(2)
	if err != nil {
		t.Fatalf("GetRecentEntries: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].Action != ActionClean || recent[1].Action != ActionMarkPending {
		t.Errorf("expected newest first, got %s then %s", recent[0].Action, recent[1].Action)
	}

	all, err := db.GetRecentEntries(0)
	if err != nil {
		t.Fatalf("GetRecentEntries: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 entries, got %d", len(all))
	}

	run, err := db.GetEntriesByRun("run-1")
	if err != nil {
		t.Fatalf("GetEntriesByRun: %v", err)
	}
	if len(run) != 2 || run[0].Directory != "Show.S01E01" {
		t.Errorf("unexpected run entries: %+v", run)
	}

	history, err := db.GetEntriesByDirectory("Show.S01E01")
	if err != nil {
		t.Fatalf("GetEntriesByDirectory: %v", err)
	}
	if len(history) != 2 || history[0].Action != ActionExtract || history[1].Outcome != OutcomeFailed {
		t.Errorf("unexpected directory history: %+v", history)
	}
}

func TestPruneBefore(t *testing.T) {
	db := openTestDatabase(t)

	old := &Entry{RunID: "old", Directory: "A.S01E01", Action: ActionClean, Outcome: OutcomeDone, CreatedAt: time.Now().Add(-48 * time.Hour)}
	fresh := &Entry{RunID: "new", Directory: "B.S01E01", Action: ActionClean, Outcome: OutcomeDone}
	for _, entry := range []*Entry{old, fresh} {
		if err := db.RecordEntry(entry); err != nil {
			t.Fatalf("RecordEntry: %v", err)
		}
	}

	removed, err := db.PruneBefore(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("PruneBefore: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 pruned entry, got %d", removed)
	}

	left, err := db.GetRecentEntries(0)
	if err != nil {
		t.Fatalf("GetRecentEntries: %v", err)
	}
	if len(left) != 1 || left[0].RunID != "new" {
		t.Errorf("unexpected remaining entries: %+v", left)
	}
}

func TestEpisodeDirHelpers(t *testing.T) {
	dir := &EpisodeDir{Videos: []string{"a.mkv"}}
	if !dir.HasVideos() || dir.HasArchives() {
		t.Errorf("unexpected helpers: videos=%v archives=%v", dir.HasVideos(), dir.HasArchives())
	}
}

package controllers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/amaumene/tvrarcleanup/internal/config"
	"github.com/amaumene/tvrarcleanup/internal/utils"
)

func TestOrganizeLibrary(t *testing.T) {
	library := t.TempDir()
	writeFiles(t, library, "Show.Name.S02E05.mkv", "other.show.s01e03.avi", "Some.Movie.2019.mkv", "notes.txt", "S01E01.mkv")
	writeFiles(t, filepath.Join(library, "Nested"), "Nested.Show.S01E01.mkv")

	logger, _ := newTestLogger()
	organizer := NewOrganizeController(config.Config{LibraryRoot: library}, logger)

	moves, err := organizer.OrganizeLibrary(context.Background())
	if err != nil {
		t.Fatalf("OrganizeLibrary: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %+v", moves)
	}
	for _, move := range moves {
		if move.Err != nil {
			t.Errorf("move %s failed: %v", move.File, move.Err)
		}
	}

	assertExists(t, filepath.Join(library, "Show Name", "S02", "Show.Name.S02E05.mkv"))
	assertExists(t, filepath.Join(library, "other show", "s01", "other.show.s01e03.avi"))
	assertMissing(t, filepath.Join(library, "Show.Name.S02E05.mkv"))

	// Untouched: no code, not a video, code with no show, not top level
	assertExists(t, filepath.Join(library, "Some.Movie.2019.mkv"))
	assertExists(t, filepath.Join(library, "notes.txt"))
	assertExists(t, filepath.Join(library, "S01E01.mkv"))
	assertExists(t, filepath.Join(library, "Nested", "Nested.Show.S01E01.mkv"))
}

func TestOrganizeLibraryIsolatesFailures(t *testing.T) {
	library := t.TempDir()
	writeFiles(t, library, "A.Show.S01E01.mkv", "B.Show.S01E01.mkv")
	// A file already sitting at the first destination blocks that move only
	writeFiles(t, filepath.Join(library, "A Show", "S01"), "A.Show.S01E01.mkv")

	logger, _ := newTestLogger()
	organizer := NewOrganizeController(config.Config{LibraryRoot: library}, logger)

	moves, err := organizer.OrganizeLibrary(context.Background())
	if err != nil {
		t.Fatalf("OrganizeLibrary: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if !errors.Is(moves[0].Err, utils.ErrDestinationExists) {
		t.Errorf("expected ErrDestinationExists for %s, got %v", moves[0].File, moves[0].Err)
	}
	if moves[1].Err != nil {
		t.Errorf("second move should succeed: %v", moves[1].Err)
	}

	assertExists(t, filepath.Join(library, "A.Show.S01E01.mkv"))
	assertExists(t, filepath.Join(library, "B Show", "S01", "B.Show.S01E01.mkv"))
}

func TestOrganizeLibraryPreview(t *testing.T) {
	library := t.TempDir()
	writeFiles(t, library, "Show.Name.S02E05.mkv")

	logger, hook := newTestLogger()
	organizer := NewOrganizeController(config.Config{LibraryRoot: library, PreviewOnly: true}, logger)

	moves, err := organizer.OrganizeLibrary(context.Background())
	if err != nil {
		t.Fatalf("OrganizeLibrary: %v", err)
	}
	if len(moves) != 1 || moves[0].Destination != filepath.Join(library, "Show Name", "S02") {
		t.Errorf("unexpected moves %+v", moves)
	}
	assertExists(t, filepath.Join(library, "Show.Name.S02E05.mkv"))
	assertMissing(t, filepath.Join(library, "Show Name"))

	if entry := hook.LastEntry(); entry == nil || entry.Message != "Moving" {
		t.Errorf("expected a Moving log line, got %+v", entry)
	}
}

func TestOrganizeLibraryMissingRoot(t *testing.T) {
	logger, _ := newTestLogger()
	organizer := NewOrganizeController(config.Config{LibraryRoot: filepath.Join(t.TempDir(), "missing")}, logger)

	if _, err := organizer.OrganizeLibrary(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(organizer.libraryRoot); !os.IsNotExist(err) {
		t.Error("library root should not be created")
	}
}

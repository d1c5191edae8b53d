package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store holding the action journal
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// RecordEntry appends an entry to the journal
func (db *Database) RecordEntry(entry *Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return db.store.Insert(bolthold.NextSequence(), entry)
}

// GetRecentEntries retrieves the newest entries first, at most limit (0 = all)
func (db *Database) GetRecentEntries(limit int) ([]*Entry, error) {
	var entries []*Entry
	if err := db.store.Find(&entries, nil); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// GetEntriesByRun retrieves every entry of one sweep, oldest first
func (db *Database) GetEntriesByRun(runID string) ([]*Entry, error) {
	var entries []*Entry
	err := db.store.Find(&entries, bolthold.Where("RunID").Eq(runID).Index("RunID"))
	if err != nil {
		return nil, err
	}
	sortByID(entries)
	return entries, nil
}

// GetEntriesByDirectory retrieves the history of one directory, oldest first
func (db *Database) GetEntriesByDirectory(name string) ([]*Entry, error) {
	var entries []*Entry
	err := db.store.Find(&entries, bolthold.Where("Directory").Eq(name).Index("Directory"))
	if err != nil {
		return nil, err
	}
	sortByID(entries)
	return entries, nil
}

// PruneBefore deletes entries created before cutoff and returns how many went
func (db *Database) PruneBefore(cutoff time.Time) (int, error) {
	var entries []*Entry
	if err := db.store.Find(&entries, bolthold.Where("CreatedAt").Lt(cutoff)); err != nil {
		return 0, err
	}

	for _, entry := range entries {
		if err := db.store.Delete(entry.ID, &Entry{}); err != nil {
			return 0, err
		}
	}

	return len(entries), nil
}

func sortByID(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
}

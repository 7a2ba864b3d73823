// Package testutil provides shared test helpers for setting up data
// directories, managers and databases.
package testutil

import (
	"os"
	"testing"

	"github.com/jsoler/apunte/internal/index"
	"github.com/jsoler/apunte/internal/notes"
	"github.com/jsoler/apunte/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "apunte-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestStore creates a temporary data directory with a store.Provider.
func TestStore(t *testing.T) (string, store.Provider) {
	t.Helper()
	dataDir := t.TempDir()
	p, err := store.NewFS(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	return dataDir, p
}

// TestManager creates a notes.Manager over a temporary data directory.
func TestManager(t *testing.T) *notes.Manager {
	t.Helper()
	_, p := TestStore(t)
	return notes.NewManager(p)
}

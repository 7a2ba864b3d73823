//go:build sqlite_fts5

package index

import (
	"testing"
	"time"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM records_fts`).Scan(&count); err != nil {
		t.Fatalf("records_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	rec := Record{
		ID:      "n1",
		Kind:    "note",
		Content: "El jardín necesita riego por goteo este verano.",
		Created: time.Now(),
	}
	if err := db.Upsert(rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// remove_diacritics 2: accent-free query matches accented content.
	results, err := db.Search("jardin", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "n1" {
		t.Errorf("id = %q", results[0].ID)
	}
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(Record{ID: "gone", Kind: "note", Content: "vanishing content", Created: time.Now()})
	_ = db.Delete("gone")

	results, _ := db.Search("vanishing", 10)
	for _, r := range results {
		if r.ID == "gone" {
			t.Error("deleted record still in FTS index")
		}
	}
}

package index

import "time"

// Record is one indexed free-text record (note, idea or journal entry).
type Record struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // "note", "idea" or "journal"
	ProjectID string    `json:"project_id,omitempty"`
	Content   string    `json:"content"`
	Created   time.Time `json:"created"`
}

// SearchResult is one full-text search hit.
type SearchResult struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Snippet string `json:"snippet"`
}

// Index defines the interface for record indexing operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type Index interface {
	Upsert(r Record) error
	Delete(id string) error
	Search(query string, limit int) ([]SearchResult, error)
	AllIDs() (map[string]struct{}, error)
	Close() error
}

// Verify *DB satisfies Index at compile time.
var _ Index = (*DB)(nil)

// Package models defines the persisted domain types.
package models

import "time"

// Note is a free-text record, optionally scoped to a project.
type Note struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Created   time.Time  `json:"created"`
	Updated   *time.Time `json:"updated,omitempty"`
	ProjectID string     `json:"project_id,omitempty"`
}

// Idea is a free-text record in its own namespace. Ideas are never
// project-scoped.
type Idea struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}

// JournalEntry is a dated free-text record.
type JournalEntry struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}

// Project is a named container that notes may reference via ProjectID.
// The relation is weak: deleting a project does not cascade to its notes.
type Project struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
}

// RefinedNote is an immutable snapshot pairing a note's pre- and
// post-refinement content. History is append-only; a note refined twice
// produces two independent snapshots.
type RefinedNote struct {
	ID              string    `json:"id"` // same id as the source note
	OriginalContent string    `json:"original_content"`
	RefinedContent  string    `json:"refined_content"`
	Created         time.Time `json:"created"`
	ProjectID       string    `json:"project_id,omitempty"`
}

// BasePrompt is the system-level instruction prefixed to every
// language-model request.
type BasePrompt struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Package notes implements the entity managers for notes, ideas, journal
// entries, projects and refinement history.
package notes

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsoler/apunte/internal/apperr"
	"github.com/jsoler/apunte/internal/models"
	"github.com/jsoler/apunte/internal/store"
)

// Collection documents, one per entity type.
const (
	notesDoc    = "notes.json"
	ideasDoc    = "ideas.json"
	journalDoc  = "journal.json"
	projectsDoc = "projects.json"
	refinedDoc  = "refined.json"
)

// projectsDir holds one subdirectory per project, reserved for future
// per-project artifacts.
const projectsDir = "projects"

// DefaultRecentLimit caps list-recent operations when the caller passes
// a non-positive limit.
const DefaultRecentLimit = 10

// Manager provides typed CRUD operations over the JSON collections.
// Every access reloads the collection from disk and every mutation
// rewrites it in full.
type Manager struct {
	p   store.Provider
	now func() time.Time
	id  func() string
}

// NewManager creates a Manager over the given store provider.
func NewManager(p store.Provider) *Manager {
	return &Manager{
		p:   p,
		now: time.Now,
		id:  newID,
	}
}

// newID returns an 8-character random token. One scheme for every entity
// type; project identity is separate from the title.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// CreateNote allocates a fresh id, stamps creation time, appends and saves.
// projectID may be empty for an unfiled note.
func (m *Manager) CreateNote(content, projectID string) (models.Note, error) {
	items := store.Load[models.Note](m.p, notesDoc)
	note := models.Note{
		ID:        m.id(),
		Content:   content,
		Created:   m.now(),
		ProjectID: projectID,
	}
	items = append(items, note)
	if err := store.Save(m.p, notesDoc, items); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// CreateIdea appends a new idea record.
func (m *Manager) CreateIdea(content string) (models.Idea, error) {
	items := store.Load[models.Idea](m.p, ideasDoc)
	idea := models.Idea{
		ID:      m.id(),
		Content: content,
		Created: m.now(),
	}
	items = append(items, idea)
	if err := store.Save(m.p, ideasDoc, items); err != nil {
		return models.Idea{}, err
	}
	return idea, nil
}

// CreateJournalEntry appends a new journal entry.
func (m *Manager) CreateJournalEntry(content string) (models.JournalEntry, error) {
	items := store.Load[models.JournalEntry](m.p, journalDoc)
	entry := models.JournalEntry{
		ID:      m.id(),
		Content: content,
		Created: m.now(),
	}
	items = append(items, entry)
	if err := store.Save(m.p, journalDoc, items); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// CreateProject creates a project with the given title. When a project with
// the exact same title already exists it is returned unchanged instead of
// creating a duplicate. A per-project subdirectory is created as a namespace
// for future artifacts.
func (m *Manager) CreateProject(title string) (models.Project, error) {
	items := store.Load[models.Project](m.p, projectsDoc)
	for _, p := range items {
		if p.Title == title {
			return p, nil
		}
	}
	project := models.Project{
		ID:      m.id(),
		Title:   title,
		Created: m.now(),
	}
	if err := m.p.EnsureDir(filepath.Join(projectsDir, project.ID)); err != nil {
		return models.Project{}, err
	}
	items = append(items, project)
	if err := store.Save(m.p, projectsDoc, items); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// GetNote returns the note with the given id.
func (m *Manager) GetNote(id string) (models.Note, error) {
	for _, n := range store.Load[models.Note](m.p, notesDoc) {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Note{}, apperr.ErrNotFound
}

// GetIdea returns the idea with the given id.
func (m *Manager) GetIdea(id string) (models.Idea, error) {
	for _, i := range store.Load[models.Idea](m.p, ideasDoc) {
		if i.ID == id {
			return i, nil
		}
	}
	return models.Idea{}, apperr.ErrNotFound
}

// GetJournalEntry returns the journal entry with the given id.
func (m *Manager) GetJournalEntry(id string) (models.JournalEntry, error) {
	for _, e := range store.Load[models.JournalEntry](m.p, journalDoc) {
		if e.ID == id {
			return e, nil
		}
	}
	return models.JournalEntry{}, apperr.ErrNotFound
}

// GetProject returns the project with the given id.
func (m *Manager) GetProject(id string) (models.Project, error) {
	for _, p := range store.Load[models.Project](m.p, projectsDoc) {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, apperr.ErrNotFound
}

// Projects returns all projects in stored order.
func (m *Manager) Projects() []models.Project {
	return store.Load[models.Project](m.p, projectsDoc)
}

// Notes returns the full note collection in stored order.
func (m *Manager) Notes() []models.Note {
	return store.Load[models.Note](m.p, notesDoc)
}

// Ideas returns the full idea collection in stored order.
func (m *Manager) Ideas() []models.Idea {
	return store.Load[models.Idea](m.p, ideasDoc)
}

// Journal returns the full journal collection in stored order.
func (m *Manager) Journal() []models.JournalEntry {
	return store.Load[models.JournalEntry](m.p, journalDoc)
}

// RecentNotes returns at most limit notes sorted by creation time
// descending. Ties keep their original relative order.
func (m *Manager) RecentNotes(limit int) []models.Note {
	items := store.Load[models.Note](m.p, notesDoc)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Created.After(items[j].Created)
	})
	return clip(items, limit)
}

// RecentIdeas returns at most limit ideas, newest first.
func (m *Manager) RecentIdeas(limit int) []models.Idea {
	items := store.Load[models.Idea](m.p, ideasDoc)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Created.After(items[j].Created)
	})
	return clip(items, limit)
}

// RecentJournal returns at most limit journal entries, newest first.
func (m *Manager) RecentJournal(limit int) []models.JournalEntry {
	items := store.Load[models.JournalEntry](m.p, journalDoc)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Created.After(items[j].Created)
	})
	return clip(items, limit)
}

// NotesByProject returns the notes scoped to projectID in stored order.
func (m *Manager) NotesByProject(projectID string) []models.Note {
	var out []models.Note
	for _, n := range store.Load[models.Note](m.p, notesDoc) {
		if n.ProjectID == projectID {
			out = append(out, n)
		}
	}
	return out
}

// UpdateNote replaces the content of a note. Before mutating, an immutable
// RefinedNote snapshot of the previous content is appended to the refinement
// history. Returns apperr.ErrNotFound when the id is absent; nothing is
// written in that case.
func (m *Manager) UpdateNote(id, content string) error {
	items := store.Load[models.Note](m.p, notesDoc)
	idx := -1
	for i, n := range items {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.ErrNotFound
	}

	refined := store.Load[models.RefinedNote](m.p, refinedDoc)
	refined = append(refined, models.RefinedNote{
		ID:              id,
		OriginalContent: items[idx].Content,
		RefinedContent:  content,
		Created:         m.now(),
		ProjectID:       items[idx].ProjectID,
	})
	if err := store.Save(m.p, refinedDoc, refined); err != nil {
		return err
	}

	now := m.now()
	items[idx].Content = content
	items[idx].Updated = &now
	return store.Save(m.p, notesDoc, items)
}

// DeleteNote removes a note from the collection. Refinement history for the
// id is kept; snapshots are append-only.
func (m *Manager) DeleteNote(id string) error {
	items := store.Load[models.Note](m.p, notesDoc)
	for i, n := range items {
		if n.ID == id {
			items = append(items[:i], items[i+1:]...)
			return store.Save(m.p, notesDoc, items)
		}
	}
	return apperr.ErrNotFound
}

// RefinementsFor returns the refinement snapshots recorded for a note id,
// oldest first.
func (m *Manager) RefinementsFor(noteID string) []models.RefinedNote {
	var out []models.RefinedNote
	for _, r := range store.Load[models.RefinedNote](m.p, refinedDoc) {
		if r.ID == noteID {
			out = append(out, r)
		}
	}
	return out
}

func clip[T any](items []T, limit int) []T {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

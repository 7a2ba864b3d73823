package index

import (
	"log/slog"

	"github.com/jsoler/apunte/internal/notes"
)

// Sync brings the index up to date with the JSON collections:
//   - every stored note, idea and journal entry is upserted
//   - index entries whose records no longer exist are deleted
func Sync(db *DB, m *notes.Manager, logger *slog.Logger) error {
	indexed, err := db.AllIDs()
	if err != nil {
		return err
	}

	live := map[string]struct{}{}
	upsert := func(r Record) {
		live[r.ID] = struct{}{}
		if err := db.Upsert(r); err != nil {
			logger.Warn("sync: upsert failed", slog.String("id", r.ID), slog.String("error", err.Error()))
		}
	}

	for _, n := range m.Notes() {
		upsert(Record{ID: n.ID, Kind: "note", ProjectID: n.ProjectID, Content: n.Content, Created: n.Created})
	}
	for _, i := range m.Ideas() {
		upsert(Record{ID: i.ID, Kind: "idea", Content: i.Content, Created: i.Created})
	}
	for _, e := range m.Journal() {
		upsert(Record{ID: e.ID, Kind: "journal", Content: e.Content, Created: e.Created})
	}

	// Remove stale entries.
	for id := range indexed {
		if _, ok := live[id]; !ok {
			if err := db.Delete(id); err != nil {
				logger.Warn("sync: delete failed", slog.String("id", id), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale entry", slog.String("id", id))
			}
		}
	}
	return nil
}

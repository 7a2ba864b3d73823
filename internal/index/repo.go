package index

import "fmt"

// Upsert inserts or replaces a record and its FTS row in one transaction.
func (db *DB) Upsert(r Record) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO records (id, kind, project_id, content, created)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			project_id = excluded.project_id,
			content = excluded.content,
			created = excluded.created
	`, r.ID, r.Kind, r.ProjectID, r.Content, r.Created)
	if err != nil {
		return fmt.Errorf("index: upsert record: %w", err)
	}

	if err := ftsUpsert(tx, r.ID, r.Kind, r.Content); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a record and its FTS row.
func (db *DB) Delete(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("index: delete record: %w", err)
	}
	ftsDelete(tx, id)

	return tx.Commit()
}

// AllIDs returns the set of indexed record ids.
func (db *DB) AllIDs() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT id FROM records`)
	if err != nil {
		return nil, fmt.Errorf("index: all ids: %w", err)
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

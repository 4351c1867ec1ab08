package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rivalrockets/rivalrockets-api/internal/model"
)

type MachineRepo struct{ DB *sql.DB }

func NewMachineRepo(db *sql.DB) *MachineRepo { return &MachineRepo{DB: db} }

const machineColumns = "id,system_name,system_notes,system_notes_html,owner,active_revision_id,timestamp,author_id"

func scanMachine(row interface{ Scan(...any) error }) (model.Machine, error) {
	var m model.Machine
	err := row.Scan(&m.ID, &m.SystemName, &m.SystemNotes, &m.SystemNotesHTML,
		&m.Owner, &m.ActiveRevisionID, &m.Timestamp, &m.AuthorID)
	return m, err
}

// Create inserts a machine and fills in its generated id.
func (r *MachineRepo) Create(ctx context.Context, m *model.Machine) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO machines (system_name, system_notes, system_notes_html, owner, timestamp, author_id)
		 VALUES (?,?,?,?,?,?)`,
		m.SystemName, m.SystemNotes, m.SystemNotesHTML, m.Owner, m.Timestamp, m.AuthorID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a machine by id.
func (r *MachineRepo) GetByID(ctx context.Context, id uint64) (model.Machine, error) {
	m, err := scanMachine(r.DB.QueryRowContext(ctx,
		"SELECT "+machineColumns+" FROM machines WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Machine{}, ErrNotFound
	}
	return m, err
}

// List returns all machines, newest first. Clients rely on this order.
func (r *MachineRepo) List(ctx context.Context) ([]model.Machine, error) {
	return r.list(ctx,
		"SELECT "+machineColumns+" FROM machines ORDER BY timestamp DESC, id DESC")
}

// ListByAuthor returns the machines submitted by one user, newest first.
func (r *MachineRepo) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Machine, error) {
	return r.list(ctx,
		"SELECT "+machineColumns+" FROM machines WHERE author_id=? ORDER BY timestamp DESC, id DESC",
		authorID)
}

func (r *MachineRepo) list(ctx context.Context, query string, args ...any) ([]model.Machine, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Machine
	for rows.Next() {
		m, err := scanMachine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update writes the mutable columns of an already-patched machine.
// Timestamp, author and the active pointer are not touched here.
func (r *MachineRepo) Update(ctx context.Context, m model.Machine) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE machines SET system_name=?, system_notes=?, system_notes_html=?, owner=? WHERE id=?",
		m.SystemName, m.SystemNotes, m.SystemNotesHTML, m.Owner, m.ID)
	return err
}

// SetActiveRevision points the machine at a revision. This is the
// second commit of the revision-create sequence; it runs outside any
// surrounding transaction on purpose so the generated revision id is
// already durable when the pointer moves.
func (r *MachineRepo) SetActiveRevision(ctx context.Context, machineID, revisionID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE machines SET active_revision_id=? WHERE id=?", revisionID, machineID)
	return err
}

// Delete removes a machine together with its revisions and every
// benchmark result under them. The cascade is spelled out here instead
// of delegated to foreign keys so no orphans survive regardless of how
// the schema was created.
func (r *MachineRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range resultTables {
		_, err = tx.ExecContext(ctx,
			"DELETE FROM "+table+" WHERE revision_id IN (SELECT id FROM revisions WHERE machine_id=?)", id)
		if err != nil {
			return err
		}
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM revisions WHERE machine_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM machines WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// resultTables lists every benchmark result table hanging off a
// revision, for the cascade deletes.
var resultTables = []string{
	"cinebenchr15results",
	"futuremark3dmark06results",
	"futuremark3dmarkresults",
}

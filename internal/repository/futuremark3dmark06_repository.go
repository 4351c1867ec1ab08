package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rivalrockets/rivalrockets-api/internal/model"
)

type Futuremark3DMark06Repo struct{ DB *sql.DB }

func NewFuturemark3DMark06Repo(db *sql.DB) *Futuremark3DMark06Repo {
	return &Futuremark3DMark06Repo{DB: db}
}

const fm06Columns = `id,result_date,sm2_score,cpu_score,sm3_score,proxcyon_fps,fireflyforest_fps,
cpu1_fps,cpu2_fps,canyonflight_fps,deepfreeze_fps,overall_score,result_url,revision_id`

func scanFM06(row interface{ Scan(...any) error }) (model.Futuremark3DMark06Result, error) {
	var res model.Futuremark3DMark06Result
	err := row.Scan(&res.ID, &res.ResultDate, &res.SM2Score, &res.CPUScore, &res.SM3Score,
		&res.ProxcyonFps, &res.FireflyforestFps, &res.CPU1Fps, &res.CPU2Fps,
		&res.CanyonflightFps, &res.DeepfreezeFps, &res.OverallScore, &res.ResultURL,
		&res.RevisionID)
	return res, err
}

// Create inserts a result and fills in its generated id.
func (r *Futuremark3DMark06Repo) Create(ctx context.Context, res *model.Futuremark3DMark06Result) error {
	out, err := r.DB.ExecContext(ctx,
		`INSERT INTO futuremark3dmark06results (result_date, sm2_score, cpu_score, sm3_score,
		 proxcyon_fps, fireflyforest_fps, cpu1_fps, cpu2_fps, canyonflight_fps, deepfreeze_fps,
		 overall_score, result_url, revision_id)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		res.ResultDate, res.SM2Score, res.CPUScore, res.SM3Score,
		res.ProxcyonFps, res.FireflyforestFps, res.CPU1Fps, res.CPU2Fps,
		res.CanyonflightFps, res.DeepfreezeFps, res.OverallScore, res.ResultURL,
		res.RevisionID)
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
func (r *Futuremark3DMark06Repo) GetByID(ctx context.Context, id uint64) (model.Futuremark3DMark06Result, error) {
	res, err := scanFM06(r.DB.QueryRowContext(ctx,
		"SELECT "+fm06Columns+" FROM futuremark3dmark06results WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Futuremark3DMark06Result{}, ErrNotFound
	}
	return res, err
}

// List returns all results, best overall score first.
func (r *Futuremark3DMark06Repo) List(ctx context.Context) ([]model.Futuremark3DMark06Result, error) {
	return r.list(ctx,
		"SELECT "+fm06Columns+" FROM futuremark3dmark06results ORDER BY overall_score DESC, id DESC")
}

// ListByRevision returns a revision's results, best overall score first.
func (r *Futuremark3DMark06Repo) ListByRevision(ctx context.Context, revisionID uint64) ([]model.Futuremark3DMark06Result, error) {
	return r.list(ctx,
		"SELECT "+fm06Columns+" FROM futuremark3dmark06results WHERE revision_id=? ORDER BY overall_score DESC, id DESC",
		revisionID)
}

func (r *Futuremark3DMark06Repo) list(ctx context.Context, query string, args ...any) ([]model.Futuremark3DMark06Result, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Futuremark3DMark06Result
	for rows.Next() {
		res, err := scanFM06(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Update writes the mutable columns of an already-patched result.
func (r *Futuremark3DMark06Repo) Update(ctx context.Context, res model.Futuremark3DMark06Result) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE futuremark3dmark06results SET result_date=?, sm2_score=?, cpu_score=?, sm3_score=?,
		 proxcyon_fps=?, fireflyforest_fps=?, cpu1_fps=?, cpu2_fps=?, canyonflight_fps=?,
		 deepfreeze_fps=?, overall_score=?, result_url=? WHERE id=?`,
		res.ResultDate, res.SM2Score, res.CPUScore, res.SM3Score,
		res.ProxcyonFps, res.FireflyforestFps, res.CPU1Fps, res.CPU2Fps, res.CanyonflightFps,
		res.DeepfreezeFps, res.OverallScore, res.ResultURL, res.ID)
	return err
}

// Delete removes a result.
func (r *Futuremark3DMark06Repo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM futuremark3dmark06results WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

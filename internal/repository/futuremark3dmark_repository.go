package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rivalrockets/rivalrockets-api/internal/model"
)

type Futuremark3DMarkRepo struct{ DB *sql.DB }

func NewFuturemark3DMarkRepo(db *sql.DB) *Futuremark3DMarkRepo {
	return &Futuremark3DMarkRepo{DB: db}
}

const fm3dColumns = `id,result_date,icestorm_score,icestorm_result_url,cloudgate_score,cloudgate_result_url,
firestrike_score,firestrike_result_url,skydiver_score,skydiver_result_url,overall_result_url,revision_id`

func scanFM3D(row interface{ Scan(...any) error }) (model.Futuremark3DMarkResult, error) {
	var res model.Futuremark3DMarkResult
	err := row.Scan(&res.ID, &res.ResultDate, &res.IcestormScore, &res.IcestormResultURL,
		&res.CloudgateScore, &res.CloudgateResultURL, &res.FirestrikeScore, &res.FirestrikeResultURL,
		&res.SkydiverScore, &res.SkydiverResultURL, &res.OverallResultURL, &res.RevisionID)
	return res, err
}

// Create inserts a result and fills in its generated id.
func (r *Futuremark3DMarkRepo) Create(ctx context.Context, res *model.Futuremark3DMarkResult) error {
	out, err := r.DB.ExecContext(ctx,
		`INSERT INTO futuremark3dmarkresults (result_date, icestorm_score, icestorm_result_url,
		 cloudgate_score, cloudgate_result_url, firestrike_score, firestrike_result_url,
		 skydiver_score, skydiver_result_url, overall_result_url, revision_id)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		res.ResultDate, res.IcestormScore, res.IcestormResultURL,
		res.CloudgateScore, res.CloudgateResultURL, res.FirestrikeScore, res.FirestrikeResultURL,
		res.SkydiverScore, res.SkydiverResultURL, res.OverallResultURL, res.RevisionID)
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
func (r *Futuremark3DMarkRepo) GetByID(ctx context.Context, id uint64) (model.Futuremark3DMarkResult, error) {
	res, err := scanFM3D(r.DB.QueryRowContext(ctx,
		"SELECT "+fm3dColumns+" FROM futuremark3dmarkresults WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Futuremark3DMarkResult{}, ErrNotFound
	}
	return res, err
}

// List returns all results ordered by Fire Strike score, best first.
// The suite has no overall score column, so Fire Strike stands in as
// the representative score for ranking.
func (r *Futuremark3DMarkRepo) List(ctx context.Context) ([]model.Futuremark3DMarkResult, error) {
	return r.list(ctx,
		"SELECT "+fm3dColumns+" FROM futuremark3dmarkresults ORDER BY firestrike_score DESC, id DESC")
}

// ListByRevision returns a revision's results, best Fire Strike first.
func (r *Futuremark3DMarkRepo) ListByRevision(ctx context.Context, revisionID uint64) ([]model.Futuremark3DMarkResult, error) {
	return r.list(ctx,
		"SELECT "+fm3dColumns+" FROM futuremark3dmarkresults WHERE revision_id=? ORDER BY firestrike_score DESC, id DESC",
		revisionID)
}

func (r *Futuremark3DMarkRepo) list(ctx context.Context, query string, args ...any) ([]model.Futuremark3DMarkResult, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Futuremark3DMarkResult
	for rows.Next() {
		res, err := scanFM3D(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Update writes the mutable columns of an already-patched result.
func (r *Futuremark3DMarkRepo) Update(ctx context.Context, res model.Futuremark3DMarkResult) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE futuremark3dmarkresults SET result_date=?, icestorm_score=?, icestorm_result_url=?,
		 cloudgate_score=?, cloudgate_result_url=?, firestrike_score=?, firestrike_result_url=?,
		 skydiver_score=?, skydiver_result_url=?, overall_result_url=? WHERE id=?`,
		res.ResultDate, res.IcestormScore, res.IcestormResultURL,
		res.CloudgateScore, res.CloudgateResultURL, res.FirestrikeScore, res.FirestrikeResultURL,
		res.SkydiverScore, res.SkydiverResultURL, res.OverallResultURL, res.ID)
	return err
}

// Delete removes a result.
func (r *Futuremark3DMarkRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM futuremark3dmarkresults WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

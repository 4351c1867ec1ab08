package repository

import (
	"context"
	"database/sql"
)

// TokenRepo persists the revoked-token deny-list. Verification reads
// through to storage on every check; nothing is cached, so a revocation
// takes effect on the next request. The list only grows.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Revoke records a token id. Revoking the same jti twice is a no-op.
func (r *TokenRepo) Revoke(ctx context.Context, jti string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO revoked_tokens (jti) VALUES (?)", jti)
	return err
}

// IsRevoked reports whether a token id appears on the deny-list.
func (r *TokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM revoked_tokens WHERE jti=? LIMIT 1", jti).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

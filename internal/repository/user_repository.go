package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rivalrockets/rivalrockets-api/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,username,password_hash,role_id,last_seen"

// Create inserts a user attached to the default role and returns its ID.
// The password must already be hashed.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (uint64, error) {
	username = strings.TrimSpace(username)
	var roleID uint8
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM roles WHERE is_default=1 LIMIT 1").Scan(&roleID)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role_id, last_seen) VALUES (?,?,?,?)",
		username, passwordHash, roleID, time.Now().UTC())
	if err != nil {
		// 1062 = MySQL duplicate entry
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RoleID, &u.LastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username)).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RoleID, &u.LastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RoleID, &u.LastSeen); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update writes the mutable columns of an already-patched user.
func (r *UserRepo) Update(ctx context.Context, u model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET username=?, password_hash=? WHERE id=?",
		u.Username, u.PasswordHash, u.ID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrUsernameExists
	}
	return err
}

// TouchLastSeen records a successful login.
func (r *UserRepo) TouchLastSeen(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET last_seen=? WHERE id=?", time.Now().UTC(), id)
	return err
}

// GetRole loads the role row referenced by a user. Unused by the
// authorization path; exposed for the seeded permission mask.
func (r *UserRepo) GetRole(ctx context.Context, roleID uint8) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,is_default,permissions FROM roles WHERE id=? LIMIT 1",
		roleID).Scan(&role.ID, &role.Name, &role.IsDefault, &role.Permissions)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Role{}, ErrNotFound
	}
	return role, err
}

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalrockets/rivalrockets-api/internal/config"
	"github.com/rivalrockets/rivalrockets-api/internal/database"
	"github.com/rivalrockets/rivalrockets-api/internal/middleware"
	"github.com/rivalrockets/rivalrockets-api/internal/model"
	"github.com/rivalrockets/rivalrockets-api/internal/repository"
)

// Ownership tests against a real MySQL instance, guarded like the
// repository suite: set TEST_DATABASE_DSN to run them. They pin the
// authorization contract end to end, including that a denied write
// leaves the stored row untouched.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := database.OpenDSN(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, database.Migrate(ctx, db))
	return db
}

func seedUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	users := repository.NewUserRepo(db)
	name := fmt.Sprintf("own_%d", time.Now().UnixNano())
	id, err := users.Create(context.Background(), name, "$2b$04$notarealhash")
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = ?", id)
	})
	u, err := users.GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func seedMachine(t *testing.T, db *sql.DB, authorID uint64) model.Machine {
	t.Helper()
	machines := repository.NewMachineRepo(db)
	m := model.Machine{
		SystemName: "ownership rig",
		Owner:      "it owner",
		Timestamp:  time.Now().UTC().Truncate(time.Second),
		AuthorID:   authorID,
	}
	require.NoError(t, machines.Create(context.Background(), &m))
	t.Cleanup(func() {
		machines.Delete(context.Background(), m.ID)
	})
	return m
}

// callAs runs a handler with the given caller identity set, the way
// RequireAuth would have left it.
func callAs(t *testing.T, caller model.User, method, body string, id uint64, fn echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(id))
	c.Set("identity", middleware.Identity{UserID: caller.ID, Username: caller.Username})
	require.NoError(t, fn(c))
	return rec
}

func TestUserUpdateForeignUserDenied(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := repository.NewUserRepo(db)
	h := NewUserHandler(config.Config{BcryptCost: 4}, users, repository.NewMachineRepo(db))

	a := seedUser(t, db)
	b := seedUser(t, db)

	rec := callAs(t, a, http.MethodPut, `{"username":"hijacked"}`, b.ID, h.Update)

	// 403 carrying b's unmodified record under the usual envelope,
	// not an error body.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	var resp struct {
		User struct {
			ID       uint64 `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Error)
	assert.Equal(t, b.ID, resp.User.ID)
	assert.Equal(t, b.Username, resp.User.Username)

	stored, err := users.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Username, stored.Username)
	assert.Equal(t, b.PasswordHash, stored.PasswordHash)
}

func TestUserUpdateSelf(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := repository.NewUserRepo(db)
	h := NewUserHandler(config.Config{BcryptCost: 4}, users, repository.NewMachineRepo(db))

	u := seedUser(t, db)
	renamed := u.Username + "_r"

	rec := callAs(t, u, http.MethodPut, fmt.Sprintf(`{"username":%q}`, renamed), u.ID, h.Update)

	assert.Equal(t, http.StatusOK, rec.Code)
	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, renamed, stored.Username)
}

func TestMachineUpdateNonOwnerDenied(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	machines := repository.NewMachineRepo(db)
	h := NewMachineHandler(machines, repository.NewRevisionRepo(db))

	owner := seedUser(t, db)
	intruder := seedUser(t, db)
	m := seedMachine(t, db, owner.ID)

	rec := callAs(t, intruder, http.MethodPut, `{"system_name":"hijacked"}`, m.ID, h.Update)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
	stored, err := machines.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.SystemName, stored.SystemName)

	// the author still can
	rec = callAs(t, owner, http.MethodPut, `{"system_name":"renamed rig"}`, m.ID, h.Update)
	assert.Equal(t, http.StatusOK, rec.Code)
	stored, err = machines.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed rig", stored.SystemName)
}

func TestMachineDeleteNonOwnerDenied(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	machines := repository.NewMachineRepo(db)
	h := NewMachineHandler(machines, repository.NewRevisionRepo(db))

	owner := seedUser(t, db)
	intruder := seedUser(t, db)
	m := seedMachine(t, db, owner.ID)

	rec := callAs(t, intruder, http.MethodDelete, "", m.ID, h.Delete)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
	_, err := machines.GetByID(ctx, m.ID)
	require.NoError(t, err)

	rec = callAs(t, owner, http.MethodDelete, "", m.ID, h.Delete)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":true}`, rec.Body.String())
	_, err = machines.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

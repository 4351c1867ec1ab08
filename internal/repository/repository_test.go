package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalrockets/rivalrockets-api/internal/database"
	"github.com/rivalrockets/rivalrockets-api/internal/model"
)

// Integration tests against a real MySQL instance. Set
// TEST_DATABASE_DSN (e.g. "root:pass@tcp(127.0.0.1:3306)/rivalrockets_test?parseTime=true&loc=UTC")
// to run them; they are skipped otherwise. The schema is migrated on
// open and all rows created by a test are removed by its cleanup.
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

func createUser(t *testing.T, db *sql.DB) uint64 {
	t.Helper()
	users := NewUserRepo(db)
	name := fmt.Sprintf("it_%d", time.Now().UnixNano())
	id, err := users.Create(context.Background(), name, "$2b$04$notarealhash")
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = ?", id)
	})
	return id
}

func createMachine(t *testing.T, db *sql.DB, authorID uint64, name string) model.Machine {
	t.Helper()
	machines := NewMachineRepo(db)
	m := model.Machine{
		SystemName: name,
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

func i64(n int64) *int64 { return &n }

func TestUserRepoCreateAndFetch(t *testing.T) {
	db := testDB(t)
	users := NewUserRepo(db)
	ctx := context.Background()

	id := createUser(t, db)

	u, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.NotZero(t, u.RoleID)

	byName, err := users.GetByUsername(ctx, u.Username)
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	// default role must allow writes but not deletes
	role, err := users.GetRole(ctx, u.RoleID)
	require.NoError(t, err)
	assert.True(t, role.IsDefault)
	assert.True(t, role.Can(model.PermissionPost))
	assert.False(t, role.Can(model.PermissionAdminister))

	_, err = users.Create(ctx, u.Username, "$2b$04$other")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestUserRepoGetByIDNotFound(t *testing.T) {
	db := testDB(t)
	_, err := NewUserRepo(db).GetByID(context.Background(), 1<<60)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRevisionCreateSetsActivePointer(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	machines := NewMachineRepo(db)
	revisions := NewRevisionRepo(db)

	author := createUser(t, db)
	m := createMachine(t, db, author, "active pointer rig")

	rv := model.Revision{
		CPUMake:   "Intel",
		CPUName:   "Core i5-2500K",
		CPUMhz:    i64(3300),
		Timestamp: time.Now().UTC().Truncate(time.Second),
		AuthorID:  author,
		MachineID: m.ID,
	}
	require.NoError(t, revisions.Create(ctx, &rv))
	require.NotZero(t, rv.ID)

	got, err := machines.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ActiveRevisionID)
	assert.Equal(t, rv.ID, *got.ActiveRevisionID)

	// a later revision takes over the pointer
	rv2 := rv
	rv2.ID = 0
	rv2.CPUName = "Core i7-2600K"
	require.NoError(t, revisions.Create(ctx, &rv2))

	got, err = machines.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ActiveRevisionID)
	assert.Equal(t, rv2.ID, *got.ActiveRevisionID)
}

func TestRevisionDeleteClearsActivePointer(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	machines := NewMachineRepo(db)
	revisions := NewRevisionRepo(db)

	author := createUser(t, db)
	m := createMachine(t, db, author, "pointer clear rig")

	rv := model.Revision{Timestamp: time.Now().UTC(), AuthorID: author, MachineID: m.ID}
	require.NoError(t, revisions.Create(ctx, &rv))
	require.NoError(t, revisions.Delete(ctx, rv.ID))

	got, err := machines.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ActiveRevisionID)

	_, err = revisions.GetByID(ctx, rv.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMachineDeleteCascades(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	machines := NewMachineRepo(db)
	revisions := NewRevisionRepo(db)
	cinebench := NewCinebenchR15Repo(db)

	author := createUser(t, db)
	m := createMachine(t, db, author, "cascade rig")

	rv := model.Revision{Timestamp: time.Now().UTC(), AuthorID: author, MachineID: m.ID}
	require.NoError(t, revisions.Create(ctx, &rv))

	res := model.CinebenchR15Result{
		ResultDate: time.Now().UTC().Truncate(time.Second),
		CPUCb:      i64(650),
		RevisionID: rv.ID,
	}
	require.NoError(t, cinebench.Create(ctx, &res))

	require.NoError(t, machines.Delete(ctx, m.ID))

	_, err := machines.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = revisions.GetByID(ctx, rv.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cinebench.GetByID(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, machines.Delete(ctx, m.ID), ErrNotFound)
}

func TestMachineListOrdering(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	machines := NewMachineRepo(db)

	author := createUser(t, db)
	older := createMachine(t, db, author, "older rig")
	db.Exec("UPDATE machines SET timestamp = ? WHERE id = ?",
		time.Now().UTC().Add(-24*time.Hour), older.ID)
	newer := createMachine(t, db, author, "newer rig")

	list, err := machines.ListByAuthor(ctx, author)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestCinebenchOrderingAndUpdate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	revisions := NewRevisionRepo(db)
	cinebench := NewCinebenchR15Repo(db)

	author := createUser(t, db)
	m := createMachine(t, db, author, "bench rig")
	rv := model.Revision{Timestamp: time.Now().UTC(), AuthorID: author, MachineID: m.ID}
	require.NoError(t, revisions.Create(ctx, &rv))

	low := model.CinebenchR15Result{ResultDate: time.Now().UTC(), CPUCb: i64(500), RevisionID: rv.ID}
	high := model.CinebenchR15Result{ResultDate: time.Now().UTC(), CPUCb: i64(900), RevisionID: rv.ID}
	require.NoError(t, cinebench.Create(ctx, &low))
	require.NoError(t, cinebench.Create(ctx, &high))

	list, err := cinebench.ListByRevision(ctx, rv.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, high.ID, list[0].ID)
	assert.Equal(t, low.ID, list[1].ID)

	low.CPUCb = i64(950)
	require.NoError(t, cinebench.Update(ctx, low))
	list, err = cinebench.ListByRevision(ctx, rv.ID)
	require.NoError(t, err)
	assert.Equal(t, low.ID, list[0].ID)
}

func TestTokenRepoRevocation(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tokens := NewTokenRepo(db)

	jti := fmt.Sprintf("it-jti-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		db.Exec("DELETE FROM revoked_tokens WHERE jti = ?", jti)
	})

	revoked, err := tokens.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, tokens.Revoke(ctx, jti))
	// revoking twice is fine
	require.NoError(t, tokens.Revoke(ctx, jti))

	revoked, err = tokens.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}

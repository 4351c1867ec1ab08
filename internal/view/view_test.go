package view

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalrockets/rivalrockets-api/internal/model"
)

func u64p(n uint64) *uint64 { return &n }
func i64p(n int64) *int64 { return &n }
func f64p(f float64) *float64 { return &f }

func TestNewUserOmitsPasswordHash(t *testing.T) {
	v := NewUser(model.User{ID: 3, Username: "carlos", PasswordHash: "$2b$secret"})

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
	assert.NotContains(t, string(b), "password")
	assert.Equal(t, "/users/3", v.URI)
}

func TestNewUserNoMachinesKeyWithoutNesting(t *testing.T) {
	b, err := json.Marshal(NewUser(model.User{ID: 1}))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "machines")
}

func TestMachineURIAndActivePointer(t *testing.T) {
	v := NewMachine(model.Machine{ID: 9, SystemName: "Rivalrocket", ActiveRevisionID: u64p(4)})
	assert.Equal(t, "/machines/9", v.URI)
	require.NotNil(t, v.ActiveRevisionID)
	assert.Equal(t, uint64(4), *v.ActiveRevisionID)

	// null, not omitted, when no revision is active
	b, err := json.Marshal(NewMachine(model.Machine{ID: 9}))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"active_revision_id":null`)
}

func TestWithRevisionsComputesActive(t *testing.T) {
	m := model.Machine{ID: 9, ActiveRevisionID: u64p(4)}
	revs := []model.Revision{
		{ID: 7, MachineID: 9},
		{ID: 4, MachineID: 9},
	}

	v := NewMachine(m).WithRevisions(revs)

	require.Len(t, v.Revisions, 2)
	assert.False(t, v.Revisions[0].IsActive)
	assert.True(t, v.Revisions[1].IsActive)
	require.NotNil(t, v.ActiveRevision)
	assert.Equal(t, uint64(4), v.ActiveRevision.ID)
}

func TestWithRevisionsNoActivePointer(t *testing.T) {
	v := NewMachine(model.Machine{ID: 9}).WithRevisions([]model.Revision{{ID: 7}})
	assert.False(t, v.Revisions[0].IsActive)
	assert.Nil(t, v.ActiveRevision)
}

func TestRevisionNestingStaysFlat(t *testing.T) {
	rv := NewRevision(model.Revision{ID: 4, MachineID: 9}, u64p(4)).
		WithMachine(model.Machine{ID: 9, SystemName: "Rivalrocket"})

	assert.True(t, rv.IsActive)
	assert.Equal(t, "/revisions/4", rv.URI)
	require.NotNil(t, rv.Machine)
	// the embedded machine must not re-embed revisions
	assert.Nil(t, rv.Machine.Revisions)
	assert.Nil(t, rv.Machine.ActiveRevision)
}

func TestWithResults(t *testing.T) {
	rv := NewRevision(model.Revision{ID: 4}, nil).WithResults(
		[]model.CinebenchR15Result{{ID: 1, RevisionID: 4, CPUCb: i64p(880)}},
		nil,
		[]model.Futuremark3DMarkResult{{ID: 2, RevisionID: 4, FirestrikeScore: i64p(9001)}},
	)

	require.Len(t, rv.CinebenchR15Results, 1)
	assert.Equal(t, "/cinebenchr15results/1", rv.CinebenchR15Results[0].URI)
	assert.Empty(t, rv.Futuremark3DMark06Results)
	require.Len(t, rv.Futuremark3DMarkResults, 1)
	assert.Equal(t, "/futuremark3dmarkresults/2", rv.Futuremark3DMarkResults[0].URI)
}

func TestFuturemark3DMark06FpsSerialization(t *testing.T) {
	v := NewFuturemark3DMark06Result(model.Futuremark3DMark06Result{
		ID:          5,
		ResultDate:  time.Date(2007, 1, 2, 0, 0, 0, 0, time.UTC),
		ProxcyonFps: f64p(31.5),
		CPU1Fps:     f64p(1),
	})

	b, err := json.Marshal(v)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"proxcyon_fps":31.50`)
	assert.Contains(t, s, `"cpu1_fps":1.00`)
	assert.Contains(t, s, `"fireflyforest_fps":null`)
	assert.Contains(t, s, `"uri":"/futuremark3dmark06results/5"`)
}

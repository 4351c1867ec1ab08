package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }
func i64p(n int64) *int64 { return &n }

func TestMachineApplyPartial(t *testing.T) {
	m := Machine{
		SystemName:  "Rivalrocket",
		SystemNotes: "original notes",
		Owner:       "carlos",
	}

	m.Apply(MachinePatch{Owner: strp("miguel")})

	assert.Equal(t, "Rivalrocket", m.SystemName)
	assert.Equal(t, "original notes", m.SystemNotes)
	assert.Equal(t, "miguel", m.Owner)
}

func TestMachineApplyEmptyPatchIsNoop(t *testing.T) {
	m := Machine{SystemName: "Rivalrocket", Owner: "carlos"}
	before := m
	m.Apply(MachinePatch{})
	assert.Equal(t, before, m)
}

func TestMachineApplyCanSetEmptyString(t *testing.T) {
	m := Machine{SystemNotes: "something"}
	m.Apply(MachinePatch{SystemNotes: strp("")})
	assert.Equal(t, "", m.SystemNotes)
}

func TestRevisionApplyPartial(t *testing.T) {
	rv := Revision{
		CPUMake: "Intel",
		CPUName: "Core i7-4790K",
		CPUMhz:  i64p(4000),
		GPUName: "GTX 980",
	}

	rv.Apply(RevisionPatch{
		CPUMhz:  i64p(4400),
		GPUName: strp("GTX 980 Ti"),
	})

	assert.Equal(t, "Intel", rv.CPUMake)
	assert.Equal(t, "Core i7-4790K", rv.CPUName)
	assert.Equal(t, int64(4400), *rv.CPUMhz)
	assert.Equal(t, "GTX 980 Ti", rv.GPUName)
}

func TestUserApply(t *testing.T) {
	u := User{Username: "carlos", PasswordHash: "$2b$old"}
	u.Apply(UserPatch{Username: strp("carlos2")})
	assert.Equal(t, "carlos2", u.Username)
	assert.Equal(t, "$2b$old", u.PasswordHash)
}

func TestCinebenchApplyResultDate(t *testing.T) {
	d1 := time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)

	r := CinebenchR15Result{ResultDate: d1, CPUCb: i64p(880)}
	r.Apply(CinebenchR15ResultPatch{ResultDate: &d2, OpenGLFps: i64p(110)})

	assert.Equal(t, d2, r.ResultDate)
	assert.Equal(t, int64(880), *r.CPUCb)
	assert.Equal(t, int64(110), *r.OpenGLFps)
}

func TestRoleCan(t *testing.T) {
	user := Role{Permissions: PermissionPost | PermissionPut}
	admin := Role{Permissions: 0xFF}

	assert.True(t, user.Can(PermissionPost))
	assert.True(t, user.Can(PermissionPut))
	assert.False(t, user.Can(PermissionDelete))
	assert.True(t, admin.Can(PermissionAdminister))
}

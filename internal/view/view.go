// Package view projects stored entities into response payloads. Every
// projection is an explicit allow-list: a field absent from a view
// struct is never emitted no matter what the entity carries (the
// password hash being the obvious case). Nesting is nominated by the
// endpoint through the With* builders and never recurses past two
// levels, which keeps the Machine/Revision cycle out of responses.
package view

import (
	"fmt"
	"time"

	"github.com/rivalrockets/rivalrockets-api/internal/model"
)

// User is the public projection of a user. The password hash never
// leaves the model layer.
type User struct {
	ID       uint64    `json:"id"`
	Username string    `json:"username"`
	LastSeen time.Time `json:"last_seen"`
	URI      string    `json:"uri"`
	Machines []Machine `json:"machines,omitempty"`
}

// Machine is the public projection of a machine.
type Machine struct {
	ID               uint64     `json:"id"`
	SystemName       string     `json:"system_name"`
	SystemNotes      string     `json:"system_notes"`
	SystemNotesHTML  string     `json:"system_notes_html"`
	Owner            string     `json:"owner"`
	ActiveRevisionID *uint64    `json:"active_revision_id"`
	Timestamp        time.Time  `json:"timestamp"`
	AuthorID         uint64     `json:"author_id"`
	URI              string     `json:"uri"`
	ActiveRevision   *Revision  `json:"active_revision,omitempty"`
	Revisions        []Revision `json:"revisions,omitempty"`
}

// Revision is the public projection of a revision. IsActive is not
// stored; it is computed against the parent machine's active pointer at
// serialization time.
type Revision struct {
	ID                uint64    `json:"id"`
	CPUMake           string    `json:"cpu_make"`
	CPUName           string    `json:"cpu_name"`
	CPUSocket         string    `json:"cpu_socket"`
	CPUMhz            *int64    `json:"cpu_mhz"`
	CPUProcCores      *int64    `json:"cpu_proc_cores"`
	Chipset           string    `json:"chipset"`
	SystemMemoryGB    *int64    `json:"system_memory_gb"`
	SystemMemoryMhz   *int64    `json:"system_memory_mhz"`
	GPUName           string    `json:"gpu_name"`
	GPUMake           string    `json:"gpu_make"`
	GPUMemoryMB       *int64    `json:"gpu_memory_mb"`
	GPUCount          *int64    `json:"gpu_count"`
	RevisionNotes     string    `json:"revision_notes"`
	RevisionNotesHTML string    `json:"revision_notes_html"`
	PCPartPickerURL   string    `json:"pcpartpicker_url"`
	Timestamp         time.Time `json:"timestamp"`
	AuthorID          uint64    `json:"author_id"`
	MachineID         uint64    `json:"machine_id"`
	IsActive          bool      `json:"is_active_revision"`
	URI               string    `json:"uri"`

	Machine                   *Machine                   `json:"machine,omitempty"`
	CinebenchR15Results       []CinebenchR15Result       `json:"cinebenchr15results,omitempty"`
	Futuremark3DMark06Results []Futuremark3DMark06Result `json:"futuremark3dmark06results,omitempty"`
	Futuremark3DMarkResults   []Futuremark3DMarkResult   `json:"futuremark3dmarkresults,omitempty"`
}

// CinebenchR15Result is the public projection of a Cinebench R15 run.
type CinebenchR15Result struct {
	ID         uint64    `json:"id"`
	ResultDate time.Time `json:"result_date"`
	CPUCb      *int64    `json:"cpu_cb"`
	OpenGLFps  *int64    `json:"opengl_fps"`
	RevisionID uint64    `json:"revision_id"`
	URI        string    `json:"uri"`
}

// Futuremark3DMark06Result is the public projection of a 3DMark06 run.
// The fps fields serialize with exactly two decimal digits.
type Futuremark3DMark06Result struct {
	ID               uint64    `json:"id"`
	ResultDate       time.Time `json:"result_date"`
	SM2Score         *int64    `json:"sm2_score"`
	CPUScore         *int64    `json:"cpu_score"`
	SM3Score         *int64    `json:"sm3_score"`
	ProxcyonFps      *Fixed2   `json:"proxcyon_fps"`
	FireflyforestFps *Fixed2   `json:"fireflyforest_fps"`
	CPU1Fps          *Fixed2   `json:"cpu1_fps"`
	CPU2Fps          *Fixed2   `json:"cpu2_fps"`
	CanyonflightFps  *Fixed2   `json:"canyonflight_fps"`
	DeepfreezeFps    *Fixed2   `json:"deepfreeze_fps"`
	OverallScore     *int64    `json:"overall_score"`
	ResultURL        string    `json:"result_url"`
	RevisionID       uint64    `json:"revision_id"`
	URI              string    `json:"uri"`
}

// Futuremark3DMarkResult is the public projection of a 3DMark run.
type Futuremark3DMarkResult struct {
	ID                  uint64    `json:"id"`
	ResultDate          time.Time `json:"result_date"`
	IcestormScore       *int64    `json:"icestorm_score"`
	IcestormResultURL   string    `json:"icestorm_result_url"`
	CloudgateScore      *int64    `json:"cloudgate_score"`
	CloudgateResultURL  string    `json:"cloudgate_result_url"`
	FirestrikeScore     *int64    `json:"firestrike_score"`
	FirestrikeResultURL string    `json:"firestrike_result_url"`
	SkydiverScore       *int64    `json:"skydiver_score"`
	SkydiverResultURL   string    `json:"skydiver_result_url"`
	OverallResultURL    string    `json:"overall_result_url"`
	RevisionID          uint64    `json:"revision_id"`
	URI                 string    `json:"uri"`
}

// NewUser projects a user without nesting.
func NewUser(u model.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		LastSeen: u.LastSeen,
		URI:      fmt.Sprintf("/users/%d", u.ID),
	}
}

// NewUsers projects a list of users.
func NewUsers(us []model.User) []User {
	out := make([]User, 0, len(us))
	for _, u := range us {
		out = append(out, NewUser(u))
	}
	return out
}

// WithMachines embeds the machines a user authored.
func (v User) WithMachines(ms []model.Machine) User {
	v.Machines = NewMachines(ms)
	return v
}

// NewMachine projects a machine without nesting.
func NewMachine(m model.Machine) Machine {
	return Machine{
		ID:               m.ID,
		SystemName:       m.SystemName,
		SystemNotes:      m.SystemNotes,
		SystemNotesHTML:  m.SystemNotesHTML,
		Owner:            m.Owner,
		ActiveRevisionID: m.ActiveRevisionID,
		Timestamp:        m.Timestamp,
		AuthorID:         m.AuthorID,
		URI:              fmt.Sprintf("/machines/%d", m.ID),
	}
}

// NewMachines projects a list of machines.
func NewMachines(ms []model.Machine) []Machine {
	out := make([]Machine, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMachine(m))
	}
	return out
}

// WithRevisions embeds a machine's revision list and, when the active
// pointer resolves to one of them, the active revision itself.
func (v Machine) WithRevisions(revs []model.Revision) Machine {
	v.Revisions = NewRevisions(revs, v.ActiveRevisionID)
	for i := range v.Revisions {
		if v.Revisions[i].IsActive {
			active := v.Revisions[i]
			v.ActiveRevision = &active
			break
		}
	}
	return v
}

// NewRevision projects a revision. activeID is the parent machine's
// active pointer; passing it lets the view compute IsActive without
// another read.
func NewRevision(r model.Revision, activeID *uint64) Revision {
	return Revision{
		ID:                r.ID,
		CPUMake:           r.CPUMake,
		CPUName:           r.CPUName,
		CPUSocket:         r.CPUSocket,
		CPUMhz:            r.CPUMhz,
		CPUProcCores:      r.CPUProcCores,
		Chipset:           r.Chipset,
		SystemMemoryGB:    r.SystemMemoryGB,
		SystemMemoryMhz:   r.SystemMemoryMhz,
		GPUName:           r.GPUName,
		GPUMake:           r.GPUMake,
		GPUMemoryMB:       r.GPUMemoryMB,
		GPUCount:          r.GPUCount,
		RevisionNotes:     r.RevisionNotes,
		RevisionNotesHTML: r.RevisionNotesHTML,
		PCPartPickerURL:   r.PCPartPickerURL,
		Timestamp:         r.Timestamp,
		AuthorID:          r.AuthorID,
		MachineID:         r.MachineID,
		IsActive:          activeID != nil && *activeID == r.ID,
		URI:               fmt.Sprintf("/revisions/%d", r.ID),
	}
}

// NewRevisions projects a list of revisions sharing one parent machine.
func NewRevisions(rs []model.Revision, activeID *uint64) []Revision {
	out := make([]Revision, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewRevision(r, activeID))
	}
	return out
}

// WithMachine embeds the parent machine, flat.
func (v Revision) WithMachine(m model.Machine) Revision {
	flat := NewMachine(m)
	v.Machine = &flat
	return v
}

// WithResults embeds the revision's three benchmark result lists.
func (v Revision) WithResults(cb []model.CinebenchR15Result, fm06 []model.Futuremark3DMark06Result, fm []model.Futuremark3DMarkResult) Revision {
	v.CinebenchR15Results = NewCinebenchR15Results(cb)
	v.Futuremark3DMark06Results = NewFuturemark3DMark06Results(fm06)
	v.Futuremark3DMarkResults = NewFuturemark3DMarkResults(fm)
	return v
}

// NewCinebenchR15Result projects a Cinebench R15 result.
func NewCinebenchR15Result(r model.CinebenchR15Result) CinebenchR15Result {
	return CinebenchR15Result{
		ID:         r.ID,
		ResultDate: r.ResultDate,
		CPUCb:      r.CPUCb,
		OpenGLFps:  r.OpenGLFps,
		RevisionID: r.RevisionID,
		URI:        fmt.Sprintf("/cinebenchr15results/%d", r.ID),
	}
}

// NewCinebenchR15Results projects a list of Cinebench R15 results.
func NewCinebenchR15Results(rs []model.CinebenchR15Result) []CinebenchR15Result {
	out := make([]CinebenchR15Result, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewCinebenchR15Result(r))
	}
	return out
}

// NewFuturemark3DMark06Result projects a 3DMark06 result.
func NewFuturemark3DMark06Result(r model.Futuremark3DMark06Result) Futuremark3DMark06Result {
	return Futuremark3DMark06Result{
		ID:               r.ID,
		ResultDate:       r.ResultDate,
		SM2Score:         r.SM2Score,
		CPUScore:         r.CPUScore,
		SM3Score:         r.SM3Score,
		ProxcyonFps:      NewFixed2(r.ProxcyonFps),
		FireflyforestFps: NewFixed2(r.FireflyforestFps),
		CPU1Fps:          NewFixed2(r.CPU1Fps),
		CPU2Fps:          NewFixed2(r.CPU2Fps),
		CanyonflightFps:  NewFixed2(r.CanyonflightFps),
		DeepfreezeFps:    NewFixed2(r.DeepfreezeFps),
		OverallScore:     r.OverallScore,
		ResultURL:        r.ResultURL,
		RevisionID:       r.RevisionID,
		URI:              fmt.Sprintf("/futuremark3dmark06results/%d", r.ID),
	}
}

// NewFuturemark3DMark06Results projects a list of 3DMark06 results.
func NewFuturemark3DMark06Results(rs []model.Futuremark3DMark06Result) []Futuremark3DMark06Result {
	out := make([]Futuremark3DMark06Result, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewFuturemark3DMark06Result(r))
	}
	return out
}

// NewFuturemark3DMarkResult projects a 3DMark result.
func NewFuturemark3DMarkResult(r model.Futuremark3DMarkResult) Futuremark3DMarkResult {
	return Futuremark3DMarkResult{
		ID:                  r.ID,
		ResultDate:          r.ResultDate,
		IcestormScore:       r.IcestormScore,
		IcestormResultURL:   r.IcestormResultURL,
		CloudgateScore:      r.CloudgateScore,
		CloudgateResultURL:  r.CloudgateResultURL,
		FirestrikeScore:     r.FirestrikeScore,
		FirestrikeResultURL: r.FirestrikeResultURL,
		SkydiverScore:       r.SkydiverScore,
		SkydiverResultURL:   r.SkydiverResultURL,
		OverallResultURL:    r.OverallResultURL,
		RevisionID:          r.RevisionID,
		URI:                 fmt.Sprintf("/futuremark3dmarkresults/%d", r.ID),
	}
}

// NewFuturemark3DMarkResults projects a list of 3DMark results.
func NewFuturemark3DMarkResults(rs []model.Futuremark3DMarkResult) []Futuremark3DMarkResult {
	out := make([]Futuremark3DMarkResult, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewFuturemark3DMarkResult(r))
	}
	return out
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rivalrockets/rivalrockets-api/internal/middleware"
	"github.com/rivalrockets/rivalrockets-api/internal/model"
	"github.com/rivalrockets/rivalrockets-api/internal/repository"
	"github.com/rivalrockets/rivalrockets-api/internal/utils"
	"github.com/rivalrockets/rivalrockets-api/internal/view"
)

// RevisionHandler serves the revision resource, nested under machines
// for list/create and top-level for the rest.
type RevisionHandler struct {
	Machines  *repository.MachineRepo
	Revisions *repository.RevisionRepo
	Cinebench *repository.CinebenchR15Repo
	FM06      *repository.Futuremark3DMark06Repo
	FM3D      *repository.Futuremark3DMarkRepo
}

func NewRevisionHandler(m *repository.MachineRepo, r *repository.RevisionRepo,
	cb *repository.CinebenchR15Repo, fm06 *repository.Futuremark3DMark06Repo,
	fm3d *repository.Futuremark3DMarkRepo) *RevisionHandler {
	return &RevisionHandler{Machines: m, Revisions: r, Cinebench: cb, FM06: fm06, FM3D: fm3d}
}

// List handles GET /revisions: every revision across all machines,
// newest first. The active flag cannot be computed without each parent
// machine, so this flat list reports it per element by joining against
// the machine's pointer lazily; a revision is active when its machine
// points at it.
func (h *RevisionHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	revisions, err := h.Revisions.List(ctx)
	if err != nil {
		return repoErr(c, err)
	}
	// One pass over the machines involved keeps this at two queries.
	active := map[uint64]*uint64{}
	machines, err := h.Machines.List(ctx)
	if err != nil {
		return repoErr(c, err)
	}
	for _, m := range machines {
		active[m.ID] = m.ActiveRevisionID
	}
	out := make([]view.Revision, 0, len(revisions))
	for _, rv := range revisions {
		out = append(out, view.NewRevision(rv, active[rv.MachineID]))
	}
	return c.JSON(http.StatusOK, echo.Map{"revisions": out})
}

// ListByMachine handles GET /machines/:id/revisions, newest first.
func (h *RevisionHandler) ListByMachine(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	m, err := h.Machines.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	revisions, err := h.Revisions.ListByMachine(ctx, m.ID)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"revisions": view.NewRevisions(revisions, m.ActiveRevisionID)})
}

type revisionCreateReq struct {
	CPUMake         *string `json:"cpu_make"`
	CPUName         *string `json:"cpu_name"`
	CPUSocket       *string `json:"cpu_socket"`
	CPUMhz          *int64  `json:"cpu_mhz"`
	CPUProcCores    *int64  `json:"cpu_proc_cores"`
	Chipset         *string `json:"chipset"`
	SystemMemoryGB  *int64  `json:"system_memory_gb"`
	SystemMemoryMhz *int64  `json:"system_memory_mhz"`
	GPUName         *string `json:"gpu_name"`
	GPUMake         *string `json:"gpu_make"`
	GPUMemoryMB     *int64  `json:"gpu_memory_mb"`
	GPUCount        *int64  `json:"gpu_count"`
	RevisionNotes   *string `json:"revision_notes"`
	PCPartPickerURL *string `json:"pcpartpicker_url"`
	Timestamp       *string `json:"timestamp"`
}

// Create handles POST /machines/:id/revisions. After the insert commits
// the parent machine's active pointer moves to the new revision; a
// failure between the two commits leaves the pointer on the previous
// revision, which is accepted rather than rolled back.
func (h *RevisionHandler) Create(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req revisionCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ts := time.Now().UTC()
	if req.Timestamp != nil {
		if ts, err = parseDate(*req.Timestamp); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid timestamp"})
		}
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	m, err := h.Machines.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}

	rv := model.Revision{
		Timestamp: ts,
		AuthorID:  ident.UserID,
		MachineID: m.ID,
	}
	rv.Apply(model.RevisionPatch{
		CPUMake:         req.CPUMake,
		CPUName:         req.CPUName,
		CPUSocket:       req.CPUSocket,
		CPUMhz:          req.CPUMhz,
		CPUProcCores:    req.CPUProcCores,
		Chipset:         req.Chipset,
		SystemMemoryGB:  req.SystemMemoryGB,
		SystemMemoryMhz: req.SystemMemoryMhz,
		GPUName:         req.GPUName,
		GPUMake:         req.GPUMake,
		GPUMemoryMB:     req.GPUMemoryMB,
		GPUCount:        req.GPUCount,
		RevisionNotes:   req.RevisionNotes,
		PCPartPickerURL: req.PCPartPickerURL,
	})
	if req.RevisionNotes != nil {
		rv.RevisionNotesHTML = utils.RenderMarkdown(*req.RevisionNotes)
	}

	if err := h.Revisions.Create(ctx, &rv); err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"revision": view.NewRevision(rv, &rv.ID)})
}

// Get handles GET /revisions/:id, embedding the parent machine and the
// three benchmark result lists.
func (h *RevisionHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	rv, err := h.Revisions.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	m, err := h.Machines.GetByID(ctx, rv.MachineID)
	if err != nil {
		return repoErr(c, err)
	}
	cb, err := h.Cinebench.ListByRevision(ctx, rv.ID)
	if err != nil {
		return repoErr(c, err)
	}
	fm06, err := h.FM06.ListByRevision(ctx, rv.ID)
	if err != nil {
		return repoErr(c, err)
	}
	fm3d, err := h.FM3D.ListByRevision(ctx, rv.ID)
	if err != nil {
		return repoErr(c, err)
	}
	v := view.NewRevision(rv, m.ActiveRevisionID).WithMachine(m).WithResults(cb, fm06, fm3d)
	return c.JSON(http.StatusOK, echo.Map{"revision": v})
}

// Update handles PUT /revisions/:id; author-only partial update.
func (h *RevisionHandler) Update(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	rv, err := h.Revisions.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	if rv.AuthorID != ident.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req revisionCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	patch := model.RevisionPatch{
		CPUMake:         req.CPUMake,
		CPUName:         req.CPUName,
		CPUSocket:       req.CPUSocket,
		CPUMhz:          req.CPUMhz,
		CPUProcCores:    req.CPUProcCores,
		Chipset:         req.Chipset,
		SystemMemoryGB:  req.SystemMemoryGB,
		SystemMemoryMhz: req.SystemMemoryMhz,
		GPUName:         req.GPUName,
		GPUMake:         req.GPUMake,
		GPUMemoryMB:     req.GPUMemoryMB,
		GPUCount:        req.GPUCount,
		RevisionNotes:   req.RevisionNotes,
		PCPartPickerURL: req.PCPartPickerURL,
	}
	if req.RevisionNotes != nil {
		html := utils.RenderMarkdown(*req.RevisionNotes)
		patch.RevisionNotesHTML = &html
	}
	rv.Apply(patch)
	if err := h.Revisions.Update(ctx, rv); err != nil {
		return repoErr(c, err)
	}

	m, err := h.Machines.GetByID(ctx, rv.MachineID)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"revision": view.NewRevision(rv, m.ActiveRevisionID)})
}

// Delete handles DELETE /revisions/:id. Benchmark results under the
// revision go with it; a machine pointing at it falls back to no active
// revision.
func (h *RevisionHandler) Delete(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	rv, err := h.Revisions.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	if rv.AuthorID != ident.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Revisions.Delete(ctx, id); err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true})
}

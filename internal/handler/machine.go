package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rivalrockets/rivalrockets-api/internal/middleware"
	"github.com/rivalrockets/rivalrockets-api/internal/model"
	"github.com/rivalrockets/rivalrockets-api/internal/repository"
	"github.com/rivalrockets/rivalrockets-api/internal/utils"
	"github.com/rivalrockets/rivalrockets-api/internal/view"
)

// MachineHandler serves the machine resource.
type MachineHandler struct {
	Machines  *repository.MachineRepo
	Revisions *repository.RevisionRepo
}

func NewMachineHandler(m *repository.MachineRepo, r *repository.RevisionRepo) *MachineHandler {
	return &MachineHandler{Machines: m, Revisions: r}
}

// List handles GET /machines, newest first, flat projection.
func (h *MachineHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	machines, err := h.Machines.List(ctx)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"machines": view.NewMachines(machines)})
}

type machineCreateReq struct {
	SystemName  string  `json:"system_name"`
	SystemNotes string  `json:"system_notes"`
	Owner       string  `json:"owner"`
	Timestamp   *string `json:"timestamp"`
}

// Create handles POST /machines. The authenticated caller becomes the
// author; authorship never changes afterwards.
func (h *MachineHandler) Create(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
	}
	var req machineCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.SystemName = strings.TrimSpace(req.SystemName)
	if req.SystemName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no machine name provided"})
	}

	ts := time.Now().UTC()
	if req.Timestamp != nil {
		var err error
		if ts, err = parseDate(*req.Timestamp); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid timestamp"})
		}
	}

	m := model.Machine{
		SystemName:      req.SystemName,
		SystemNotes:     req.SystemNotes,
		SystemNotesHTML: utils.RenderMarkdown(req.SystemNotes),
		Owner:           req.Owner,
		Timestamp:       ts,
		AuthorID:        ident.UserID,
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Machines.Create(ctx, &m); err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"machine": view.NewMachine(m)})
}

// Get handles GET /machines/:id, embedding the revision list and the
// active revision.
func (h *MachineHandler) Get(c echo.Context) error {
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
	return c.JSON(http.StatusOK, echo.Map{"machine": view.NewMachine(m).WithRevisions(revisions)})
}

type machineUpdateReq struct {
	SystemName  *string `json:"system_name"`
	SystemNotes *string `json:"system_notes"`
	Owner       *string `json:"owner"`
}

// Update handles PUT /machines/:id. Partial update: only fields present
// in the request change, and only the author may change them.
func (h *MachineHandler) Update(c echo.Context) error {
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

	m, err := h.Machines.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	if m.AuthorID != ident.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req machineUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	patch := model.MachinePatch{
		SystemName:  req.SystemName,
		SystemNotes: req.SystemNotes,
		Owner:       req.Owner,
	}
	if req.SystemNotes != nil {
		html := utils.RenderMarkdown(*req.SystemNotes)
		patch.SystemNotesHTML = &html
	}
	m.Apply(patch)
	if err := h.Machines.Update(ctx, m); err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"machine": view.NewMachine(m)})
}

// Delete handles DELETE /machines/:id. Removes the machine, its
// revisions and every benchmark result under them.
func (h *MachineHandler) Delete(c echo.Context) error {
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

	m, err := h.Machines.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	if m.AuthorID != ident.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Machines.Delete(ctx, id); err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true})
}

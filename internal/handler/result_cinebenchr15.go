package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rivalrockets/rivalrockets-api/internal/middleware"
	"github.com/rivalrockets/rivalrockets-api/internal/model"
	"github.com/rivalrockets/rivalrockets-api/internal/queue"
	"github.com/rivalrockets/rivalrockets-api/internal/repository"
	"github.com/rivalrockets/rivalrockets-api/internal/service"
	"github.com/rivalrockets/rivalrockets-api/internal/view"
)

// CinebenchR15Handler serves the Cinebench R15 result resource.
type CinebenchR15Handler struct {
	Results   *repository.CinebenchR15Repo
	Revisions *repository.RevisionRepo
	Machines  *repository.MachineRepo
}

func NewCinebenchR15Handler(res *repository.CinebenchR15Repo, rev *repository.RevisionRepo, m *repository.MachineRepo) *CinebenchR15Handler {
	return &CinebenchR15Handler{Results: res, Revisions: rev, Machines: m}
}

// List handles GET /cinebenchr15results, best CPU score first.
func (h *CinebenchR15Handler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	results, err := h.Results.List(ctx)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cinebenchr15results": view.NewCinebenchR15Results(results)})
}

// ListByRevision handles GET /revisions/:id/cinebenchr15results.
func (h *CinebenchR15Handler) ListByRevision(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Revisions.GetByID(ctx, id); err != nil {
		return repoErr(c, err)
	}
	results, err := h.Results.ListByRevision(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cinebenchr15results": view.NewCinebenchR15Results(results)})
}

type cinebenchReq struct {
	ResultDate *string `json:"result_date"`
	CPUCb      *int64  `json:"cpu_cb"`
	OpenGLFps  *int64  `json:"opengl_fps"`
}

// Create handles POST /revisions/:id/cinebenchr15results. The submitter
// must own the parent revision; a benchmark.submitted event goes out
// after the insert, best effort.
func (h *CinebenchR15Handler) Create(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req cinebenchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
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

	date := time.Now().UTC()
	if req.ResultDate != nil {
		if date, err = parseDate(*req.ResultDate); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid result_date"})
		}
	}
	res := model.CinebenchR15Result{
		ResultDate: date,
		CPUCb:      req.CPUCb,
		OpenGLFps:  req.OpenGLFps,
		RevisionID: rv.ID,
	}
	if err := h.Results.Create(ctx, &res); err != nil {
		return repoErr(c, err)
	}

	h.publish(rv, res)
	return c.JSON(http.StatusCreated, echo.Map{"cinebenchr15result": view.NewCinebenchR15Result(res)})
}

// Get handles GET /cinebenchr15results/:id.
func (h *CinebenchR15Handler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	res, err := h.Results.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cinebenchr15result": view.NewCinebenchR15Result(res)})
}

// Update handles PUT /cinebenchr15results/:id; partial update gated on
// owning the parent revision.
func (h *CinebenchR15Handler) Update(c echo.Context) error {
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

	res, err := h.Results.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	rv, err := h.Revisions.GetByID(ctx, res.RevisionID)
	if err != nil {
		return repoErr(c, err)
	}
	if rv.AuthorID != ident.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req cinebenchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	patch := model.CinebenchR15ResultPatch{CPUCb: req.CPUCb, OpenGLFps: req.OpenGLFps}
	if req.ResultDate != nil {
		date, err := parseDate(*req.ResultDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid result_date"})
		}
		patch.ResultDate = &date
	}
	res.Apply(patch)
	if err := h.Results.Update(ctx, res); err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cinebenchr15result": view.NewCinebenchR15Result(res)})
}

// Delete handles DELETE /cinebenchr15results/:id.
func (h *CinebenchR15Handler) Delete(c echo.Context) error {
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

	res, err := h.Results.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	rv, err := h.Revisions.GetByID(ctx, res.RevisionID)
	if err != nil {
		return repoErr(c, err)
	}
	if rv.AuthorID != ident.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Results.Delete(ctx, id); err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true})
}

// publish fires the benchmark.submitted event off the request path.
func (h *CinebenchR15Handler) publish(rv model.Revision, res model.CinebenchR15Result) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		systemName := ""
		if m, err := h.Machines.GetByID(ctx, rv.MachineID); err == nil {
			systemName = m.SystemName
		}
		_ = service.PublishBenchmarkSubmitted(ctx, queue.BenchmarkSubmittedEvent{
			Kind:        "cinebenchr15",
			ResultID:    res.ID,
			RevisionID:  rv.ID,
			MachineID:   rv.MachineID,
			SystemName:  systemName,
			AuthorID:    rv.AuthorID,
			Score:       res.CPUCb,
			SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()
}

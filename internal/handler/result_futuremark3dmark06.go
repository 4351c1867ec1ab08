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

// Futuremark3DMark06Handler serves the 3DMark06 result resource.
type Futuremark3DMark06Handler struct {
	Results   *repository.Futuremark3DMark06Repo
	Revisions *repository.RevisionRepo
	Machines  *repository.MachineRepo
}

func NewFuturemark3DMark06Handler(res *repository.Futuremark3DMark06Repo, rev *repository.RevisionRepo, m *repository.MachineRepo) *Futuremark3DMark06Handler {
	return &Futuremark3DMark06Handler{Results: res, Revisions: rev, Machines: m}
}

// List handles GET /futuremark3dmark06results, highest overall first.
func (h *Futuremark3DMark06Handler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	results, err := h.Results.List(ctx)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"futuremark3dmark06results": view.NewFuturemark3DMark06Results(results)})
}

// ListByRevision handles GET /revisions/:id/futuremark3dmark06results.
func (h *Futuremark3DMark06Handler) ListByRevision(c echo.Context) error {
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
	return c.JSON(http.StatusOK, echo.Map{"futuremark3dmark06results": view.NewFuturemark3DMark06Results(results)})
}

type futuremark06Req struct {
	ResultDate       *string  `json:"result_date"`
	SM2Score         *int64   `json:"sm2_score"`
	CPUScore         *int64   `json:"cpu_score"`
	SM3Score         *int64   `json:"sm3_score"`
	OverallScore     *int64   `json:"overall_score"`
	ProxcyonFps      *float64 `json:"proxcyon_fps"`
	FireflyforestFps *float64 `json:"fireflyforest_fps"`
	CPU1Fps          *float64 `json:"cpu1_fps"`
	CPU2Fps          *float64 `json:"cpu2_fps"`
	CanyonflightFps  *float64 `json:"canyonflight_fps"`
	DeepfreezeFps    *float64 `json:"deepfreeze_fps"`
	ResultURL        *string  `json:"result_url"`
}

func (r futuremark06Req) patch() model.Futuremark3DMark06ResultPatch {
	return model.Futuremark3DMark06ResultPatch{
		SM2Score:         r.SM2Score,
		CPUScore:         r.CPUScore,
		SM3Score:         r.SM3Score,
		OverallScore:     r.OverallScore,
		ProxcyonFps:      r.ProxcyonFps,
		FireflyforestFps: r.FireflyforestFps,
		CPU1Fps:          r.CPU1Fps,
		CPU2Fps:          r.CPU2Fps,
		CanyonflightFps:  r.CanyonflightFps,
		DeepfreezeFps:    r.DeepfreezeFps,
		ResultURL:        r.ResultURL,
	}
}

// Create handles POST /revisions/:id/futuremark3dmark06results.
func (h *Futuremark3DMark06Handler) Create(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req futuremark06Req
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
	res := model.Futuremark3DMark06Result{ResultDate: date, RevisionID: rv.ID}
	res.Apply(req.patch())
	if err := h.Results.Create(ctx, &res); err != nil {
		return repoErr(c, err)
	}

	h.publish(rv, res)
	return c.JSON(http.StatusCreated, echo.Map{"futuremark3dmark06result": view.NewFuturemark3DMark06Result(res)})
}

// Get handles GET /futuremark3dmark06results/:id.
func (h *Futuremark3DMark06Handler) Get(c echo.Context) error {
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
	return c.JSON(http.StatusOK, echo.Map{"futuremark3dmark06result": view.NewFuturemark3DMark06Result(res)})
}

// Update handles PUT /futuremark3dmark06results/:id.
func (h *Futuremark3DMark06Handler) Update(c echo.Context) error {
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

	var req futuremark06Req
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	patch := req.patch()
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
	return c.JSON(http.StatusOK, echo.Map{"futuremark3dmark06result": view.NewFuturemark3DMark06Result(res)})
}

// Delete handles DELETE /futuremark3dmark06results/:id.
func (h *Futuremark3DMark06Handler) Delete(c echo.Context) error {
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

func (h *Futuremark3DMark06Handler) publish(rv model.Revision, res model.Futuremark3DMark06Result) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		systemName := ""
		if m, err := h.Machines.GetByID(ctx, rv.MachineID); err == nil {
			systemName = m.SystemName
		}
		_ = service.PublishBenchmarkSubmitted(ctx, queue.BenchmarkSubmittedEvent{
			Kind:        "futuremark3dmark06",
			ResultID:    res.ID,
			RevisionID:  rv.ID,
			MachineID:   rv.MachineID,
			SystemName:  systemName,
			AuthorID:    rv.AuthorID,
			Score:       res.OverallScore,
			SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()
}

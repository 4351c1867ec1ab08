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

// Futuremark3DMarkHandler serves the modern 3DMark result resource.
type Futuremark3DMarkHandler struct {
	Results   *repository.Futuremark3DMarkRepo
	Revisions *repository.RevisionRepo
	Machines  *repository.MachineRepo
}

func NewFuturemark3DMarkHandler(res *repository.Futuremark3DMarkRepo, rev *repository.RevisionRepo, m *repository.MachineRepo) *Futuremark3DMarkHandler {
	return &Futuremark3DMarkHandler{Results: res, Revisions: rev, Machines: m}
}

// List handles GET /futuremark3dmarkresults, ranked by Fire Strike.
func (h *Futuremark3DMarkHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	results, err := h.Results.List(ctx)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"futuremark3dmarkresults": view.NewFuturemark3DMarkResults(results)})
}

// ListByRevision handles GET /revisions/:id/futuremark3dmarkresults.
func (h *Futuremark3DMarkHandler) ListByRevision(c echo.Context) error {
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
	return c.JSON(http.StatusOK, echo.Map{"futuremark3dmarkresults": view.NewFuturemark3DMarkResults(results)})
}

type futuremarkReq struct {
	ResultDate          *string `json:"result_date"`
	IcestormScore       *int64  `json:"icestorm_score"`
	IcestormResultURL   *string `json:"icestorm_result_url"`
	CloudgateScore      *int64  `json:"cloudgate_score"`
	CloudgateResultURL  *string `json:"cloudgate_result_url"`
	FirestrikeScore     *int64  `json:"firestrike_score"`
	FirestrikeResultURL *string `json:"firestrike_result_url"`
	SkydiverScore       *int64  `json:"skydiver_score"`
	SkydiverResultURL   *string `json:"skydiver_result_url"`
	OverallResultURL    *string `json:"overall_result_url"`
}

func (r futuremarkReq) patch() model.Futuremark3DMarkResultPatch {
	return model.Futuremark3DMarkResultPatch{
		IcestormScore:       r.IcestormScore,
		IcestormResultURL:   r.IcestormResultURL,
		CloudgateScore:      r.CloudgateScore,
		CloudgateResultURL:  r.CloudgateResultURL,
		FirestrikeScore:     r.FirestrikeScore,
		FirestrikeResultURL: r.FirestrikeResultURL,
		SkydiverScore:       r.SkydiverScore,
		SkydiverResultURL:   r.SkydiverResultURL,
		OverallResultURL:    r.OverallResultURL,
	}
}

// Create handles POST /revisions/:id/futuremark3dmarkresults.
func (h *Futuremark3DMarkHandler) Create(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req futuremarkReq
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
	res := model.Futuremark3DMarkResult{ResultDate: date, RevisionID: rv.ID}
	res.Apply(req.patch())
	if err := h.Results.Create(ctx, &res); err != nil {
		return repoErr(c, err)
	}

	h.publish(rv, res)
	return c.JSON(http.StatusCreated, echo.Map{"futuremark3dmarkresult": view.NewFuturemark3DMarkResult(res)})
}

// Get handles GET /futuremark3dmarkresults/:id.
func (h *Futuremark3DMarkHandler) Get(c echo.Context) error {
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
	return c.JSON(http.StatusOK, echo.Map{"futuremark3dmarkresult": view.NewFuturemark3DMarkResult(res)})
}

// Update handles PUT /futuremark3dmarkresults/:id.
func (h *Futuremark3DMarkHandler) Update(c echo.Context) error {
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

	var req futuremarkReq
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
	return c.JSON(http.StatusOK, echo.Map{"futuremark3dmarkresult": view.NewFuturemark3DMarkResult(res)})
}

// Delete handles DELETE /futuremark3dmarkresults/:id.
func (h *Futuremark3DMarkHandler) Delete(c echo.Context) error {
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

func (h *Futuremark3DMarkHandler) publish(rv model.Revision, res model.Futuremark3DMarkResult) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		systemName := ""
		if m, err := h.Machines.GetByID(ctx, rv.MachineID); err == nil {
			systemName = m.SystemName
		}
		_ = service.PublishBenchmarkSubmitted(ctx, queue.BenchmarkSubmittedEvent{
			Kind:        "futuremark3dmark",
			ResultID:    res.ID,
			RevisionID:  rv.ID,
			MachineID:   rv.MachineID,
			SystemName:  systemName,
			AuthorID:    rv.AuthorID,
			Score:       res.FirestrikeScore,
			SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()
}

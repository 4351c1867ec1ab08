package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rivalrockets/rivalrockets-api/internal/config"
	"github.com/rivalrockets/rivalrockets-api/internal/middleware"
	"github.com/rivalrockets/rivalrockets-api/internal/model"
	"github.com/rivalrockets/rivalrockets-api/internal/repository"
	"github.com/rivalrockets/rivalrockets-api/internal/utils"
	"github.com/rivalrockets/rivalrockets-api/internal/view"
)

// UserHandler serves registration and the user resource.
type UserHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Machines *repository.MachineRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, m *repository.MachineRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Machines: m}
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": view.NewUsers(users)})
}

// Register handles POST /users. Registration is open; new users get the
// default role.
func (h *UserHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Username, hash)
	if err != nil {
		return repoErr(c, err)
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": view.NewUser(u)})
}

// Get handles GET /users/:id, embedding the machines the user authored.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	machines, err := h.Machines.ListByAuthor(ctx, u.ID)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": view.NewUser(u).WithMachines(machines)})
}

type userUpdateReq struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Update handles PUT /users/:id. Self-service only: a caller may change
// their own username and/or password. Anyone else gets a 403 carrying
// the target's unmodified public record instead of an error envelope.
func (h *UserHandler) Update(c echo.Context) error {
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

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	if ident.UserID != u.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"user": view.NewUser(u)})
	}

	var req userUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	patch := model.UserPatch{Username: req.Username}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
		}
		patch.PasswordHash = &hash
	}
	u.Apply(patch)
	if err := h.Users.Update(ctx, u); err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": view.NewUser(u)})
}

// ListMachines handles GET /users/:id/machines.
func (h *UserHandler) ListMachines(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		return repoErr(c, err)
	}
	machines, err := h.Machines.ListByAuthor(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"machines": view.NewMachines(machines)})
}

package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rivalrockets/rivalrockets-api/internal/config"
	"github.com/rivalrockets/rivalrockets-api/internal/repository"
	"github.com/rivalrockets/rivalrockets-api/internal/utils"
)

// AuthHandler bundles dependencies for the token lifecycle endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and hands out an access/refresh pair. Both
// are signed JWTs carrying a jti; the refresh token can later be
// revoked on its own. A successful login also updates last_seen.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		// Same answer for unknown user and wrong password.
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewToken(h.Cfg.JWTSecret, u.ID, u.Username, utils.TokenTypeAccess, h.Cfg.AccessTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewToken(h.Cfg.JWTSecret, u.ID, u.Username, utils.TokenTypeRefresh, h.Cfg.RefreshTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	_ = h.Users.TouchLastSeen(ctx, u.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "logged in as " + u.Username,
		"access_token":  access.Token,
		"refresh_token": refresh.Token,
	})
}

// TokenRefresh exchanges a valid refresh token for a new access token.
// The refresh token is not rotated; it stays usable until it expires or
// is revoked via logout.
func (h *AuthHandler) TokenRefresh(c echo.Context) error {
	claims, ok := h.bearerClaims(c)
	if !ok || claims.Type != utils.TokenTypeRefresh {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	revoked, err := h.Tokens.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token check failed"})
	}
	if revoked {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
	}

	access, err := utils.NewToken(h.Cfg.JWTSecret, claims.UserID, claims.Username, utils.TokenTypeAccess, h.Cfg.AccessTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"access_token": access.Token})
}

// Logout adds the presented token's jti to the deny-list. Either token
// type may be revoked; clients typically call this twice, once per
// token. Revocation is durable and permanent.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := h.bearerClaims(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Tokens.Revoke(ctx, claims.JTI); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "token revoked"})
}

// bearerClaims parses the Authorization header without requiring a
// particular token type; TokenRefresh and Logout decide what they
// accept. Verification still fails closed on anything invalid.
func (h *AuthHandler) bearerClaims(c echo.Context) (utils.Claims, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return utils.Claims{}, false
	}
	claims, err := utils.ParseToken(h.Cfg.JWTSecret, strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return utils.Claims{}, false
	}
	return claims, true
}

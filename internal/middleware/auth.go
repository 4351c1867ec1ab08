package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rivalrockets/rivalrockets-api/internal/utils"
)

// Identity is the authenticated caller, threaded explicitly through the
// request context instead of living in any ambient global. Handlers
// read it back with IdentityFrom.
type Identity struct {
	UserID   uint64
	Username string
	JTI      string
}

const identityKey = "identity"

// RevocationStore is the deny-list lookup the middleware needs;
// *repository.TokenRepo satisfies it.
type RevocationStore interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RequireAuth returns middleware that admits only requests carrying a
// valid, unrevoked access token. Failures answer 403 rather than 401 so
// browsers never pop a credential dialog, and the response is the same
// for missing, forged, expired and revoked tokens: the caller learns
// nothing about which check tripped.
func RequireAuth(secret string, tokens RevocationStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseToken(secret, raw)
			if err != nil || claims.Type != utils.TokenTypeAccess {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
			}

			// Read-through to storage on every request; no cache, so a
			// logout is effective immediately.
			revoked, err := tokens.IsRevoked(c.Request().Context(), claims.JTI)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token check failed"})
			}
			if revoked {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized access"})
			}

			c.Set(identityKey, Identity{
				UserID:   claims.UserID,
				Username: claims.Username,
				JTI:      claims.JTI,
			})
			return next(c)
		}
	}
}

// IdentityFrom returns the authenticated identity stored by
// RequireAuth. The second return is false on routes that never passed
// through the middleware.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

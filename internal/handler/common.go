// Package handler implements the HTTP surface. Handlers bind request
// bodies, enforce ownership, and delegate to repositories; everything a
// client sees goes through the view package. Authentication failures
// answer 403 everywhere, keeping browsers from raising their built-in
// credential prompt.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rivalrockets/rivalrockets-api/internal/repository"
)

// dbTimeout bounds every repository call made on behalf of a request.
const dbTimeout = 5 * time.Second

func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseID reads a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseDate accepts the ISO-8601 shapes submitters actually send:
// full RFC 3339, seconds without zone, and bare dates.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("invalid date: " + s)
}

// repoErr maps repository sentinel errors onto the error contract; the
// fallback hides internals behind a generic 500.
func repoErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrUsernameExists):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalrockets/rivalrockets-api/internal/repository"
)

func TestParseDate(t *testing.T) {
	cases := map[string]time.Time{
		"2015-03-01T12:30:00Z":      time.Date(2015, 3, 1, 12, 30, 0, 0, time.UTC),
		"2015-03-01T12:30:00+02:00": time.Date(2015, 3, 1, 10, 30, 0, 0, time.UTC),
		"2015-03-01T12:30:00":       time.Date(2015, 3, 1, 12, 30, 0, 0, time.UTC),
		"2015-03-01":                time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := parseDate(in)
		require.NoError(t, err, "in=%q", in)
		assert.True(t, want.Equal(got), "in=%q got=%v", in, got)
	}

	for _, in := range []string{"", "yesterday", "03/01/2015"} {
		_, err := parseDate(in)
		assert.Error(t, err, "in=%q", in)
	}
}

func TestParseID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("42")

	id, err := parseID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	c.SetParamValues("-1")
	_, err = parseID(c, "id")
	assert.Error(t, err)
}

func TestRepoErrMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		body string
	}{
		{repository.ErrNotFound, http.StatusNotFound, `{"error":"not found"}`},
		{repository.ErrUsernameExists, http.StatusBadRequest, `{"error":"username already exists"}`},
		{assert.AnError, http.StatusInternalServerError, `{"error":"internal error"}`},
	}
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, repoErr(c, tc.err))
		assert.Equal(t, tc.code, rec.Code)
		assert.JSONEq(t, tc.body, rec.Body.String())
	}
}

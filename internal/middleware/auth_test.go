package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalrockets/rivalrockets-api/internal/utils"
)

const testSecret = "test-secret"

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[jti], nil
}

func invoke(t *testing.T, tokens RevocationStore, authHeader string) (*httptest.ResponseRecorder, Identity, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/machines", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var ident Identity
	var sawIdentity bool
	next := func(c echo.Context) error {
		ident, sawIdentity = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, RequireAuth(testSecret, tokens)(next)(c))
	return rec, ident, sawIdentity
}

func TestRequireAuthValidToken(t *testing.T) {
	signed, err := utils.NewToken(testSecret, 42, "carlos", utils.TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	rec, ident, ok := invoke(t, &stubRevocations{}, "Bearer "+signed.Token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, uint64(42), ident.UserID)
	assert.Equal(t, "carlos", ident.Username)
	assert.Equal(t, signed.JTI, ident.JTI)
}

func TestRequireAuthRejections(t *testing.T) {
	expired, err := utils.NewToken(testSecret, 1, "u", utils.TokenTypeAccess, -time.Minute)
	require.NoError(t, err)
	refresh, err := utils.NewToken(testSecret, 1, "u", utils.TokenTypeRefresh, time.Minute)
	require.NoError(t, err)
	foreign, err := utils.NewToken("other-secret", 1, "u", utils.TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic abc",
		"garbage token":   "Bearer nope",
		"expired token":   "Bearer " + expired.Token,
		"refresh token":   "Bearer " + refresh.Token,
		"foreign signing": "Bearer " + foreign.Token,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, _, ok := invoke(t, &stubRevocations{}, header)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.JSONEq(t, `{"error":"unauthorized access"}`, rec.Body.String())
			assert.False(t, ok)
		})
	}
}

func TestRequireAuthRevokedToken(t *testing.T) {
	signed, err := utils.NewToken(testSecret, 1, "u", utils.TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	tokens := &stubRevocations{revoked: map[string]bool{signed.JTI: true}}
	rec, _, ok := invoke(t, tokens, "Bearer "+signed.Token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, ok)
}

func TestRequireAuthStoreError(t *testing.T) {
	signed, err := utils.NewToken(testSecret, 1, "u", utils.TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	rec, _, ok := invoke(t, &stubRevocations{err: errors.New("db down")}, "Bearer "+signed.Token)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, ok)
}

func TestIdentityFromUnauthenticatedContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := IdentityFrom(c)
	assert.False(t, ok)
}

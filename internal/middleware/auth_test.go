package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldsupport/backend/internal/config"
	"github.com/shieldsupport/backend/internal/errs"
	"github.com/shieldsupport/backend/internal/lib/token"
	"github.com/shieldsupport/backend/internal/server"
)

const authTestSecret = "auth-middleware-secret"

func newAuthFixture(t *testing.T) *AuthMiddleware {
	t.Helper()

	return NewAuthMiddleware(&server.Server{
		Config: &config.Config{
			Auth: config.AuthConfig{
				SecretKey: authTestSecret,
				TokenTTL:  1,
			},
		},
	})
}

func newEchoContext(authHeader string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tickets", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func signToken(t *testing.T, role string) string {
	t.Helper()

	tok, err := token.CreateAccessToken(authTestSecret, "user-1", role, "user@example.com", time.Hour)
	require.NoError(t, err)
	return tok
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	am := newAuthFixture(t)
	c := newEchoContext("Bearer " + signToken(t, "user"))

	err := am.RequireAuth()(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, "user-1", c.Get(UserIDKey))
	assert.Equal(t, "user", c.Get(UserRoleKey))
	assert.Equal(t, "user@example.com", c.Get(UserEmailKey))
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	am := newAuthFixture(t)
	c := newEchoContext("")

	err := am.RequireAuth()(okHandler)(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "Missing authorization header", httpErr.Message)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	am := newAuthFixture(t)
	c := newEchoContext("Token abc123")

	err := am.RequireAuth()(okHandler)(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "Invalid authorization header", httpErr.Message)
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	am := newAuthFixture(t)
	c := newEchoContext("Bearer not-a-jwt")

	err := am.RequireAuth()(okHandler)(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "Invalid or expired token", httpErr.Message)
}

func TestRequireAdminAcceptsAdminToken(t *testing.T) {
	am := newAuthFixture(t)
	c := newEchoContext("Bearer " + signToken(t, "admin"))

	err := am.RequireAdmin()(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, "admin", c.Get(UserRoleKey))
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	am := newAuthFixture(t)
	c := newEchoContext("Bearer " + signToken(t, "user"))

	err := am.RequireAdmin()(okHandler)(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.Equal(t, "Administrator access required", httpErr.Message)
}

func TestOptionalAuthPassesWithoutToken(t *testing.T) {
	am := newAuthFixture(t)
	c := newEchoContext("")

	err := am.OptionalAuth()(okHandler)(c)

	require.NoError(t, err)
	assert.Nil(t, c.Get(UserIDKey))
}

func TestOptionalAuthAttachesIdentityWhenPresent(t *testing.T) {
	am := newAuthFixture(t)
	c := newEchoContext("Bearer " + signToken(t, "admin"))

	err := am.OptionalAuth()(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, "admin", c.Get(UserRoleKey))
}

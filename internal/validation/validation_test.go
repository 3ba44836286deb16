package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldsupport/backend/internal/errs"
)

type subscribePayload struct {
	Email string `json:"email" validate:"required,email"`
}

func (p *subscribePayload) Validate() error {
	return Struct(p)
}

func newJSONContext(t *testing.T, body string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := newJSONContext(t, `{"email":"reader@example.com"}`)

	payload := &subscribePayload{}
	require.NoError(t, BindAndValidate(c, payload))
	assert.Equal(t, "reader@example.com", payload.Email)
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	c := newJSONContext(t, `{"email":`)

	err := BindAndValidate(c, &subscribePayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Malformed request body", httpErr.Message)
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	c := newJSONContext(t, `{"email":"not-an-email"}`)

	err := BindAndValidate(c, &subscribePayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
	assert.Equal(t, "must be a valid email address", httpErr.Errors[0].Error)
}

func TestBindAndValidateRequiredField(t *testing.T) {
	c := newJSONContext(t, `{}`)

	err := BindAndValidate(c, &subscribePayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "isodate", Message: "must be an RFC3339 timestamp"}}
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	c := newJSONContext(t, `{}`)

	err := BindAndValidate(c, &customPayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "isodate", httpErr.Errors[0].Field)
	assert.Equal(t, "must be an RFC3339 timestamp", httpErr.Errors[0].Error)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("6f1b28f4-40ec-4c88-b1d1-6e9c35f0f0aa"))
	assert.False(t, IsValidUUID("6f1b28f4"))
	assert.False(t, IsValidUUID(""))
}

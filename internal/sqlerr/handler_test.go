package sqlerr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldsupport/backend/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "subscribers",
		ConstraintName: "subscribers_email_key",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "SUBSCRIBER_ALREADY_EXISTS", httpErr.Code)
	assert.Contains(t, httpErr.Message, "Email")
	assert.Contains(t, httpErr.Message, "already exists")
	assert.True(t, httpErr.Override)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		TableName:  "tickets",
		ColumnName: "user_id",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "TICKET_NOT_FOUND", httpErr.Code)
	assert.Contains(t, httpErr.Message, "User")
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "meetings",
		ColumnName: "time_zone",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "time_zone", httpErr.Errors[0].Field)
}

func TestHandleErrorCheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23514",
		Severity:   "ERROR",
		TableName:  "tickets",
		ColumnName: "priority",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "TICKET_INVALID", httpErr.Code)
}

func TestHandleErrorNoRowsWithTableAnnotation(t *testing.T) {
	err := fmt.Errorf("table:meetings: %w", pgx.ErrNoRows)

	httpErr := asHTTPError(t, HandleError(err))

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Meeting not found", httpErr.Message)
}

func TestHandleErrorNoRowsWithoutAnnotation(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(pgx.ErrNoRows))

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleErrorPassesThroughHTTPError(t *testing.T) {
	original := errs.NewForbiddenError("nope", true)

	assert.Equal(t, original, HandleError(original))
}

func TestHandleErrorUnknownBecomesInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("something odd")))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"subscribers_email_key", "email"},
		{"users_email_key", "email"},
		{"careers_job_code_key", "code"},
		{"unique_users_email", "email"},
		{"", ""},
		{"pkey", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractColumnForUniqueViolation(tt.constraint), tt.constraint)
	}
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("42P01"))
}

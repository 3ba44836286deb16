package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("Not Found"))
	assert.Equal(t, "OK", MakeUpperCaseWithUnderscores("OK"))
}

func TestConstructorsSetStatusAndCode(t *testing.T) {
	unauthorized := NewUnauthorizedError("Invalid or expired token", true)
	assert.Equal(t, http.StatusUnauthorized, unauthorized.Status)
	assert.Equal(t, "UNAUTHORIZED", unauthorized.Code)
	assert.True(t, unauthorized.Override)

	notFound := NewNotFoundError("Meeting not found", true, nil)
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, "NOT_FOUND", notFound.Code)

	code := "MEETING_NOT_FOUND"
	custom := NewNotFoundError("Meeting not found", true, &code)
	assert.Equal(t, "MEETING_NOT_FOUND", custom.Code)
}

func TestIsMatchesOnType(t *testing.T) {
	err := NewForbiddenError("Administrator access required", true)
	assert.True(t, errors.Is(err, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))
}

func TestWithMessageCopies(t *testing.T) {
	base := NewInternalServerError()
	replaced := base.WithMessage("Something broke")

	assert.Equal(t, "Something broke", replaced.Message)
	assert.Equal(t, base.Status, replaced.Status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), base.Message)
}

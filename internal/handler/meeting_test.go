package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldsupport/backend/internal/validation"
)

func validMeetingRequest() *CreateMeetingRequest {
	return &CreateMeetingRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Subject:  "Security audit",
		Phone:    "+1 555 0100",
		Date:     "March 3, 2026",
		Time:     "10:00 AM",
		ISODate:  "2026-03-03T10:00:00-05:00",
		Duration: 45,
		TimeZone: "America/New_York",
	}
}

func TestCreateMeetingRequestValidates(t *testing.T) {
	require.NoError(t, validMeetingRequest().Validate())
}

func TestCreateMeetingRequestRejectsBadISODate(t *testing.T) {
	req := validMeetingRequest()
	req.ISODate = "March 3rd at 10"

	err := req.Validate()

	var custom validation.CustomValidationErrors
	require.ErrorAs(t, err, &custom)
	require.Len(t, custom, 1)
	assert.Equal(t, "isodate", custom[0].Field)
}

func TestCreateMeetingRequestRejectsMissingFields(t *testing.T) {
	req := validMeetingRequest()
	req.Email = ""
	req.Duration = 0

	assert.Error(t, req.Validate())
}

func TestCreateMeetingRequestRejectsBadEmail(t *testing.T) {
	req := validMeetingRequest()
	req.Email = "not-an-email"

	assert.Error(t, req.Validate())
}

func TestUpdateMeetingRequestBindsAdminUpdateKey(t *testing.T) {
	var req UpdateMeetingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"adminUpdate":"Reschedule to Monday"}`), &req))
	assert.Equal(t, "Reschedule to Monday", req.AdminNote)
}

func TestUpdateMeetingRequestRequiresUUID(t *testing.T) {
	req := &UpdateMeetingRequest{ID: "42", AdminNote: "Follow up Friday"}
	assert.Error(t, req.Validate())

	req.ID = "0d4bfc2e-3a0d-4ad0-9c5e-3f5b7a1d2c9a"
	assert.NoError(t, req.Validate())
}

package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeetingFinalizeTask(t *testing.T) {
	task, err := NewMeetingFinalizeTask("meeting-42")
	require.NoError(t, err)

	assert.Equal(t, TaskMeetingFinalize, task.Type())

	var p MeetingFinalizePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "meeting-42", p.MeetingID)
}

func TestMeetingEmailTaskPayloadRoundTrip(t *testing.T) {
	payload := MeetingEmailPayload{
		To:        "ada@example.com",
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Subject:   "Security audit",
		DateLabel: "March 3, 2026",
		TimeLabel: "10:00 AM",
		TimeZone:  "America/New_York",
		Duration:  "45 minutes",
		MeetLink:  "https://meet.example/abc",
	}

	adminTask, err := NewMeetingAdminEmailTask(payload)
	require.NoError(t, err)
	assert.Equal(t, TaskMeetingAdminEmail, adminTask.Type())

	confirmTask, err := NewMeetingConfirmationEmailTask(payload)
	require.NoError(t, err)
	assert.Equal(t, TaskMeetingConfirmationEmail, confirmTask.Type())

	var decoded MeetingEmailPayload
	require.NoError(t, json.Unmarshal(confirmTask.Payload(), &decoded))
	assert.Equal(t, payload, decoded)

	details := decoded.MeetingEmailDetails()
	assert.Equal(t, "Ada Lovelace", details.Name)
	assert.Equal(t, "https://meet.example/abc", details.MeetLink)
}

func TestContactEmailTasks(t *testing.T) {
	payload := ContactEmailPayload{
		To:      "ops@example.com",
		Name:    "Grace Hopper",
		Email:   "grace@example.com",
		Subject: "Invoice question",
		Message: "Where is my invoice?",
	}

	adminTask, err := NewContactAdminEmailTask(payload)
	require.NoError(t, err)
	assert.Equal(t, TaskContactAdminEmail, adminTask.Type())

	ackTask, err := NewContactAckEmailTask(payload)
	require.NoError(t, err)
	assert.Equal(t, TaskContactAckEmail, ackTask.Type())

	var decoded ContactEmailPayload
	require.NoError(t, json.Unmarshal(adminTask.Payload(), &decoded))
	assert.Equal(t, payload, decoded)
}

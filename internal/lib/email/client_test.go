package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMeetingTemplates(t *testing.T) {
	details := MeetingDetails{
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Phone:     "+15550100",
		Website:   "https://ada.example",
		Subject:   "Security audit",
		DateLabel: "March 3, 2026",
		TimeLabel: "10:00 AM",
		TimeZone:  "America/New_York",
		Duration:  "45 minutes",
		MeetLink:  "https://meet.example/abc",
	}

	for _, tmpl := range []Template{TemplateMeetingAdmin, TemplateMeetingConfirmation} {
		body, err := render(tmpl, details.templateData())
		require.NoError(t, err, tmpl)

		assert.Contains(t, body, "Ada Lovelace")
		assert.Contains(t, body, "Security audit")
		assert.Contains(t, body, "https://meet.example/abc")
		assert.Contains(t, body, "March 3, 2026")
	}
}

func TestRenderContactTemplates(t *testing.T) {
	data := map[string]string{
		"Name":    "Grace Hopper",
		"Email":   "grace@example.com",
		"Subject": "Invoice question",
		"Message": "Where is my invoice?",
	}

	body, err := render(TemplateContactAdmin, data)
	require.NoError(t, err)
	assert.Contains(t, body, "Grace Hopper")
	assert.Contains(t, body, "Where is my invoice?")

	body, err = render(TemplateContactAck, data)
	require.NoError(t, err)
	assert.Contains(t, body, "Grace Hopper")
	assert.Contains(t, body, "Shield Support")
}

func TestRenderApplicationTemplates(t *testing.T) {
	data := map[string]string{
		"Name":        "Alan Turing",
		"Email":       "alan@example.com",
		"Phone":       "+15550101",
		"CoverLetter": "I enjoy hard problems.",
		"JobTitle":    "Security Engineer",
	}

	body, err := render(TemplateApplicationAdmin, data)
	require.NoError(t, err)
	assert.Contains(t, body, "Alan Turing")
	assert.Contains(t, body, "Security Engineer")
	assert.Contains(t, body, "I enjoy hard problems.")

	body, err = render(TemplateApplicationAck, data)
	require.NoError(t, err)
	assert.Contains(t, body, "Security Engineer")
}

func TestRenderEscapesHTML(t *testing.T) {
	data := map[string]string{
		"Name":    "<script>alert(1)</script>",
		"Email":   "x@example.com",
		"Subject": "hi",
		"Message": "hello",
	}

	body, err := render(TemplateContactAdmin, data)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := render(Template("does_not_exist"), nil)
	assert.Error(t, err)
}

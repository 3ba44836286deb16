package handler

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldsupport/backend/internal/repository"
)

func TestCreateCareerRequestBindsFullLocation(t *testing.T) {
	body := `{
		"jobTitle": "Security Analyst",
		"shortDescription": "Watch the dashboards",
		"fullDescription": "Triage alerts and escalate incidents.",
		"location": {"country": "USA", "state": "TX", "city": "Austin", "zipCode": "73301"},
		"salaryRange": {"min": 90000, "max": 120000}
	}`

	var req CreateCareerRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())

	career := req.toCareer()
	assert.Equal(t, repository.JobLocation{
		Country: "USA",
		State:   "TX",
		City:    "Austin",
		ZipCode: "73301",
	}, career.Location)
}

func TestCreateCareerRequestDefaults(t *testing.T) {
	req := &CreateCareerRequest{
		JobTitle:         "Security Analyst",
		ShortDescription: "Watch the dashboards",
		FullDescription:  "Triage alerts and escalate incidents.",
	}
	require.NoError(t, req.Validate())

	career := req.toCareer()
	assert.Equal(t, "Onsite", career.WorkModel)
	assert.Equal(t, "Full-time", career.EmploymentType)
	assert.Equal(t, "USD", career.SalaryRange.Currency)
	assert.True(t, career.IsActive)
	assert.Equal(t, []string{}, career.SkillsRequired)
}

func TestCreateCareerRequestKeepsExplicitCurrency(t *testing.T) {
	req := &CreateCareerRequest{
		JobTitle:         "Security Analyst",
		ShortDescription: "Watch the dashboards",
		FullDescription:  "Triage alerts and escalate incidents.",
		SalaryRange:      repository.SalaryRange{Min: 70000, Max: 90000, Currency: "EUR"},
	}

	assert.Equal(t, "EUR", req.toCareer().SalaryRange.Currency)
}

func TestGenerateJobCodeShape(t *testing.T) {
	code := generateJobCode()
	assert.True(t, strings.HasPrefix(code, "JOB-"))
	assert.Len(t, code, 12)
}

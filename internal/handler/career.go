package handler

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shieldsupport/backend/internal/errs"
	"github.com/shieldsupport/backend/internal/lib/email"
	"github.com/shieldsupport/backend/internal/middleware"
	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/server"
	"github.com/shieldsupport/backend/internal/service"
	"github.com/shieldsupport/backend/internal/validation"
)

// maxResumeSize caps uploaded resumes at 5 MiB. Resumes are forwarded as
// attachments and never stored.
const maxResumeSize = 5 << 20

type CareerHandler struct {
	Handler
	applications *service.ApplicationService
	careers      *repository.CareerRepository
}

func NewCareerHandler(s *server.Server, applications *service.ApplicationService, careers *repository.CareerRepository) *CareerHandler {
	return &CareerHandler{
		Handler:      NewHandler(s),
		applications: applications,
		careers:      careers,
	}
}

// List returns active postings to the public and every posting to admins.
func (h *CareerHandler) List(c echo.Context, _ *emptyRequest) ([]*repository.Career, error) {
	activeOnly := middleware.GetUserRole(c) != "admin"
	return h.careers.List(c.Request().Context(), activeOnly)
}

type GetCareerRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetCareerRequest) Validate() error {
	return validation.Struct(r)
}

// Get hides inactive postings from the public as if they never existed.
func (h *CareerHandler) Get(c echo.Context, req *GetCareerRequest) (*repository.Career, error) {
	career, err := h.careers.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	if !career.IsActive && middleware.GetUserRole(c) != "admin" {
		return nil, errs.NewNotFoundError("Job posting not found", true, nil)
	}

	return career, nil
}

type CreateCareerRequest struct {
	JobTitle         string                  `json:"jobTitle" validate:"required"`
	JobCode          string                  `json:"jobCode"`
	ShortDescription string                  `json:"shortDescription" validate:"required"`
	FullDescription  string                  `json:"fullDescription" validate:"required"`
	Department       string                  `json:"department"`
	Industry         string                  `json:"industry"`
	WorkModel        string                  `json:"workModel" validate:"omitempty,oneof=Remote Onsite Hybrid"`
	EmploymentType   string                  `json:"employmentType" validate:"omitempty,oneof=Full-time Part-time Contract Internship"`
	ExperienceLevel  string                  `json:"experienceLevel"`
	Location         repository.JobLocation  `json:"location"`
	SalaryRange      repository.SalaryRange  `json:"salaryRange"`
	SkillsRequired   []string                `json:"skillsRequired"`
	Responsibilities []string                `json:"responsibilities"`
	Qualifications   []string                `json:"qualifications"`
	ApplyEmail       string                  `json:"applyEmail" validate:"omitempty,email"`
	ApplyLink        string                  `json:"applyLink"`
	IsActive         *bool                   `json:"isActive"`
}

func (r *CreateCareerRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateCareerRequest) toCareer() *repository.Career {
	career := &repository.Career{
		JobTitle:         r.JobTitle,
		JobCode:          r.JobCode,
		ShortDescription: r.ShortDescription,
		FullDescription:  r.FullDescription,
		Department:       r.Department,
		Industry:         r.Industry,
		WorkModel:        r.WorkModel,
		EmploymentType:   r.EmploymentType,
		ExperienceLevel:  r.ExperienceLevel,
		Location:         r.Location,
		SalaryRange:      r.SalaryRange,
		SkillsRequired:   r.SkillsRequired,
		Responsibilities: r.Responsibilities,
		Qualifications:   r.Qualifications,
		ApplyEmail:       r.ApplyEmail,
		ApplyLink:        r.ApplyLink,
		IsActive:         true,
	}
	if career.WorkModel == "" {
		career.WorkModel = "Onsite"
	}
	if career.EmploymentType == "" {
		career.EmploymentType = "Full-time"
	}
	if career.SalaryRange.Currency == "" {
		career.SalaryRange.Currency = "USD"
	}
	if r.IsActive != nil {
		career.IsActive = *r.IsActive
	}
	for _, s := range []*[]string{&career.SkillsRequired, &career.Responsibilities, &career.Qualifications} {
		if *s == nil {
			*s = []string{}
		}
	}
	return career
}

func (h *CareerHandler) Create(c echo.Context, req *CreateCareerRequest) (*repository.Career, error) {
	career := req.toCareer()
	if career.JobCode == "" {
		career.JobCode = generateJobCode()
	}
	return h.careers.Create(c.Request().Context(), career)
}

// generateJobCode builds a human-readable unique-ish code; the unique
// constraint on job_code catches the rare collision.
func generateJobCode() string {
	ts := time.Now().UnixMilli() % 10000
	return fmt.Sprintf("JOB-%04d%04d", ts, rand.IntN(10000))
}

type UpdateCareerRequest struct {
	ID string `param:"id" validate:"required,uuid"`
	CreateCareerRequest
}

func (r *UpdateCareerRequest) Validate() error {
	return validation.Struct(r)
}

func (h *CareerHandler) Update(c echo.Context, req *UpdateCareerRequest) (*repository.Career, error) {
	return h.careers.Update(c.Request().Context(), req.ID, req.toCareer())
}

type DeleteCareerRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteCareerRequest) Validate() error {
	return validation.Struct(r)
}

func (h *CareerHandler) Delete(c echo.Context, req *DeleteCareerRequest) error {
	return h.careers.Delete(c.Request().Context(), req.ID)
}

// ApplyRequest is the multipart application form; the resume file itself is
// read from the request in the handler.
type ApplyRequest struct {
	CareerID    string `form:"careerId" validate:"required,uuid"`
	Name        string `form:"name" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	Phone       string `form:"phone" validate:"required"`
	CoverLetter string `form:"coverLetter"`
}

func (r *ApplyRequest) Validate() error {
	return validation.Struct(r)
}

type ApplyResponse struct {
	Message string `json:"message"`
}

// Apply forwards an application for an active posting. The resume is
// required and attached to the notification email.
func (h *CareerHandler) Apply(c echo.Context, req *ApplyRequest) (*ApplyResponse, error) {
	career, err := h.careers.GetByID(c.Request().Context(), req.CareerID)
	if err != nil {
		return nil, err
	}
	if !career.IsActive {
		return nil, errs.NewNotFoundError("Job posting not found", true, nil)
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return nil, errs.NewBadRequestError("Resume file is required", true, nil,
			[]errs.FieldError{{Field: "resume", Error: "is required"}}, nil)
	}
	if fileHeader.Size > maxResumeSize {
		return nil, errs.NewBadRequestError("Resume file is too large", true, nil,
			[]errs.FieldError{{Field: "resume", Error: "must not exceed 5 MB"}}, nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxResumeSize))
	if err != nil {
		return nil, err
	}

	resume := email.Attachment{
		Filename: fileHeader.Filename,
		Content:  content,
	}

	if err := h.applications.Apply(career, req.Name, req.Email, req.Phone, req.CoverLetter, resume); err != nil {
		return nil, err
	}

	return &ApplyResponse{Message: "Application submitted successfully"}, nil
}

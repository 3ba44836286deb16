package service

import (
	"github.com/rs/zerolog"

	"github.com/shieldsupport/backend/internal/errs"
	"github.com/shieldsupport/backend/internal/lib/email"
	"github.com/shieldsupport/backend/internal/repository"
)

// ApplicationService forwards job applications by email. Resumes are
// attached and forwarded, never stored.
type ApplicationService struct {
	email        *email.Client
	adminAddress string
	logger       *zerolog.Logger
}

func NewApplicationService(emailClient *email.Client, adminAddress string, logger *zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		email:        emailClient,
		adminAddress: adminAddress,
		logger:       logger,
	}
}

// Apply sends the application to the hiring inbox with the resume attached.
// Losing an application is unacceptable, so a failed notification fails the
// request. The applicant acknowledgement is best effort.
func (a *ApplicationService) Apply(career *repository.Career, name, applicantEmail, phone, coverLetter string, resume email.Attachment) error {
	to := []string{a.adminAddress}
	if career.ApplyEmail != "" {
		to = []string{career.ApplyEmail}
	}

	if err := a.email.SendApplicationNotification(to, name, applicantEmail, phone, coverLetter, career.JobTitle, resume); err != nil {
		a.logger.Error().
			Str("career_id", career.ID).
			Str("applicant", applicantEmail).
			Err(err).
			Msg("Failed to forward job application")
		return errs.NewInternalServerError()
	}

	if err := a.email.SendApplicationAcknowledgement(applicantEmail, name, phone, career.JobTitle); err != nil {
		a.logger.Error().
			Str("career_id", career.ID).
			Str("applicant", applicantEmail).
			Err(err).
			Msg("Failed to send application acknowledgement")
	}

	return nil
}

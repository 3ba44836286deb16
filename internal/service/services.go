package service

import (
	"context"

	"github.com/shieldsupport/backend/internal/lib/calendar"
	"github.com/shieldsupport/backend/internal/lib/email"
	"github.com/shieldsupport/backend/internal/lib/job"
	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/server"
)

type Services struct {
	Auth        *AuthService
	Booking     *BookingService
	Application *ApplicationService
	Job         *job.JobService
}

// NewServices builds the service layer and wires the job handlers that
// depend on it. The calendar client is optional: without credentials the
// booking workflow runs in fallback-only mode.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	emailClient := email.NewClient(s.Config, s.Logger)

	var scheduler EventScheduler
	if s.Config.Calendar.CredentialsFile != "" {
		calendarClient, err := calendar.NewClient(
			context.Background(),
			s.Config.Calendar.CredentialsFile,
			s.Config.Calendar.CalendarID,
			s.Logger,
		)
		if err != nil {
			return nil, err
		}
		scheduler = calendarClient
	} else {
		s.Logger.Warn().Msg("No calendar credentials configured, bookings will use the fallback link")
	}

	booking := NewBookingService(
		repos.Meetings,
		scheduler,
		s.Job.Client,
		s.Config.Email.AdminAddress,
		s.Logger,
	)

	s.Job.InitHandlers(emailClient, booking)

	return &Services{
		Auth:        NewAuthService(s, repos.Users),
		Booking:     booking,
		Application: NewApplicationService(emailClient, s.Config.Email.AdminAddress, s.Logger),
		Job:         s.Job,
	}, nil
}

package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/server"
	"github.com/shieldsupport/backend/internal/service"
	"github.com/shieldsupport/backend/internal/validation"
)

// MeetingHandler serves the public booking endpoint and the admin views of
// stored meeting requests.
type MeetingHandler struct {
	Handler
	booking  *service.BookingService
	meetings *repository.MeetingRepository
}

func NewMeetingHandler(s *server.Server, booking *service.BookingService, meetings *repository.MeetingRepository) *MeetingHandler {
	return &MeetingHandler{
		Handler:  NewHandler(s),
		booking:  booking,
		meetings: meetings,
	}
}

// CreateMeetingRequest is the public booking form. Beyond presence, only
// the email address is format-checked; names, labels and phone numbers are
// taken as submitted.
type CreateMeetingRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Website  string `json:"website"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	ISODate  string `json:"isoDate" validate:"required"`
	Duration int    `json:"duration" validate:"required,gt=0"`
	TimeZone string `json:"timeZone" validate:"required"`
}

func (r *CreateMeetingRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if _, err := time.Parse(time.RFC3339, r.ISODate); err != nil {
		return validation.CustomValidationErrors{{
			Field:   "isodate",
			Message: "must be an RFC3339 timestamp",
		}}
	}
	return nil
}

// Create persists the booking and responds immediately. Everything that
// can fail afterwards (calendar event, record patch, emails) runs in the
// background and never changes this response.
func (h *MeetingHandler) Create(c echo.Context, req *CreateMeetingRequest) (*repository.Meeting, error) {
	isoDate, err := time.Parse(time.RFC3339, req.ISODate)
	if err != nil {
		// Validate already checked the format.
		return nil, err
	}

	meeting := &repository.Meeting{
		Name:            req.Name,
		Email:           req.Email,
		Subject:         req.Subject,
		Phone:           req.Phone,
		Website:         req.Website,
		DateLabel:       req.Date,
		TimeLabel:       req.Time,
		ISODate:         isoDate,
		DurationMinutes: req.Duration,
		TimeZone:        req.TimeZone,
	}

	return h.booking.CreateBooking(c.Request().Context(), meeting)
}

// List returns all meeting requests, newest first.
func (h *MeetingHandler) List(c echo.Context, _ *emptyRequest) ([]*repository.Meeting, error) {
	return h.meetings.List(c.Request().Context())
}

// UpdateMeetingRequest carries the only booking field operators may edit.
// The body key is adminUpdate, which is what the admin dashboard sends.
type UpdateMeetingRequest struct {
	ID        string `param:"id" validate:"required,uuid"`
	AdminNote string `json:"adminUpdate" validate:"required"`
}

func (r *UpdateMeetingRequest) Validate() error {
	return validation.Struct(r)
}

func (h *MeetingHandler) Update(c echo.Context, req *UpdateMeetingRequest) (*repository.Meeting, error) {
	return h.meetings.UpdateAdminNote(c.Request().Context(), req.ID, req.AdminNote)
}

// DeleteMeetingRequest identifies the booking to remove.
type DeleteMeetingRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteMeetingRequest) Validate() error {
	return validation.Struct(r)
}

func (h *MeetingHandler) Delete(c echo.Context, req *DeleteMeetingRequest) error {
	return h.meetings.Delete(c.Request().Context(), req.ID)
}

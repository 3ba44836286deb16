package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/shieldsupport/backend/internal/lib/calendar"
	"github.com/shieldsupport/backend/internal/lib/job"
	"github.com/shieldsupport/backend/internal/repository"
)

// FallbackMeetingLink is sent to the requester when no calendar event could
// be created. The record itself stays unpatched so the reconciliation sweep
// and the admin dashboard can tell the difference.
const FallbackMeetingLink = "A meeting link will be shared with you before the meeting."

// MeetingStore is the persistence surface the booking workflow needs.
type MeetingStore interface {
	Create(ctx context.Context, m *repository.Meeting) (*repository.Meeting, error)
	GetByID(ctx context.Context, id string) (*repository.Meeting, error)
	SetCalendarEvent(ctx context.Context, id, eventID, meetLink string) error
	RecordOrphan(ctx context.Context, meetingID, eventID, meetLink string) error
	ListOrphans(ctx context.Context) ([]*repository.CalendarOrphan, error)
	DeleteOrphan(ctx context.Context, meetingID string) error
}

// EventScheduler creates the calendar event with a Meet link. A nil
// scheduler means fallback-only mode.
type EventScheduler interface {
	CreateEvent(ctx context.Context, details calendar.EventDetails) (*calendar.CreatedEvent, error)
}

// TaskEnqueuer pushes background tasks. *asynq.Client satisfies it.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// BookingService runs the meeting booking workflow.
//
// CreateBooking persists the request and hands the rest to the job queue:
// the finalize task creates the calendar event, patches the record, and
// dispatches the two notification emails. The requester's response never
// waits on any of that.
type BookingService struct {
	meetings     MeetingStore
	scheduler    EventScheduler
	enqueuer     TaskEnqueuer
	adminAddress string
	logger       *zerolog.Logger
}

func NewBookingService(meetings MeetingStore, scheduler EventScheduler, enqueuer TaskEnqueuer, adminAddress string, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		meetings:     meetings,
		scheduler:    scheduler,
		enqueuer:     enqueuer,
		adminAddress: adminAddress,
		logger:       logger,
	}
}

// CreateBooking persists the meeting request and enqueues its finalization.
// Persistence failure is the only error path; once the row is committed the
// caller gets the stored record, whatever later becomes of the calendar
// event and emails.
func (b *BookingService) CreateBooking(ctx context.Context, m *repository.Meeting) (*repository.Meeting, error) {
	stored, err := b.meetings.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	task, err := job.NewMeetingFinalizeTask(stored.ID)
	if err == nil {
		_, err = b.enqueuer.Enqueue(task)
	}
	if err != nil {
		// The booking stands; the sweep or an operator picks it up later.
		b.logger.Error().
			Str("meeting_id", stored.ID).
			Err(err).
			Msg("Failed to enqueue meeting finalize task")
	}

	return stored, nil
}

// FinalizeBooking is the detached continuation of CreateBooking. It creates
// the calendar event, patches the record with the link and event id, and
// dispatches the admin and requester emails as independent tasks.
//
// Failure handling:
//   - no event: both emails go out with the fallback link, record unpatched
//   - event created but patch failed: the event is recorded as an orphan
//     for the reconciliation sweep, emails carry the real link
func (b *BookingService) FinalizeBooking(ctx context.Context, meetingID string) error {
	meeting, err := b.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return errors.Wrap(err, "loading meeting for finalization")
	}

	meetLink := FallbackMeetingLink

	event := b.createEvent(ctx, meeting)
	if event != nil {
		meetLink = event.MeetLink

		if err := b.meetings.SetCalendarEvent(ctx, meeting.ID, event.EventID, event.MeetLink); err != nil {
			b.logger.Error().
				Str("meeting_id", meeting.ID).
				Str("event_id", event.EventID).
				Err(err).
				Msg("Failed to patch meeting with calendar event")

			if orphanErr := b.meetings.RecordOrphan(ctx, meeting.ID, event.EventID, event.MeetLink); orphanErr != nil {
				b.logger.Error().
					Str("meeting_id", meeting.ID).
					Str("event_id", event.EventID).
					Err(orphanErr).
					Msg("Failed to record calendar orphan")
			}
		}
	}

	b.dispatchEmails(meeting, meetLink)

	return nil
}

// createEvent attempts the calendar call and returns nil on any failure.
func (b *BookingService) createEvent(ctx context.Context, meeting *repository.Meeting) *calendar.CreatedEvent {
	if b.scheduler == nil {
		return nil
	}

	start := meeting.ISODate
	end := start.Add(time.Duration(meeting.DurationMinutes) * time.Minute)

	details := calendar.EventDetails{
		Summary: fmt.Sprintf("%s with %s", meeting.Subject, meeting.Name),
		Description: fmt.Sprintf(
			"Meeting requested via Shield Support.\n\nName: %s\nEmail: %s\nPhone: %s\nWebsite: %s\nSubject: %s",
			meeting.Name, meeting.Email, meeting.Phone, meeting.Website, meeting.Subject,
		),
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
		TimeZone:  meeting.TimeZone,
		Attendees: []string{meeting.Email, b.adminAddress},
	}

	event, err := b.scheduler.CreateEvent(ctx, details)
	if err != nil {
		b.logger.Error().
			Str("meeting_id", meeting.ID).
			Err(err).
			Msg("Failed to create calendar event, using fallback link")
		return nil
	}

	return event
}

// dispatchEmails enqueues the operator notification and the requester
// confirmation as separate tasks. Each failure is logged and swallowed so
// neither email, nor the booking itself, depends on the other.
func (b *BookingService) dispatchEmails(meeting *repository.Meeting, meetLink string) {
	payload := job.MeetingEmailPayload{
		Name:      meeting.Name,
		Email:     meeting.Email,
		Phone:     meeting.Phone,
		Website:   meeting.Website,
		Subject:   meeting.Subject,
		DateLabel: meeting.DateLabel,
		TimeLabel: meeting.TimeLabel,
		TimeZone:  meeting.TimeZone,
		Duration:  strconv.Itoa(meeting.DurationMinutes) + " minutes",
		MeetLink:  meetLink,
	}

	adminPayload := payload
	adminPayload.To = b.adminAddress
	if task, err := job.NewMeetingAdminEmailTask(adminPayload); err != nil {
		b.logger.Error().Str("meeting_id", meeting.ID).Err(err).Msg("Failed to build meeting admin email task")
	} else if _, err := b.enqueuer.Enqueue(task); err != nil {
		b.logger.Error().Str("meeting_id", meeting.ID).Err(err).Msg("Failed to enqueue meeting admin email task")
	}

	confirmPayload := payload
	confirmPayload.To = meeting.Email
	if task, err := job.NewMeetingConfirmationEmailTask(confirmPayload); err != nil {
		b.logger.Error().Str("meeting_id", meeting.ID).Err(err).Msg("Failed to build meeting confirmation email task")
	} else if _, err := b.enqueuer.Enqueue(task); err != nil {
		b.logger.Error().Str("meeting_id", meeting.ID).Err(err).Msg("Failed to enqueue meeting confirmation email task")
	}
}

// ReconcileOrphans retries the record patch for calendar events that were
// created but never attached to their meeting. Runs on a timer.
func (b *BookingService) ReconcileOrphans(ctx context.Context) {
	orphans, err := b.meetings.ListOrphans(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to list calendar orphans")
		return
	}

	for _, orphan := range orphans {
		if err := b.meetings.SetCalendarEvent(ctx, orphan.MeetingID, orphan.EventID, orphan.MeetLink); err != nil {
			b.logger.Error().
				Str("meeting_id", orphan.MeetingID).
				Str("event_id", orphan.EventID).
				Err(err).
				Msg("Calendar orphan still unreconciled")
			continue
		}

		if err := b.meetings.DeleteOrphan(ctx, orphan.MeetingID); err != nil {
			b.logger.Error().
				Str("meeting_id", orphan.MeetingID).
				Err(err).
				Msg("Failed to clear reconciled calendar orphan")
			continue
		}

		b.logger.Info().
			Str("meeting_id", orphan.MeetingID).
			Str("event_id", orphan.EventID).
			Msg("Reconciled calendar orphan")
	}
}

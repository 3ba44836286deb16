package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/shieldsupport/backend/internal/lib/email"
)

// Task type names stored in Redis. Asynq uses these strings to route tasks
// to handlers.
const (
	TaskMeetingFinalize          = "meeting:finalize"
	TaskMeetingAdminEmail        = "meeting:email_admin"
	TaskMeetingConfirmationEmail = "meeting:email_confirmation"
	TaskContactAdminEmail        = "contact:email_admin"
	TaskContactAckEmail          = "contact:email_ack"
)

// MeetingFinalizePayload identifies the stored meeting to resolve into a
// calendar event.
type MeetingFinalizePayload struct {
	MeetingID string `json:"meeting_id"`
}

// MeetingEmailPayload carries everything either meeting email needs,
// including the already-resolved link, so handlers never touch the database.
type MeetingEmailPayload struct {
	To        string `json:"to"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Website   string `json:"website"`
	Subject   string `json:"subject"`
	DateLabel string `json:"date_label"`
	TimeLabel string `json:"time_label"`
	TimeZone  string `json:"time_zone"`
	Duration  string `json:"duration"`
	MeetLink  string `json:"meet_link"`
}

// ContactEmailPayload is shared by the contact notification and the
// acknowledgement tasks.
type ContactEmailPayload struct {
	To      string `json:"to"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewMeetingFinalizeTask constructs the task that creates the calendar event
// and patches the meeting record.
//
// MaxRetry(0): the handler has its own fallback path for calendar failures,
// so a retry would double-book the event.
func NewMeetingFinalizeTask(meetingID string) (*asynq.Task, error) {
	payload, err := json.Marshal(MeetingFinalizePayload{MeetingID: meetingID})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskMeetingFinalize,
		payload,
		asynq.MaxRetry(0),
		asynq.Queue("critical"),
		asynq.Timeout(60*time.Second),
	), nil
}

// NewMeetingAdminEmailTask constructs the operator notification email task.
// MaxRetry(0): a booking must never be retried into duplicate notifications,
// and a lost email is recoverable from the stored record.
func NewMeetingAdminEmailTask(p MeetingEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskMeetingAdminEmail,
		payload,
		asynq.MaxRetry(0),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewMeetingConfirmationEmailTask constructs the requester confirmation
// email task. Independent of the admin notification: each can fail alone.
func NewMeetingConfirmationEmailTask(p MeetingEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskMeetingConfirmationEmail,
		payload,
		asynq.MaxRetry(0),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewContactAdminEmailTask constructs the task forwarding a contact-form
// message to the operator inbox.
func NewContactAdminEmailTask(p ContactEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskContactAdminEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewContactAckEmailTask constructs the task thanking the sender of a
// contact-form message.
func NewContactAckEmailTask(p ContactEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskContactAckEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}

// MeetingEmailDetails converts a payload into the email package's shape.
func (p MeetingEmailPayload) MeetingEmailDetails() email.MeetingDetails {
	return email.MeetingDetails{
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Website:   p.Website,
		Subject:   p.Subject,
		DateLabel: p.DateLabel,
		TimeLabel: p.TimeLabel,
		TimeZone:  p.TimeZone,
		Duration:  p.Duration,
		MeetLink:  p.MeetLink,
	}
}

package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Meeting is a stored booking request. MeetLink and CalendarEventID are
// nil until the booking continuation patches them, and the schema enforces
// that they are only ever set together.
type Meeting struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	Subject         string    `json:"subject" db:"subject"`
	Phone           string    `json:"phone" db:"phone"`
	Website         string    `json:"website" db:"website"`
	DateLabel       string    `json:"date" db:"date_label"`
	TimeLabel       string    `json:"time" db:"time_label"`
	ISODate         time.Time `json:"isoDate" db:"iso_date"`
	DurationMinutes int       `json:"duration" db:"duration_minutes"`
	TimeZone        string    `json:"timeZone" db:"time_zone"`
	AdminNote       string    `json:"adminNote" db:"admin_note"`
	MeetLink        *string   `json:"meetLink" db:"meet_link"`
	CalendarEventID *string   `json:"calendarEventId" db:"calendar_event_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// CalendarOrphan records a calendar event that was created but whose link
// could not be patched onto its meeting. The reconciliation sweep retries
// these.
type CalendarOrphan struct {
	MeetingID string    `json:"meetingId" db:"meeting_id"`
	EventID   string    `json:"eventId" db:"event_id"`
	MeetLink  string    `json:"meetLink" db:"meet_link"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type MeetingRepository struct {
	pool *pgxpool.Pool
}

const meetingColumns = `id, name, email, subject, phone, website, date_label, time_label, iso_date,
	duration_minutes, time_zone, admin_note, meet_link, calendar_event_id, created_at, updated_at`

func (r *MeetingRepository) Create(ctx context.Context, m *Meeting) (*Meeting, error) {
	rows, err := r.pool.Query(ctx, `
		insert into meetings (name, email, subject, phone, website, date_label, time_label, iso_date, duration_minutes, time_zone)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		returning `+meetingColumns,
		m.Name, m.Email, m.Subject, m.Phone, m.Website, m.DateLabel, m.TimeLabel, m.ISODate, m.DurationMinutes, m.TimeZone)
	if err != nil {
		return nil, err
	}

	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Meeting])
}

func (r *MeetingRepository) GetByID(ctx context.Context, id string) (*Meeting, error) {
	rows, err := r.pool.Query(ctx, `select `+meetingColumns+` from meetings where id = $1`, id)
	if err != nil {
		return nil, err
	}

	meeting, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Meeting])
	if err != nil {
		return nil, wrapNoRows(err, "meetings")
	}
	return meeting, nil
}

func (r *MeetingRepository) List(ctx context.Context) ([]*Meeting, error) {
	rows, err := r.pool.Query(ctx, `select `+meetingColumns+` from meetings order by created_at desc`)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Meeting])
}

// SetCalendarEvent patches the link and event id onto the record in one
// statement, so a record never carries one without the other.
func (r *MeetingRepository) SetCalendarEvent(ctx context.Context, id, eventID, meetLink string) error {
	tag, err := r.pool.Exec(ctx, `
		update meetings set meet_link = $2, calendar_event_id = $3, updated_at = now()
		where id = $1`,
		id, meetLink, eventID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("meetings")
	}
	return nil
}

// UpdateAdminNote is the only field operators may edit on a booking.
func (r *MeetingRepository) UpdateAdminNote(ctx context.Context, id, adminNote string) (*Meeting, error) {
	rows, err := r.pool.Query(ctx, `
		update meetings set admin_note = $2, updated_at = now()
		where id = $1
		returning `+meetingColumns,
		id, adminNote)
	if err != nil {
		return nil, err
	}

	meeting, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Meeting])
	if err != nil {
		return nil, wrapNoRows(err, "meetings")
	}
	return meeting, nil
}

func (r *MeetingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `delete from meetings where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("meetings")
	}
	return nil
}

// RecordOrphan stores an event whose patch failed. Upsert: a repeated
// failure for the same meeting keeps the latest event.
func (r *MeetingRepository) RecordOrphan(ctx context.Context, meetingID, eventID, meetLink string) error {
	_, err := r.pool.Exec(ctx, `
		insert into calendar_orphans (meeting_id, event_id, meet_link)
		values ($1, $2, $3)
		on conflict (meeting_id) do update set event_id = $2, meet_link = $3, created_at = now()`,
		meetingID, eventID, meetLink)
	return err
}

func (r *MeetingRepository) ListOrphans(ctx context.Context) ([]*CalendarOrphan, error) {
	rows, err := r.pool.Query(ctx, `
		select meeting_id, event_id, meet_link, created_at
		from calendar_orphans
		order by created_at`)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[CalendarOrphan])
}

func (r *MeetingRepository) DeleteOrphan(ctx context.Context, meetingID string) error {
	_, err := r.pool.Exec(ctx, `delete from calendar_orphans where meeting_id = $1`, meetingID)
	return err
}

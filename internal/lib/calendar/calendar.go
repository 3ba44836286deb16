// Package calendar creates Google Calendar events with Meet links for
// booked meetings. The client authenticates with a service account that
// impersonates the operator's calendar owner.
package calendar

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// EventDetails describes the event to schedule. Times are RFC3339 strings
// because they arrive from the booking form already formatted; the TimeZone
// tells Calendar how to interpret them.
type EventDetails struct {
	Summary     string
	Description string
	StartTime   string
	EndTime     string
	TimeZone    string
	Attendees   []string
}

// CreatedEvent is the subset of the Calendar response the booking workflow
// persists.
type CreatedEvent struct {
	EventID  string
	MeetLink string
	HTMLLink string
}

type Client struct {
	service    *calendar.Service
	calendarID string
	logger     *zerolog.Logger
}

// NewClient builds a Calendar client from a service account credentials
// file. The service account impersonates calendarID, which must have
// granted it domain-wide delegation.
func NewClient(ctx context.Context, credentialsFile, calendarID string, logger *zerolog.Logger) (*Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading calendar credentials file")
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, errors.Wrap(err, "parsing calendar credentials")
	}
	jwtCfg.Subject = calendarID

	service, err := calendar.NewService(ctx, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	if err != nil {
		return nil, errors.Wrap(err, "creating calendar service")
	}

	return &Client{
		service:    service,
		calendarID: calendarID,
		logger:     logger,
	}, nil
}

// CreateEvent inserts the event with a Meet conference attached and invites
// every attendee. Calendar notifies attendees itself (sendUpdates=all), so
// this is independent of the confirmation emails the booking workflow sends.
func (c *Client) CreateEvent(ctx context.Context, details EventDetails) (*CreatedEvent, error) {
	attendees := make([]*calendar.EventAttendee, 0, len(details.Attendees))
	for _, email := range details.Attendees {
		attendees = append(attendees, &calendar.EventAttendee{Email: email})
	}

	event := &calendar.Event{
		Summary:     details.Summary,
		Description: details.Description,
		Start: &calendar.EventDateTime{
			DateTime: details.StartTime,
			TimeZone: details.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: details.EndTime,
			TimeZone: details.TimeZone,
		},
		Attendees: attendees,
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	created, err := c.service.Events.
		Insert(c.calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "inserting calendar event")
	}
	if created.HangoutLink == "" {
		return nil, errors.New("calendar event created without a meet link")
	}

	c.logger.Info().
		Str("event_id", created.Id).
		Str("meet_link", created.HangoutLink).
		Msg("calendar event created")

	return &CreatedEvent{
		EventID:  created.Id,
		MeetLink: created.HangoutLink,
		HTMLLink: created.HtmlLink,
	}, nil
}

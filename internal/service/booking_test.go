package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldsupport/backend/internal/lib/calendar"
	"github.com/shieldsupport/backend/internal/lib/job"
	"github.com/shieldsupport/backend/internal/repository"
)

type fakeStore struct {
	mu       sync.Mutex
	meetings map[string]*repository.Meeting
	orphans  map[string]*repository.CalendarOrphan
	nextID   int

	failCreate bool
	failPatch  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		meetings: make(map[string]*repository.Meeting),
		orphans:  make(map[string]*repository.CalendarOrphan),
	}
}

func (s *fakeStore) Create(ctx context.Context, m *repository.Meeting) (*repository.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCreate {
		return nil, errors.New("insert failed")
	}

	s.nextID++
	stored := *m
	stored.ID = string(rune('a' + s.nextID - 1))
	stored.CreatedAt = time.Now()
	s.meetings[stored.ID] = &stored
	return &stored, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*repository.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.meetings[id]
	if !ok {
		return nil, errors.New("not found")
	}
	copied := *m
	return &copied, nil
}

func (s *fakeStore) SetCalendarEvent(ctx context.Context, id, eventID, meetLink string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failPatch {
		return errors.New("patch failed")
	}

	m, ok := s.meetings[id]
	if !ok {
		return errors.New("not found")
	}
	m.CalendarEventID = &eventID
	m.MeetLink = &meetLink
	return nil
}

func (s *fakeStore) RecordOrphan(ctx context.Context, meetingID, eventID, meetLink string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orphans[meetingID] = &repository.CalendarOrphan{
		MeetingID: meetingID,
		EventID:   eventID,
		MeetLink:  meetLink,
	}
	return nil
}

func (s *fakeStore) ListOrphans(ctx context.Context) ([]*repository.CalendarOrphan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*repository.CalendarOrphan
	for _, o := range s.orphans {
		copied := *o
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeStore) DeleteOrphan(ctx context.Context, meetingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.orphans, meetingID)
	return nil
}

type fakeScheduler struct {
	mu     sync.Mutex
	calls  int
	fail   bool
	events []calendar.EventDetails
}

func (f *fakeScheduler) CreateEvent(ctx context.Context, details calendar.EventDetails) (*calendar.CreatedEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.events = append(f.events, details)

	if f.fail {
		return nil, errors.New("calendar unavailable")
	}

	return &calendar.CreatedEvent{
		EventID:  "evt-123",
		MeetLink: "https://meet.example/abc",
		HTMLLink: "https://calendar.example/evt-123",
	}, nil
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	fail  bool
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return nil, errors.New("redis down")
	}

	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task"}, nil
}

func (f *fakeEnqueuer) byType(taskType string) []*asynq.Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*asynq.Task
	for _, t := range f.tasks {
		if t.Type() == taskType {
			out = append(out, t)
		}
	}
	return out
}

func newBookingFixture(scheduler EventScheduler) (*BookingService, *fakeStore, *fakeEnqueuer) {
	store := newFakeStore()
	enqueuer := &fakeEnqueuer{}
	log := zerolog.Nop()
	svc := NewBookingService(store, scheduler, enqueuer, "ops@shieldsupport.example", &log)
	return svc, store, enqueuer
}

func sampleMeeting() *repository.Meeting {
	return &repository.Meeting{
		Name:            "Ada Lovelace",
		Email:           "ada@example.com",
		Subject:         "Security audit",
		Phone:           "+15550100",
		Website:         "https://ada.example",
		DateLabel:       "March 3, 2026",
		TimeLabel:       "10:00 AM",
		ISODate:         time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
		TimeZone:        "America/New_York",
	}
}

func TestCreateBookingPersistsAndEnqueuesFinalize(t *testing.T) {
	svc, store, enqueuer := newBookingFixture(&fakeScheduler{})

	stored, err := svc.CreateBooking(context.Background(), sampleMeeting())
	require.NoError(t, err)
	require.NotEmpty(t, stored.ID)

	assert.Len(t, store.meetings, 1)
	assert.Nil(t, stored.MeetLink)
	assert.Nil(t, stored.CalendarEventID)

	finalize := enqueuer.byType(job.TaskMeetingFinalize)
	require.Len(t, finalize, 1)

	var p job.MeetingFinalizePayload
	require.NoError(t, json.Unmarshal(finalize[0].Payload(), &p))
	assert.Equal(t, stored.ID, p.MeetingID)
}

func TestCreateBookingFailsWhenPersistenceFails(t *testing.T) {
	svc, store, enqueuer := newBookingFixture(&fakeScheduler{})
	store.failCreate = true

	_, err := svc.CreateBooking(context.Background(), sampleMeeting())
	require.Error(t, err)

	// No background work may start for a booking that was never stored.
	assert.Empty(t, enqueuer.tasks)
}

func TestCreateBookingSurvivesEnqueueFailure(t *testing.T) {
	svc, store, enqueuer := newBookingFixture(&fakeScheduler{})
	enqueuer.fail = true

	stored, err := svc.CreateBooking(context.Background(), sampleMeeting())
	require.NoError(t, err)
	assert.Contains(t, store.meetings, stored.ID)
}

func TestFinalizeBookingPatchesLinkAndEventTogether(t *testing.T) {
	scheduler := &fakeScheduler{}
	svc, store, enqueuer := newBookingFixture(scheduler)

	stored, err := svc.CreateBooking(context.Background(), sampleMeeting())
	require.NoError(t, err)

	require.NoError(t, svc.FinalizeBooking(context.Background(), stored.ID))

	patched := store.meetings[stored.ID]
	require.NotNil(t, patched.MeetLink)
	require.NotNil(t, patched.CalendarEventID)
	assert.Equal(t, "https://meet.example/abc", *patched.MeetLink)
	assert.Equal(t, "evt-123", *patched.CalendarEventID)

	// Both emails go out with the real link.
	for _, taskType := range []string{job.TaskMeetingAdminEmail, job.TaskMeetingConfirmationEmail} {
		tasks := enqueuer.byType(taskType)
		require.Len(t, tasks, 1, taskType)

		var p job.MeetingEmailPayload
		require.NoError(t, json.Unmarshal(tasks[0].Payload(), &p))
		assert.Equal(t, "https://meet.example/abc", p.MeetLink)
	}
}

func TestFinalizeBookingCalendarFailureUsesFallbackLink(t *testing.T) {
	scheduler := &fakeScheduler{fail: true}
	svc, store, enqueuer := newBookingFixture(scheduler)

	stored, err := svc.CreateBooking(context.Background(), sampleMeeting())
	require.NoError(t, err)

	require.NoError(t, svc.FinalizeBooking(context.Background(), stored.ID))

	// The record stays unpatched so the gap is visible.
	unpatched := store.meetings[stored.ID]
	assert.Nil(t, unpatched.MeetLink)
	assert.Nil(t, unpatched.CalendarEventID)

	for _, taskType := range []string{job.TaskMeetingAdminEmail, job.TaskMeetingConfirmationEmail} {
		tasks := enqueuer.byType(taskType)
		require.Len(t, tasks, 1, taskType)

		var p job.MeetingEmailPayload
		require.NoError(t, json.Unmarshal(tasks[0].Payload(), &p))
		assert.Equal(t, FallbackMeetingLink, p.MeetLink)
	}
}

func TestFinalizeBookingWithoutSchedulerUsesFallbackLink(t *testing.T) {
	svc, _, enqueuer := newBookingFixture(nil)

	stored, err := svc.CreateBooking(context.Background(), sampleMeeting())
	require.NoError(t, err)

	require.NoError(t, svc.FinalizeBooking(context.Background(), stored.ID))

	tasks := enqueuer.byType(job.TaskMeetingConfirmationEmail)
	require.Len(t, tasks, 1)

	var p job.MeetingEmailPayload
	require.NoError(t, json.Unmarshal(tasks[0].Payload(), &p))
	assert.Equal(t, FallbackMeetingLink, p.MeetLink)
}

func TestFinalizeBookingPatchFailureRecordsOrphanAndKeepsRealLink(t *testing.T) {
	scheduler := &fakeScheduler{}
	svc, store, enqueuer := newBookingFixture(scheduler)

	stored, err := svc.CreateBooking(context.Background(), sampleMeeting())
	require.NoError(t, err)

	store.failPatch = true
	require.NoError(t, svc.FinalizeBooking(context.Background(), stored.ID))

	require.Contains(t, store.orphans, stored.ID)
	assert.Equal(t, "evt-123", store.orphans[stored.ID].EventID)

	// Emails still carry the real link: the event exists even if the record
	// does not reflect it yet.
	tasks := enqueuer.byType(job.TaskMeetingAdminEmail)
	require.Len(t, tasks, 1)

	var p job.MeetingEmailPayload
	require.NoError(t, json.Unmarshal(tasks[0].Payload(), &p))
	assert.Equal(t, "https://meet.example/abc", p.MeetLink)
}

func TestFinalizeBookingEmailTasksAreIndependent(t *testing.T) {
	scheduler := &fakeScheduler{}
	svc, _, enqueuer := newBookingFixture(scheduler)

	stored, err := svc.CreateBooking(context.Background(), sampleMeeting())
	require.NoError(t, err)

	// Admin and confirmation emails are separate tasks, so the queue can
	// fail one without touching the other.
	require.NoError(t, svc.FinalizeBooking(context.Background(), stored.ID))

	admin := enqueuer.byType(job.TaskMeetingAdminEmail)
	confirm := enqueuer.byType(job.TaskMeetingConfirmationEmail)
	require.Len(t, admin, 1)
	require.Len(t, confirm, 1)
	assert.NotEqual(t, admin[0].Type(), confirm[0].Type())

	var adminPayload, confirmPayload job.MeetingEmailPayload
	require.NoError(t, json.Unmarshal(admin[0].Payload(), &adminPayload))
	require.NoError(t, json.Unmarshal(confirm[0].Payload(), &confirmPayload))
	assert.Equal(t, "ops@shieldsupport.example", adminPayload.To)
	assert.Equal(t, "ada@example.com", confirmPayload.To)
}

func TestFinalizeBookingEventDetails(t *testing.T) {
	scheduler := &fakeScheduler{}
	svc, _, _ := newBookingFixture(scheduler)

	stored, err := svc.CreateBooking(context.Background(), sampleMeeting())
	require.NoError(t, err)

	require.NoError(t, svc.FinalizeBooking(context.Background(), stored.ID))

	require.Len(t, scheduler.events, 1)
	details := scheduler.events[0]

	assert.Equal(t, "Security audit with Ada Lovelace", details.Summary)
	assert.Equal(t, "America/New_York", details.TimeZone)
	assert.Contains(t, details.Attendees, "ada@example.com")
	assert.Contains(t, details.Attendees, "ops@shieldsupport.example")

	start, err := time.Parse(time.RFC3339, details.StartTime)
	require.NoError(t, err)
	end, err := time.Parse(time.RFC3339, details.EndTime)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, end.Sub(start))
}

func TestConcurrentBookingsDoNotInterfere(t *testing.T) {
	scheduler := &fakeScheduler{}
	svc, store, enqueuer := newBookingFixture(scheduler)

	const n = 8
	var wg sync.WaitGroup
	ids := make(chan string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, err := svc.CreateBooking(context.Background(), sampleMeeting())
			assert.NoError(t, err)
			ids <- stored.ID
		}()
	}
	wg.Wait()
	close(ids)

	var wg2 sync.WaitGroup
	for id := range ids {
		wg2.Add(1)
		go func(id string) {
			defer wg2.Done()
			assert.NoError(t, svc.FinalizeBooking(context.Background(), id))
		}(id)
	}
	wg2.Wait()

	assert.Len(t, store.meetings, n)
	assert.Len(t, enqueuer.byType(job.TaskMeetingAdminEmail), n)
	assert.Len(t, enqueuer.byType(job.TaskMeetingConfirmationEmail), n)
}

func TestReconcileOrphansPatchesAndClears(t *testing.T) {
	scheduler := &fakeScheduler{}
	svc, store, _ := newBookingFixture(scheduler)

	stored, err := svc.CreateBooking(context.Background(), sampleMeeting())
	require.NoError(t, err)

	store.failPatch = true
	require.NoError(t, svc.FinalizeBooking(context.Background(), stored.ID))
	require.Contains(t, store.orphans, stored.ID)

	// The next sweep succeeds once the store recovers.
	store.failPatch = false
	svc.ReconcileOrphans(context.Background())

	assert.Empty(t, store.orphans)
	patched := store.meetings[stored.ID]
	require.NotNil(t, patched.MeetLink)
	assert.Equal(t, "https://meet.example/abc", *patched.MeetLink)
	require.NotNil(t, patched.CalendarEventID)
	assert.Equal(t, "evt-123", *patched.CalendarEventID)
}

func TestReconcileOrphansKeepsUnpatchableOrphan(t *testing.T) {
	scheduler := &fakeScheduler{}
	svc, store, _ := newBookingFixture(scheduler)

	stored, err := svc.CreateBooking(context.Background(), sampleMeeting())
	require.NoError(t, err)

	store.failPatch = true
	require.NoError(t, svc.FinalizeBooking(context.Background(), stored.ID))

	svc.ReconcileOrphans(context.Background())

	// Still failing; the orphan must survive for the next sweep.
	assert.Contains(t, store.orphans, stored.ID)
}

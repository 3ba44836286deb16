// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
//
// The booking workflow runs here: finalizing a meeting (calendar event plus
// record patch) and the two notification emails are all independent tasks,
// so a failure in one never blocks the others.
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/shieldsupport/backend/internal/config"
	"github.com/shieldsupport/backend/internal/lib/email"
)

// BookingFinalizer resolves a stored meeting into a calendar event and
// patches the record. The service package implements it; the indirection
// keeps this package free of a dependency on service internals.
type BookingFinalizer interface {
	FinalizeBooking(ctx context.Context, meetingID string) error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	// server runs worker processes that pull tasks from Redis and execute handlers.
	server *asynq.Server

	logger *zerolog.Logger

	// Handler dependencies, set by InitHandlers before Start.
	emailClient *email.Client
	finalizer   BookingFinalizer
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights distribute the 10 workers by ratio: out of 10 in-flight
// tasks, roughly 6 can be critical, 3 default, 1 low. Meeting finalization
// goes on critical so it never starves behind email sends.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// InitHandlers wires the dependencies task handlers need. It must be called
// before Start; handlers fail their tasks if a dependency is missing rather
// than panicking.
func (j *JobService) InitHandlers(emailClient *email.Client, finalizer BookingFinalizer) {
	j.emailClient = emailClient
	j.finalizer = finalizer
}

// Start registers task handlers and starts the worker server. Workers run
// in their own goroutines; Start returns once they are up.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskMeetingFinalize, j.handleMeetingFinalizeTask)
	mux.HandleFunc(TaskMeetingAdminEmail, j.handleMeetingAdminEmailTask)
	mux.HandleFunc(TaskMeetingConfirmationEmail, j.handleMeetingConfirmationEmailTask)
	mux.HandleFunc(TaskContactAdminEmail, j.handleContactAdminEmailTask)
	mux.HandleFunc(TaskContactAckEmail, j.handleContactAckEmailTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}

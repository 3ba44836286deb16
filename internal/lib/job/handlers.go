package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

// handleMeetingFinalizeTask resolves a newly stored meeting: the finalizer
// creates the calendar event, patches the record, and dispatches the two
// notification emails as further tasks.
func (j *JobService) handleMeetingFinalizeTask(ctx context.Context, t *asynq.Task) error {
	if j.finalizer == nil {
		return errors.New("job handlers not initialized")
	}

	var p MeetingFinalizePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal meeting finalize payload: %w", err)
	}

	j.logger.Info().
		Str("type", "meeting_finalize").
		Str("meeting_id", p.MeetingID).
		Msg("Processing meeting finalize task")

	if err := j.finalizer.FinalizeBooking(ctx, p.MeetingID); err != nil {
		j.logger.Error().
			Str("type", "meeting_finalize").
			Str("meeting_id", p.MeetingID).
			Err(err).
			Msg("Failed to finalize meeting booking")
		return err
	}

	j.logger.Info().
		Str("type", "meeting_finalize").
		Str("meeting_id", p.MeetingID).
		Msg("Meeting booking finalized")

	return nil
}

func (j *JobService) handleMeetingAdminEmailTask(ctx context.Context, t *asynq.Task) error {
	if j.emailClient == nil {
		return errors.New("job handlers not initialized")
	}

	var p MeetingEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal meeting admin email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "meeting_email_admin").
		Str("to", p.To).
		Msg("Processing meeting admin email task")

	if err := j.emailClient.SendMeetingRequestNotification(p.To, p.MeetingEmailDetails()); err != nil {
		j.logger.Error().
			Str("type", "meeting_email_admin").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send meeting admin email")
		return err
	}

	return nil
}

func (j *JobService) handleMeetingConfirmationEmailTask(ctx context.Context, t *asynq.Task) error {
	if j.emailClient == nil {
		return errors.New("job handlers not initialized")
	}

	var p MeetingEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal meeting confirmation email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "meeting_email_confirmation").
		Str("to", p.To).
		Msg("Processing meeting confirmation email task")

	if err := j.emailClient.SendMeetingConfirmation(p.To, p.MeetingEmailDetails()); err != nil {
		j.logger.Error().
			Str("type", "meeting_email_confirmation").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send meeting confirmation email")
		return err
	}

	return nil
}

func (j *JobService) handleContactAdminEmailTask(ctx context.Context, t *asynq.Task) error {
	if j.emailClient == nil {
		return errors.New("job handlers not initialized")
	}

	var p ContactEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal contact admin email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "contact_email_admin").
		Str("to", p.To).
		Msg("Processing contact admin email task")

	if err := j.emailClient.SendContactNotification(p.To, p.Name, p.Email, p.Subject, p.Message); err != nil {
		j.logger.Error().
			Str("type", "contact_email_admin").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send contact admin email")
		return err
	}

	return nil
}

func (j *JobService) handleContactAckEmailTask(ctx context.Context, t *asynq.Task) error {
	if j.emailClient == nil {
		return errors.New("job handlers not initialized")
	}

	var p ContactEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal contact ack email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "contact_email_ack").
		Str("to", p.To).
		Msg("Processing contact acknowledgement email task")

	if err := j.emailClient.SendContactAcknowledgement(p.To, p.Name, p.Subject); err != nil {
		j.logger.Error().
			Str("type", "contact_email_ack").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send contact acknowledgement email")
		return err
	}

	return nil
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shieldsupport/backend/internal/lib/job"
	"github.com/shieldsupport/backend/internal/middleware"
	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/server"
	"github.com/shieldsupport/backend/internal/validation"
)

type MessageHandler struct {
	Handler
	messages *repository.MessageRepository
}

func NewMessageHandler(s *server.Server, messages *repository.MessageRepository) *MessageHandler {
	return &MessageHandler{
		Handler:  NewHandler(s),
		messages: messages,
	}
}

type CreateMessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (r *CreateMessageRequest) Validate() error {
	return validation.Struct(r)
}

// Create stores the contact-form message and dispatches the operator
// notification and sender acknowledgement as independent background tasks.
// Neither email can fail the request once the message is stored.
func (h *MessageHandler) Create(c echo.Context, req *CreateMessageRequest) (*repository.Message, error) {
	stored, err := h.messages.Create(c.Request().Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return nil, err
	}

	logger := middleware.GetLogger(c)

	adminPayload := job.ContactEmailPayload{
		To:      h.server.Config.Email.AdminAddress,
		Name:    stored.Name,
		Email:   stored.Email,
		Subject: stored.Subject,
		Message: stored.Message,
	}
	if task, err := job.NewContactAdminEmailTask(adminPayload); err != nil {
		logger.Error().Str("message_id", stored.ID).Err(err).Msg("Failed to build contact admin email task")
	} else if _, err := h.server.Job.Client.Enqueue(task); err != nil {
		logger.Error().Str("message_id", stored.ID).Err(err).Msg("Failed to enqueue contact admin email task")
	}

	ackPayload := adminPayload
	ackPayload.To = stored.Email
	if task, err := job.NewContactAckEmailTask(ackPayload); err != nil {
		logger.Error().Str("message_id", stored.ID).Err(err).Msg("Failed to build contact ack email task")
	} else if _, err := h.server.Job.Client.Enqueue(task); err != nil {
		logger.Error().Str("message_id", stored.ID).Err(err).Msg("Failed to enqueue contact ack email task")
	}

	return stored, nil
}

func (h *MessageHandler) List(c echo.Context, _ *emptyRequest) ([]*repository.Message, error) {
	return h.messages.List(c.Request().Context())
}

type DeleteMessageRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteMessageRequest) Validate() error {
	return validation.Struct(r)
}

func (h *MessageHandler) Delete(c echo.Context, req *DeleteMessageRequest) error {
	return h.messages.Delete(c.Request().Context(), req.ID)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/server"
	"github.com/shieldsupport/backend/internal/validation"
)

type SubscriberHandler struct {
	Handler
	subscribers *repository.SubscriberRepository
}

func NewSubscriberHandler(s *server.Server, subscribers *repository.SubscriberRepository) *SubscriberHandler {
	return &SubscriberHandler{
		Handler:     NewHandler(s),
		subscribers: subscribers,
	}
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *SubscribeRequest) Validate() error {
	return validation.Struct(r)
}

// Subscribe adds an email to the newsletter list. A duplicate address comes
// back as a 400 from the unique constraint.
func (h *SubscriberHandler) Subscribe(c echo.Context, req *SubscribeRequest) (*repository.Subscriber, error) {
	return h.subscribers.Create(c.Request().Context(), req.Email)
}

func (h *SubscriberHandler) List(c echo.Context, _ *emptyRequest) ([]*repository.Subscriber, error) {
	return h.subscribers.List(c.Request().Context())
}

type DeleteSubscriberRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteSubscriberRequest) Validate() error {
	return validation.Struct(r)
}

func (h *SubscriberHandler) Delete(c echo.Context, req *DeleteSubscriberRequest) error {
	return h.subscribers.Delete(c.Request().Context(), req.ID)
}

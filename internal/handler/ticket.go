package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shieldsupport/backend/internal/middleware"
	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/server"
	"github.com/shieldsupport/backend/internal/validation"
)

type TicketHandler struct {
	Handler
	tickets *repository.TicketRepository
}

func NewTicketHandler(s *server.Server, tickets *repository.TicketRepository) *TicketHandler {
	return &TicketHandler{
		Handler: NewHandler(s),
		tickets: tickets,
	}
}

type CreateTicketRequest struct {
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=Low Medium High"`
}

func (r *CreateTicketRequest) Validate() error {
	return validation.Struct(r)
}

// Create opens a ticket for the authenticated user.
func (h *TicketHandler) Create(c echo.Context, req *CreateTicketRequest) (*repository.Ticket, error) {
	priority := req.Priority
	if priority == "" {
		priority = "Medium"
	}

	return h.tickets.Create(c.Request().Context(), middleware.GetUserID(c), req.Subject, req.Message, priority)
}

// List returns the caller's own tickets.
func (h *TicketHandler) List(c echo.Context, _ *emptyRequest) ([]*repository.Ticket, error) {
	return h.tickets.ListByUser(c.Request().Context(), middleware.GetUserID(c))
}

// ListAll returns every ticket for the admin dashboard.
func (h *TicketHandler) ListAll(c echo.Context, _ *emptyRequest) ([]*repository.Ticket, error) {
	return h.tickets.ListAll(c.Request().Context())
}

type UpdateTicketRequest struct {
	ID     string `param:"id" validate:"required,uuid"`
	Status string `json:"status" validate:"required,oneof=Open 'In Progress' Resolved Closed"`
}

func (r *UpdateTicketRequest) Validate() error {
	return validation.Struct(r)
}

// Update changes ticket status, the only mutation tickets support.
func (h *TicketHandler) Update(c echo.Context, req *UpdateTicketRequest) (*repository.Ticket, error) {
	return h.tickets.UpdateStatus(c.Request().Context(), req.ID, req.Status)
}

// Package handler is the first entry point for business logic after the
// router.
//
// It parses requests, handles input validation using the validation
// package, and calls the appropriate repository or service. It acts as the
// interface between the HTTP request and the core business logic.
package handler

import (
	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/server"
	"github.com/shieldsupport/backend/internal/service"
)

// Handlers is a container that groups all HTTP handlers so router setup
// passes one object around instead of many.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Auth       *AuthHandler
	Blog       *BlogHandler
	Career     *CareerHandler
	Message    *MessageHandler
	Ticket     *TicketHandler
	Subscriber *SubscriberHandler
	Payment    *PaymentHandler
	Meeting    *MeetingHandler
	User       *UserHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services, repos *repository.Repositories) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Auth:       NewAuthHandler(s, services.Auth, repos.Users),
		Blog:       NewBlogHandler(s, repos.Blogs),
		Career:     NewCareerHandler(s, services.Application, repos.Careers),
		Message:    NewMessageHandler(s, repos.Messages),
		Ticket:     NewTicketHandler(s, repos.Tickets),
		Subscriber: NewSubscriberHandler(s, repos.Subscribers),
		Payment:    NewPaymentHandler(s, repos.Payments),
		Meeting:    NewMeetingHandler(s, services.Booking, repos.Meetings),
		User:       NewUserHandler(s, repos.Users),
	}
}

// emptyRequest is the payload type for endpoints that take no input beyond
// the route itself.
type emptyRequest struct{}

func (r *emptyRequest) Validate() error { return nil }

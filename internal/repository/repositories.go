package repository

import (
	"github.com/shieldsupport/backend/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users       *UserRepository
	Blogs       *BlogRepository
	Careers     *CareerRepository
	Messages    *MessageRepository
	Tickets     *TicketRepository
	Subscribers *SubscriberRepository
	Payments    *PaymentRepository
	Meetings    *MeetingRepository
}

// NewRepositories constructs the repository container on top of the shared
// connection pool.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool
	return &Repositories{
		Users:       &UserRepository{pool: pool},
		Blogs:       &BlogRepository{pool: pool},
		Careers:     &CareerRepository{pool: pool},
		Messages:    &MessageRepository{pool: pool},
		Tickets:     &TicketRepository{pool: pool},
		Subscribers: &SubscriberRepository{pool: pool},
		Payments:    &PaymentRepository{pool: pool},
		Meetings:    &MeetingRepository{pool: pool},
	}
}

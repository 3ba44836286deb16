package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Ticket struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	Priority  string    `json:"priority" db:"priority"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type TicketRepository struct {
	pool *pgxpool.Pool
}

const ticketColumns = "id, user_id, subject, message, priority, status, created_at, updated_at"

func (r *TicketRepository) Create(ctx context.Context, userID, subject, message, priority string) (*Ticket, error) {
	rows, err := r.pool.Query(ctx, `
		insert into tickets (user_id, subject, message, priority)
		values ($1, $2, $3, $4)
		returning `+ticketColumns,
		userID, subject, message, priority)
	if err != nil {
		return nil, err
	}

	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Ticket])
}

// ListByUser returns the requesting user's own tickets, newest first.
func (r *TicketRepository) ListByUser(ctx context.Context, userID string) ([]*Ticket, error) {
	rows, err := r.pool.Query(ctx, `
		select `+ticketColumns+` from tickets
		where user_id = $1
		order by created_at desc`,
		userID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Ticket])
}

func (r *TicketRepository) ListAll(ctx context.Context) ([]*Ticket, error) {
	rows, err := r.pool.Query(ctx, `select `+ticketColumns+` from tickets order by created_at desc`)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Ticket])
}

// UpdateStatus is the only mutation tickets support after creation.
func (r *TicketRepository) UpdateStatus(ctx context.Context, id, status string) (*Ticket, error) {
	rows, err := r.pool.Query(ctx, `
		update tickets set status = $2, updated_at = now()
		where id = $1
		returning `+ticketColumns,
		id, status)
	if err != nil {
		return nil, err
	}

	ticket, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Ticket])
	if err != nil {
		return nil, wrapNoRows(err, "tickets")
	}
	return ticket, nil
}

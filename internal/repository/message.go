package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Message is a stored contact-form submission.
type Message struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type MessageRepository struct {
	pool *pgxpool.Pool
}

const messageColumns = "id, name, email, subject, message, created_at"

func (r *MessageRepository) Create(ctx context.Context, name, email, subject, body string) (*Message, error) {
	rows, err := r.pool.Query(ctx, `
		insert into messages (name, email, subject, message)
		values ($1, $2, $3, $4)
		returning `+messageColumns,
		name, email, subject, body)
	if err != nil {
		return nil, err
	}

	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Message])
}

func (r *MessageRepository) List(ctx context.Context) ([]*Message, error) {
	rows, err := r.pool.Query(ctx, `select `+messageColumns+` from messages order by created_at desc`)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Message])
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `delete from messages where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("messages")
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Subscriber struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type SubscriberRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a subscriber. A duplicate email surfaces as a unique
// violation, which the error layer turns into an already-subscribed 400.
func (r *SubscriberRepository) Create(ctx context.Context, email string) (*Subscriber, error) {
	rows, err := r.pool.Query(ctx, `
		insert into subscribers (email)
		values ($1)
		returning id, email, created_at`,
		email)
	if err != nil {
		return nil, err
	}

	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Subscriber])
}

func (r *SubscriberRepository) List(ctx context.Context) ([]*Subscriber, error) {
	rows, err := r.pool.Query(ctx, `select id, email, created_at from subscribers order by created_at desc`)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Subscriber])
}

func (r *SubscriberRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `delete from subscribers where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("subscribers")
	}
	return nil
}

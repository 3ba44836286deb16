package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Payment is a mock ledger entry. No processor is wired; entries record
// what a real integration would have charged.
type Payment struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"userId" db:"user_id"`
	Amount        float64   `json:"amount" db:"amount"`
	Plan          string    `json:"plan" db:"plan"`
	Status        string    `json:"status" db:"status"`
	TransactionID string    `json:"transactionId" db:"transaction_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

type PaymentRepository struct {
	pool *pgxpool.Pool
}

const paymentColumns = "id, user_id, amount, plan, status, transaction_id, created_at"

func (r *PaymentRepository) Create(ctx context.Context, userID string, amount float64, plan, status, transactionID string) (*Payment, error) {
	rows, err := r.pool.Query(ctx, `
		insert into payments (user_id, amount, plan, status, transaction_id)
		values ($1, $2, $3, $4, $5)
		returning `+paymentColumns,
		userID, amount, plan, status, transactionID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Payment])
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]*Payment, error) {
	rows, err := r.pool.Query(ctx, `
		select `+paymentColumns+` from payments
		where user_id = $1
		order by created_at desc`,
		userID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Payment])
}

func (r *PaymentRepository) ListAll(ctx context.Context) ([]*Payment, error) {
	rows, err := r.pool.Query(ctx, `select `+paymentColumns+` from payments order by created_at desc`)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Payment])
}

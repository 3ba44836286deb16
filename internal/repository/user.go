package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User is an account row. PasswordHash never leaves the repository layer in
// API responses.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserStats summarizes the account base for the admin dashboard.
type UserStats struct {
	TotalUsers  int64 `json:"totalUsers"`
	ActiveUsers int64 `json:"activeUsers"`
	AdminUsers  int64 `json:"adminUsers"`
	NewLast7d   int64 `json:"newUsersLast7Days"`
}

type UserRepository struct {
	pool *pgxpool.Pool
}

const userColumns = "id, name, email, password_hash, role, is_active, created_at, updated_at"

func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	rows, err := r.pool.Query(ctx, `
		insert into users (name, email, password_hash, role)
		values ($1, $2, $3, $4)
		returning `+userColumns,
		name, email, passwordHash, role)
	if err != nil {
		return nil, err
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	rows, err := r.pool.Query(ctx, `select `+userColumns+` from users where id = $1`, id)
	if err != nil {
		return nil, err
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if err != nil {
		return nil, wrapNoRows(err, "users")
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	rows, err := r.pool.Query(ctx, `select `+userColumns+` from users where email = $1`, email)
	if err != nil {
		return nil, err
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if err != nil {
		return nil, wrapNoRows(err, "users")
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.pool.Query(ctx, `select `+userColumns+` from users order by created_at desc`)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[User])
}

// Update applies a partial update. Nil fields keep their current value.
func (r *UserRepository) Update(ctx context.Context, id string, name, email, passwordHash, role *string, isActive *bool) (*User, error) {
	rows, err := r.pool.Query(ctx, `
		update users set
			name = coalesce($2, name),
			email = coalesce($3, email),
			password_hash = coalesce($4, password_hash),
			role = coalesce($5, role),
			is_active = coalesce($6, is_active),
			updated_at = now()
		where id = $1
		returning `+userColumns,
		id, name, email, passwordHash, role, isActive)
	if err != nil {
		return nil, err
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if err != nil {
		return nil, wrapNoRows(err, "users")
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `delete from users where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("users")
	}
	return nil
}

func (r *UserRepository) Stats(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	err := r.pool.QueryRow(ctx, `
		select
			count(*),
			count(*) filter (where is_active),
			count(*) filter (where role = 'admin'),
			count(*) filter (where created_at >= now() - interval '7 days')
		from users`).
		Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.AdminUsers, &stats.NewLast7d)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

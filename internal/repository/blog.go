package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BlogSection is one titled block of post body content, optionally
// illustrated.
type BlogSection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type Blog struct {
	ID               string        `json:"id" db:"id"`
	Title            string        `json:"title" db:"title"`
	ShortDescription string        `json:"shortDescription" db:"short_description"`
	Content          string        `json:"content" db:"content"`
	Author           string        `json:"author" db:"author"`
	AuthorBio        string        `json:"authorBio" db:"author_bio"`
	Image            string        `json:"image" db:"image"`
	Category         string        `json:"category" db:"category"`
	Published        bool          `json:"published" db:"published"`
	Sections         []BlogSection `json:"sections" db:"sections"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" db:"updated_at"`
}

type BlogRepository struct {
	pool *pgxpool.Pool
}

const blogColumns = "id, title, short_description, content, author, author_bio, image, category, published, sections, created_at, updated_at"

func (r *BlogRepository) Create(ctx context.Context, b *Blog) (*Blog, error) {
	rows, err := r.pool.Query(ctx, `
		insert into blogs (title, short_description, content, author, author_bio, image, category, published, sections)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		returning `+blogColumns,
		b.Title, b.ShortDescription, b.Content, b.Author, b.AuthorBio, b.Image, b.Category, b.Published, b.Sections)
	if err != nil {
		return nil, err
	}

	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Blog])
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*Blog, error) {
	rows, err := r.pool.Query(ctx, `select `+blogColumns+` from blogs where id = $1`, id)
	if err != nil {
		return nil, err
	}

	blog, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Blog])
	if err != nil {
		return nil, wrapNoRows(err, "blogs")
	}
	return blog, nil
}

// ListPage returns one page of posts, newest first, plus the total count
// for pagination metadata.
func (r *BlogRepository) ListPage(ctx context.Context, page, limit int) ([]*Blog, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from blogs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx, `
		select `+blogColumns+` from blogs
		order by created_at desc
		limit $1 offset $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}

	blogs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Blog])
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *BlogRepository) Update(ctx context.Context, id string, b *Blog) (*Blog, error) {
	rows, err := r.pool.Query(ctx, `
		update blogs set
			title = $2,
			short_description = $3,
			content = $4,
			author = $5,
			author_bio = $6,
			image = $7,
			category = $8,
			published = $9,
			sections = $10,
			updated_at = now()
		where id = $1
		returning `+blogColumns,
		id, b.Title, b.ShortDescription, b.Content, b.Author, b.AuthorBio, b.Image, b.Category, b.Published, b.Sections)
	if err != nil {
		return nil, err
	}

	blog, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Blog])
	if err != nil {
		return nil, wrapNoRows(err, "blogs")
	}
	return blog, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `delete from blogs where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("blogs")
	}
	return nil
}

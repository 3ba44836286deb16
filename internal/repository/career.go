package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JobLocation describes where a role is based.
type JobLocation struct {
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

// SalaryRange is an advertised compensation band.
type SalaryRange struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

type Career struct {
	ID               string      `json:"id" db:"id"`
	JobTitle         string      `json:"jobTitle" db:"job_title"`
	JobCode          string      `json:"jobCode" db:"job_code"`
	ShortDescription string      `json:"shortDescription" db:"short_description"`
	FullDescription  string      `json:"fullDescription" db:"full_description"`
	Department       string      `json:"department" db:"department"`
	Industry         string      `json:"industry" db:"industry"`
	WorkModel        string      `json:"workModel" db:"work_model"`
	EmploymentType   string      `json:"employmentType" db:"employment_type"`
	ExperienceLevel  string      `json:"experienceLevel" db:"experience_level"`
	Location         JobLocation `json:"location" db:"location"`
	SalaryRange      SalaryRange `json:"salaryRange" db:"salary_range"`
	SkillsRequired   []string    `json:"skillsRequired" db:"skills_required"`
	Responsibilities []string    `json:"responsibilities" db:"responsibilities"`
	Qualifications   []string    `json:"qualifications" db:"qualifications"`
	ApplyEmail       string      `json:"applyEmail" db:"apply_email"`
	ApplyLink        string      `json:"applyLink" db:"apply_link"`
	IsActive         bool        `json:"isActive" db:"is_active"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at"`
}

type CareerRepository struct {
	pool *pgxpool.Pool
}

const careerColumns = `id, job_title, job_code, short_description, full_description, department, industry,
	work_model, employment_type, experience_level, location, salary_range, skills_required,
	responsibilities, qualifications, apply_email, apply_link, is_active, created_at, updated_at`

func (r *CareerRepository) Create(ctx context.Context, c *Career) (*Career, error) {
	rows, err := r.pool.Query(ctx, `
		insert into careers (job_title, job_code, short_description, full_description, department, industry,
			work_model, employment_type, experience_level, location, salary_range, skills_required,
			responsibilities, qualifications, apply_email, apply_link, is_active)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		returning `+careerColumns,
		c.JobTitle, c.JobCode, c.ShortDescription, c.FullDescription, c.Department, c.Industry,
		c.WorkModel, c.EmploymentType, c.ExperienceLevel, c.Location, c.SalaryRange, c.SkillsRequired,
		c.Responsibilities, c.Qualifications, c.ApplyEmail, c.ApplyLink, c.IsActive)
	if err != nil {
		return nil, err
	}

	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Career])
}

func (r *CareerRepository) GetByID(ctx context.Context, id string) (*Career, error) {
	rows, err := r.pool.Query(ctx, `select `+careerColumns+` from careers where id = $1`, id)
	if err != nil {
		return nil, err
	}

	career, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Career])
	if err != nil {
		return nil, wrapNoRows(err, "careers")
	}
	return career, nil
}

// List returns postings newest first. When activeOnly is set, inactive
// postings are hidden (the public listing).
func (r *CareerRepository) List(ctx context.Context, activeOnly bool) ([]*Career, error) {
	query := `select ` + careerColumns + ` from careers order by created_at desc`
	if activeOnly {
		query = `select ` + careerColumns + ` from careers where is_active order by created_at desc`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Career])
}

func (r *CareerRepository) Update(ctx context.Context, id string, c *Career) (*Career, error) {
	rows, err := r.pool.Query(ctx, `
		update careers set
			job_title = $2,
			short_description = $3,
			full_description = $4,
			department = $5,
			industry = $6,
			work_model = $7,
			employment_type = $8,
			experience_level = $9,
			location = $10,
			salary_range = $11,
			skills_required = $12,
			responsibilities = $13,
			qualifications = $14,
			apply_email = $15,
			apply_link = $16,
			is_active = $17,
			updated_at = now()
		where id = $1
		returning `+careerColumns,
		id, c.JobTitle, c.ShortDescription, c.FullDescription, c.Department, c.Industry,
		c.WorkModel, c.EmploymentType, c.ExperienceLevel, c.Location, c.SalaryRange, c.SkillsRequired,
		c.Responsibilities, c.Qualifications, c.ApplyEmail, c.ApplyLink, c.IsActive)
	if err != nil {
		return nil, err
	}

	career, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[Career])
	if err != nil {
		return nil, wrapNoRows(err, "careers")
	}
	return career, nil
}

func (r *CareerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `delete from careers where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("careers")
	}
	return nil
}

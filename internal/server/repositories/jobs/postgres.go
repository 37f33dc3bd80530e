package jobs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

const jobColumns = `id, title, description, requirements, location, salary_range, company, is_active, posted_by, created_at, updated_at`

// PostgresRepository implements job storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (*models.Job, error) {
	j := &models.Job{}
	err := s.Scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Location, &j.SalaryRange,
		&j.Company, &j.IsActive, &j.PostedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *PostgresRepository) queryJobs(ctx context.Context, query string, args ...any) ([]*models.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	defer rows.Close()

	result := []*models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		result = append(result, j)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return result, nil
}

// Create inserts job exactly as given, including IsActive.
func (r *PostgresRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	query :=
		`INSERT INTO jobs (title, description, requirements, location, salary_range, company, is_active, posted_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING ` + jobColumns

	j, err := scanJob(r.db.QueryRowContext(ctx, query,
		job.Title, job.Description, job.Requirements, job.Location, job.SalaryRange, job.Company, job.IsActive, job.PostedBy))
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return j, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	j, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return j, nil
}

// ListActive returns active postings, newest first.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]*models.Job, error) {
	return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE is_active = TRUE ORDER BY created_at DESC`)
}

// ListAll returns every posting regardless of status, newest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Job, error) {
	return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
}

// Update edits the descriptive fields of p.ID; is_active is left alone.
func (r *PostgresRepository) Update(ctx context.Context, p *models.JobPatch) (*models.Job, error) {
	query :=
		`UPDATE jobs SET title = $2, description = $3,
		        requirements = COALESCE($4, requirements),
		        location = COALESCE($5, location),
		        salary_range = COALESCE($6, salary_range),
		        company = COALESCE($7, company),
		        updated_at = now()
		 WHERE id = $1
		 RETURNING ` + jobColumns

	j, err := scanJob(r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Description, p.Requirements, p.Location, p.SalaryRange, p.Company))
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return j, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) (*models.Job, error) {
	query :=
		`UPDATE jobs SET is_active = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + jobColumns

	j, err := scanJob(r.db.QueryRowContext(ctx, query, id, active))
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return j, nil
}

// Delete removes the posting. Its applications go with it (ON DELETE CASCADE).
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return dbx.ClassifyError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

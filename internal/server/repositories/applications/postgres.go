package applications

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

var appFields = []string{"id", "job_id", "user_id", "name", "email", "phone", "expected_salary", "cover_letter",
	"location", "city", "education", "position_applying", "resume_url", "resume_key", "status", "applied_at"}

var jobFields = []string{"id", "title", "description", "requirements", "location", "salary_range", "company",
	"is_active", "posted_by", "created_at", "updated_at"}

func columns(prefix string, fields []string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = prefix + f
	}
	return strings.Join(out, ", ")
}

var appColumns = columns("", appFields)

// PostgresRepository implements application storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func appDest(a *models.Application) []any {
	return []any{&a.ID, &a.JobID, &a.UserID, &a.Name, &a.Email, &a.Phone, &a.ExpectedSalary, &a.CoverLetter,
		&a.Location, &a.City, &a.Education, &a.PositionApplying, &a.ResumeURL, &a.ResumeKey, &a.Status, &a.AppliedAt}
}

func jobDest(j *models.Job) []any {
	return []any{&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Location, &j.SalaryRange, &j.Company,
		&j.IsActive, &j.PostedBy, &j.CreatedAt, &j.UpdatedAt}
}

func scanApp(s scanner) (*models.Application, error) {
	a := &models.Application{}
	if err := s.Scan(appDest(a)...); err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts app. The (job_id, user_id) unique constraint is the
// authoritative duplicate guard: a second application for the same pair fails
// with common.ErrorUniqueViolation, and an unknown job with
// common.ErrorForeignKeyViolation.
func (r *PostgresRepository) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	query :=
		`INSERT INTO applications (job_id, user_id, name, email, phone, expected_salary, cover_letter,
		                           location, city, education, position_applying, resume_url, resume_key, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING ` + appColumns

	a, err := scanApp(r.db.QueryRowContext(ctx, query,
		app.JobID, app.UserID, app.Name, app.Email, app.Phone, app.ExpectedSalary, app.CoverLetter,
		app.Location, app.City, app.Education, app.PositionApplying, app.ResumeURL, app.ResumeKey, app.Status))
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	query := `SELECT ` + appColumns + ` FROM applications WHERE id = $1`

	a, err := scanApp(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return a, nil
}

// FindByJobAndUser returns the existing application for the pair or
// common.ErrorNotFound.
func (r *PostgresRepository) FindByJobAndUser(ctx context.Context, jobID, userID string) (*models.Application, error) {
	query := `SELECT ` + appColumns + ` FROM applications WHERE job_id = $1 AND user_id = $2`

	a, err := scanApp(r.db.QueryRowContext(ctx, query, jobID, userID))
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return a, nil
}

// ListByUser returns the user's applications with their postings, most recent first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.ApplicationWithJob, error) {
	query := `SELECT ` + columns("a.", appFields) + `, ` + columns("j.", jobFields) + `
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	defer rows.Close()

	result := []*models.ApplicationWithJob{}
	for rows.Next() {
		item := &models.ApplicationWithJob{Job: &models.Job{}}
		if err := rows.Scan(append(appDest(&item.Application), jobDest(item.Job)...)...); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return result, nil
}

// ListAll returns every application with applicant and posting summaries.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.AdminApplication, error) {
	query := `SELECT ` + columns("a.", appFields) + `,
		       u.id, u.name, u.email, j.id, j.title, j.company, j.location
		FROM applications a
		JOIN users u ON u.id = a.user_id
		JOIN jobs j ON j.id = a.job_id
		ORDER BY a.applied_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	defer rows.Close()

	result := []*models.AdminApplication{}
	for rows.Next() {
		item := &models.AdminApplication{User: &models.UserSummary{}, Job: &models.JobSummary{}}
		dest := append(appDest(&item.Application),
			&item.User.ID, &item.User.Name, &item.User.Email,
			&item.Job.ID, &item.Job.Title, &item.Job.Company, &item.Job.Location)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	query :=
		`UPDATE applications SET status = $2
		 WHERE id = $1
		 RETURNING ` + appColumns

	a, err := scanApp(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return a, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM applications`).Scan(&n); err != nil {
		return 0, dbx.ClassifyError(err)
	}
	return n, nil
}

// CountPerJob counts applications for every posting, including postings with none.
func (r *PostgresRepository) CountPerJob(ctx context.Context) ([]*models.JobApplicationCount, error) {
	query := `SELECT j.id, j.title, count(a.id)
		FROM jobs j
		LEFT JOIN applications a ON a.job_id = j.id
		GROUP BY j.id, j.title
		ORDER BY count(a.id) DESC, j.title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	defer rows.Close()

	result := []*models.JobApplicationCount{}
	for rows.Next() {
		c := &models.JobApplicationCount{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Applications); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.ClassifyError(err)
	}
	return result, nil
}

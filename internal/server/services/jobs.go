package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
)

// JobFields are the editable parts of a posting.
type JobFields struct {
	Title        string
	Description  string
	Requirements string
	Location     string
	SalaryRange  string
	Company      string
}

// JobsOverview is the admin dashboard listing.
type JobsOverview struct {
	Jobs  []*models.Job
	Stats models.JobStats
}

type JobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewJobService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *JobService {
	return &JobService{db: db, repomanager: m, logger: l.With("service", "jobs")}
}

func jobNotFound(err error) error {
	return common.NewError(common.ErrorNotFound, "Job not found").Wrap(err)
}

// ListActive returns the publicly visible postings, newest first.
func (s *JobService) ListActive(ctx context.Context) ([]*models.Job, error) {
	jobs, err := s.repomanager.Jobs(s.db).ListActive(ctx)
	if err != nil {
		return nil, internalError(ctx, s.logger, "Failed to fetch jobs", err)
	}
	return jobs, nil
}

// Get returns a posting. Inactive postings are reported as absent to
// non-admins.
func (s *JobService) Get(ctx context.Context, p *models.Principal, id string) (*models.Job, error) {
	job, err := s.repomanager.Jobs(s.db).GetByID(ctx, id)
	if err != nil {
		if isMissing(err) {
			return nil, jobNotFound(err)
		}
		return nil, internalError(ctx, s.logger, "Failed to fetch job", err, "job_id", id)
	}
	if !job.IsActive && !p.IsAdmin() {
		return nil, jobNotFound(nil)
	}
	return job, nil
}

// Create stores a new posting owned by the caller. It stays inactive unless
// active is explicitly true.
func (s *JobService) Create(ctx context.Context, p *models.Principal, f JobFields, active *bool) (*models.Job, error) {
	postedBy := p.UserID()
	job := &models.Job{
		Title:        f.Title,
		Description:  f.Description,
		Requirements: f.Requirements,
		Location:     f.Location,
		SalaryRange:  f.SalaryRange,
		Company:      f.Company,
		IsActive:     active != nil && *active,
		PostedBy:     &postedBy,
	}

	created, err := s.repomanager.Jobs(s.db).Create(ctx, job)
	if err != nil {
		return nil, internalError(ctx, s.logger, "Failed to create job", err)
	}
	s.logger.Info(ctx, "job created", "job_id", created.ID, "active", created.IsActive)
	return created, nil
}

// Update edits a posting. Optional fields left nil keep their stored values;
// the active flag is never touched.
func (s *JobService) Update(ctx context.Context, id string, p models.JobPatch) (*models.Job, error) {
	p.ID = id
	job, err := s.repomanager.Jobs(s.db).Update(ctx, &p)
	if err != nil {
		if isMissing(err) {
			return nil, jobNotFound(err)
		}
		return nil, internalError(ctx, s.logger, "Failed to update job", err, "job_id", id)
	}
	return job, nil
}

// SetActive toggles visibility and returns the posting with a status message.
func (s *JobService) SetActive(ctx context.Context, id string, active bool) (*models.Job, string, error) {
	job, err := s.repomanager.Jobs(s.db).SetActive(ctx, id, active)
	if err != nil {
		if isMissing(err) {
			return nil, "", jobNotFound(err)
		}
		return nil, "", internalError(ctx, s.logger, "Failed to update job status", err, "job_id", id)
	}
	if active {
		return job, "Job activated", nil
	}
	return job, "Job deactivated", nil
}

// Delete removes a posting; its applications go with it.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Jobs(s.db).Delete(ctx, id); err != nil {
		if isMissing(err) {
			return jobNotFound(err)
		}
		return internalError(ctx, s.logger, "Failed to delete job", err, "job_id", id)
	}
	s.logger.Info(ctx, "job deleted", "job_id", id)
	return nil
}

// ListAll returns every posting with active/inactive counts.
func (s *JobService) ListAll(ctx context.Context) (*JobsOverview, error) {
	jobs, err := s.repomanager.Jobs(s.db).ListAll(ctx)
	if err != nil {
		return nil, internalError(ctx, s.logger, "Failed to fetch jobs", err)
	}

	out := &JobsOverview{Jobs: jobs}
	for _, j := range jobs {
		if j.IsActive {
			out.Stats.Active++
		} else {
			out.Stats.Inactive++
		}
	}
	return out, nil
}

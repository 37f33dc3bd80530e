package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
	"github.com/google/uuid"
)

const (
	// MaxResumeSize is the largest accepted resume, in bytes.
	MaxResumeSize = 5 << 20

	ResumeContentType = "application/pdf"

	resumePrefix = "resumes/"
)

// Resume is an uploaded file that already passed type and size checks.
type Resume struct {
	Body io.Reader
	Size int64
}

// Submission is a parsed application form. Resume is nil when no file was sent.
type Submission struct {
	JobID  string
	Fields models.ApplicantFields
	Resume *Resume
}

// SubmittedApplication is a stored application plus a short-lived link to its resume.
type SubmittedApplication struct {
	Application       *models.Application
	ResumeDownloadURL string
}

type ApplicationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.BlobStore
	logger      logging.Logger
	now         func() time.Time
}

func NewApplicationService(db *sql.DB, m repomanager.RepositoryManager, store storage.BlobStore, l logging.Logger) *ApplicationService {
	return &ApplicationService{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      l.With("service", "applications"),
		now:         time.Now,
	}
}

// ValidJobID accepts only the canonical lowercase 8-4-4-4-12 form.
func ValidJobID(id string) bool {
	if len(id) != 36 {
		return false
	}
	u, err := uuid.Parse(id)
	return err == nil && u.String() == id
}

// resumeKey names a resume blob after the submission time and the applicant.
func resumeKey(now time.Time, userID string) (string, error) {
	suffix, err := common.MakeRandHexString(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%sresume-%d-%s-%s.pdf", resumePrefix, now.UnixMilli(), userID, suffix), nil
}

// Submit stores the caller's application to sub.JobID.
//
// Input is validated before the store is touched. A lookup for an earlier
// application by the same user short-circuits with a Conflict that references
// it; the unique (job_id, user_id) constraint catches submissions that race
// past that lookup. The uploaded blob is removed whenever the insert fails.
func (s *ApplicationService) Submit(ctx context.Context, p *models.Principal, sub *Submission) (*SubmittedApplication, error) {
	if sub.Resume == nil {
		return nil, common.NewError(common.ErrorInvalidInput, "Resume PDF is required")
	}
	if !ValidJobID(sub.JobID) {
		return nil, common.NewError(common.ErrorInvalidInput, "Valid job ID is required")
	}

	userID := p.UserID()
	log := s.logger.With("job_id", sub.JobID, "user_id", userID)

	job, err := s.repomanager.Jobs(s.db).GetByID(ctx, sub.JobID)
	if err != nil {
		if isMissing(err) {
			return nil, jobNotFound(err)
		}
		return nil, internalError(ctx, log, "Failed to submit application", err)
	}
	if !job.IsActive && !p.IsAdmin() {
		return nil, jobNotFound(nil)
	}

	repo := s.repomanager.Applications(s.db)

	existing, err := repo.FindByJobAndUser(ctx, sub.JobID, userID)
	switch {
	case err == nil:
		return nil, common.NewError(common.ErrorConflict, "You've already applied to this position").
			With("existing_application_id", existing.ID).
			With("existing_resume_url", existing.ResumeURL)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internalError(ctx, log, "Failed to submit application", err)
	}

	key, err := resumeKey(s.now(), userID)
	if err != nil {
		return nil, internalError(ctx, log, "Failed to submit application", err)
	}
	if err := s.store.Put(ctx, key, sub.Resume.Body, sub.Resume.Size, ResumeContentType); err != nil {
		return nil, internalError(ctx, log, "Failed to upload resume", err, "key", key)
	}

	created, err := repo.Create(ctx, &models.Application{
		JobID:           sub.JobID,
		UserID:          userID,
		ApplicantFields: sub.Fields,
		ResumeURL:       s.store.URL(key),
		ResumeKey:       key,
		Status:          models.StatusPending,
	})
	if err != nil {
		s.discardResume(ctx, log, key)
		return nil, s.insertError(ctx, log, repo, sub.JobID, userID, err)
	}

	downloadURL, err := s.store.DownloadURL(ctx, key)
	if err != nil {
		log.Warn(ctx, "resume download url unavailable", "key", key, "error", err)
		downloadURL = created.ResumeURL
	}

	log.Info(ctx, "application submitted", "application_id", created.ID)
	return &SubmittedApplication{Application: created, ResumeDownloadURL: downloadURL}, nil
}

type existingFinder interface {
	FindByJobAndUser(ctx context.Context, jobID, userID string) (*models.Application, error)
}

// insertError translates a failed insert.
func (s *ApplicationService) insertError(ctx context.Context, log logging.Logger, repo existingFinder, jobID, userID string, err error) error {
	switch {
	case errors.Is(err, common.ErrorUniqueViolation):
		log.Warn(ctx, "duplicate application rejected by constraint")
		e := common.NewError(common.ErrorConflict, "Application already exists").
			With("details", "Duplicate detected by database constraint").
			Wrap(err)
		if existing, findErr := repo.FindByJobAndUser(ctx, jobID, userID); findErr == nil {
			e.With("existing_application_id", existing.ID).With("existing_resume_url", existing.ResumeURL)
		}
		return e
	case errors.Is(err, common.ErrorForeignKeyViolation):
		return jobNotFound(err)
	default:
		return internalError(ctx, log, "Failed to submit application", err)
	}
}

func (s *ApplicationService) discardResume(ctx context.Context, log logging.Logger, key string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Warn(ctx, "orphaned resume not removed", "key", key, "error", err)
	}
}

// ListMine returns the caller's applications with their postings, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, p *models.Principal) ([]*models.ApplicationWithJob, error) {
	apps, err := s.repomanager.Applications(s.db).ListByUser(ctx, p.UserID())
	if err != nil {
		return nil, internalError(ctx, s.logger, "Failed to fetch applications", err, "user_id", p.UserID())
	}
	return apps, nil
}

// ResumeDownloadURL returns a short-lived link for a stored resume, falling
// back to its public URL.
func (s *ApplicationService) ResumeDownloadURL(ctx context.Context, app *models.Application) string {
	if app.ResumeKey == "" {
		return app.ResumeURL
	}
	u, err := s.store.DownloadURL(ctx, app.ResumeKey)
	if err != nil {
		s.logger.Warn(ctx, "resume download url unavailable", "application_id", app.ID, "error", err)
		return app.ResumeURL
	}
	return u
}

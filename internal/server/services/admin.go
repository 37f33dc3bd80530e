package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
)

// AdminService backs the admin dashboard.
type AdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.BlobStore
	logger      logging.Logger
}

func NewAdminService(db *sql.DB, m repomanager.RepositoryManager, store storage.BlobStore, l logging.Logger) *AdminService {
	return &AdminService{db: db, repomanager: m, store: store, logger: l.With("service", "admin")}
}

// Stats counts users and applications from one snapshot so the totals agree
// with the per-job breakdown.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	stats := &models.AdminStats{}

	err := dbx.WithTx(ctx, s.db, dbx.ReadOnlySnapshot, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if stats.TotalUsers, err = s.repomanager.Users(tx).Count(ctx); err != nil {
			return err
		}
		apps := s.repomanager.Applications(tx)
		if stats.TotalApplications, err = apps.Count(ctx); err != nil {
			return err
		}
		stats.ApplicationsPerJob, err = apps.CountPerJob(ctx)
		return err
	})
	if err != nil {
		return nil, internalError(ctx, s.logger, "Failed to fetch stats", err)
	}
	return stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, internalError(ctx, s.logger, "Failed to fetch users", err)
	}
	return users, nil
}

func (s *AdminService) ListApplications(ctx context.Context) ([]*models.AdminApplication, error) {
	apps, err := s.repomanager.Applications(s.db).ListAll(ctx)
	if err != nil {
		return nil, internalError(ctx, s.logger, "Failed to fetch applications", err)
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application to status, which must be one
// of models.ApplicationStatuses.
func (s *AdminService) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	if !status.Valid() {
		return nil, common.NewError(common.ErrorInvalidInput, "Invalid status").
			With("valid_statuses", models.ApplicationStatuses())
	}

	app, err := s.repomanager.Applications(s.db).UpdateStatus(ctx, id, status)
	if err != nil {
		if isMissing(err) {
			return nil, common.NewError(common.ErrorNotFound, "Application not found").Wrap(err)
		}
		return nil, internalError(ctx, s.logger, "Failed to update application", err, "application_id", id)
	}
	s.logger.Info(ctx, "application status changed", "application_id", id, "status", status)
	return app, nil
}

// ResumeDownloadURL returns a short-lived link to an application's resume.
func (s *AdminService) ResumeDownloadURL(ctx context.Context, id string) (string, error) {
	app, err := s.repomanager.Applications(s.db).GetByID(ctx, id)
	if err != nil {
		if isMissing(err) {
			return "", common.NewError(common.ErrorNotFound, "Application not found").Wrap(err)
		}
		return "", internalError(ctx, s.logger, "Failed to fetch application", err, "application_id", id)
	}

	u, err := s.store.DownloadURL(ctx, app.ResumeKey)
	if err != nil {
		return "", internalError(ctx, s.logger, "Failed to sign resume URL", err, "application_id", id)
	}
	return u, nil
}

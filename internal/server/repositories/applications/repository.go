package applications

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id string) (*models.Application, error)
	FindByJobAndUser(ctx context.Context, jobID, userID string) (*models.Application, error)
	ListByUser(ctx context.Context, userID string) ([]*models.ApplicationWithJob, error)
	ListAll(ctx context.Context) ([]*models.AdminApplication, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error)
	Count(ctx context.Context) (int, error)
	CountPerJob(ctx context.Context) ([]*models.JobApplicationCount, error)
}

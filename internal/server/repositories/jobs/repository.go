package jobs

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	ListActive(ctx context.Context) ([]*models.Job, error)
	ListAll(ctx context.Context) ([]*models.Job, error)
	Update(ctx context.Context, p *models.JobPatch) (*models.Job, error)
	SetActive(ctx context.Context, id string, active bool) (*models.Job, error)
	Delete(ctx context.Context, id string) error
}

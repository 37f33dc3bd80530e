package rest

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
)

// The interfaces below are the parts of internal/server/services the handlers
// depend on.

type AuthService interface {
	GoogleLogin(ctx context.Context, credential string) (*services.Session, error)
	AdminLogin(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(ctx context.Context, token string) (*models.Principal, error)
}

type JobService interface {
	ListActive(ctx context.Context) ([]*models.Job, error)
	Get(ctx context.Context, p *models.Principal, id string) (*models.Job, error)
	Create(ctx context.Context, p *models.Principal, f services.JobFields, active *bool) (*models.Job, error)
	Update(ctx context.Context, id string, p models.JobPatch) (*models.Job, error)
	SetActive(ctx context.Context, id string, active bool) (*models.Job, string, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) (*services.JobsOverview, error)
}

type ApplicationService interface {
	Submit(ctx context.Context, p *models.Principal, sub *services.Submission) (*services.SubmittedApplication, error)
	ListMine(ctx context.Context, p *models.Principal) ([]*models.ApplicationWithJob, error)
	ResumeDownloadURL(ctx context.Context, app *models.Application) string
}

type ProfileService interface {
	Get(ctx context.Context, p *models.Principal) (*services.Profile, error)
	UpdateName(ctx context.Context, p *models.Principal, name string) (*models.User, error)
}

type AdminService interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListApplications(ctx context.Context) ([]*models.AdminApplication, error)
	UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error)
	ResumeDownloadURL(ctx context.Context, id string) (string, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Auth         AuthService
	Jobs         JobService
	Applications ApplicationService
	Profile      ProfileService
	Admin        AdminService
	DB           Pinger
}

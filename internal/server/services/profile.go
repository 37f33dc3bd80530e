package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
)

// Profile is a user together with their applications and per-status counts.
type Profile struct {
	User         *models.User
	Applications []*models.ApplicationWithJob
	Stats        models.StatusCounts
}

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *ProfileService {
	return &ProfileService{db: db, repomanager: m, logger: l.With("service", "profile")}
}

func (s *ProfileService) Get(ctx context.Context, p *models.Principal) (*Profile, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, p.UserID())
	if err != nil {
		if isMissing(err) {
			return nil, common.NewError(common.ErrorNotFound, "User not found").Wrap(err)
		}
		return nil, internalError(ctx, s.logger, "Failed to fetch profile", err, "user_id", p.UserID())
	}

	apps, err := s.repomanager.Applications(s.db).ListByUser(ctx, user.ID)
	if err != nil {
		return nil, internalError(ctx, s.logger, "Failed to fetch profile", err, "user_id", user.ID)
	}

	return &Profile{User: user, Applications: apps, Stats: models.CountStatuses(apps)}, nil
}

// UpdateName changes the caller's display name.
func (s *ProfileService) UpdateName(ctx context.Context, p *models.Principal, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewError(common.ErrorInvalidInput, "Name is required")
	}

	user, err := s.repomanager.Users(s.db).UpdateName(ctx, p.UserID(), name)
	if err != nil {
		if isMissing(err) {
			return nil, common.NewError(common.ErrorNotFound, "User not found").Wrap(err)
		}
		return nil, internalError(ctx, s.logger, "Failed to update profile", err, "user_id", p.UserID())
	}
	return user, nil
}

// Package services contains the job board's business logic. Services receive
// their store, blob store and identity collaborators explicitly and report
// failures as *common.Error values.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/auth"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
)

const adminDisplayName = "Admin"

// Session is the result of a successful login.
type Session struct {
	Token string
	User  *models.User
}

// AuthService signs users in and resolves bearer tokens to principals.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	verifier    auth.IdentityVerifier
	logger      logging.Logger

	jwtSecret         []byte
	tokenValidity     time.Duration
	adminEmail        string
	adminPasswordHash string
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, v auth.IdentityVerifier, l logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                db,
		repomanager:       m,
		verifier:          v,
		logger:            l.With("service", "auth"),
		jwtSecret:         []byte(cfg.SecretKey),
		tokenValidity:     cfg.AccessTokenValidityDuration,
		adminEmail:        strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		adminPasswordHash: cfg.AdminPasswordHash,
	}
}

// GoogleLogin verifies a Google ID token and signs in the matching user,
// creating the account on first login.
func (s *AuthService) GoogleLogin(ctx context.Context, credential string) (*Session, error) {
	id, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		s.logger.Warn(ctx, "google credential rejected", "error", err)
		return nil, common.NewError(common.ErrorUnauthorized, "Invalid Google token").Wrap(err)
	}

	user, err := s.findOrCreate(ctx, &models.User{Name: id.Name, Email: id.Email, GoogleID: &id.Subject})
	if err != nil {
		return nil, internalError(ctx, s.logger, "Failed to sign in", err, "email", id.Email)
	}

	if user.GoogleID == nil && id.Subject != "" {
		if err := s.repomanager.Users(s.db).SetGoogleID(ctx, user.ID, id.Subject); err != nil {
			s.logger.Warn(ctx, "linking google account failed", "user_id", user.ID, "error", err)
		} else {
			user.GoogleID = &id.Subject
		}
	}

	return s.issue(ctx, user)
}

// AdminLogin checks the configured admin credentials. The admin account is
// created, or promoted, on first successful login.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*Session, error) {
	if !auth.CheckAdminCredentials(s.adminEmail, s.adminPasswordHash, email, password) {
		return nil, common.NewError(common.ErrorUnauthorized, "Invalid credentials")
	}

	user, err := s.findOrCreate(ctx, &models.User{Name: adminDisplayName, Email: s.adminEmail, IsAdmin: true})
	if err != nil {
		return nil, internalError(ctx, s.logger, "Failed to sign in", err, "email", s.adminEmail)
	}
	if !user.IsAdmin {
		user, err = s.repomanager.Users(s.db).SetAdmin(ctx, user.ID)
		if err != nil {
			return nil, internalError(ctx, s.logger, "Failed to sign in", err, "email", s.adminEmail)
		}
	}

	return s.issue(ctx, user)
}

// Authenticate resolves a raw bearer token to the caller.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Principal, error) {
	if token == "" {
		return nil, common.NewError(common.ErrorUnauthorized, "No token provided")
	}

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.NewError(common.ErrorUnauthorized, "Invalid token").Wrap(err)
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if isMissing(err) {
			return nil, common.NewError(common.ErrorUnauthorized, "Invalid token").Wrap(err)
		}
		return nil, internalError(ctx, s.logger, "Failed to authenticate", err, "user_id", userID)
	}

	return &models.Principal{User: user}, nil
}

// findOrCreate looks the user up by email and inserts u when absent. Losing a
// race on the unique email constraint falls back to the winner's row.
func (s *AuthService) findOrCreate(ctx context.Context, u *models.User) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	existing, err := repo.GetByEmail(ctx, u.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	created, err := repo.Create(ctx, u)
	if errors.Is(err, common.ErrorUniqueViolation) {
		return repo.GetByEmail(ctx, u.Email)
	}
	return created, err
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, internalError(ctx, s.logger, "Failed to issue token", err, "user_id", user.ID)
	}
	s.logger.Info(ctx, "user signed in", "user_id", user.ID, "admin", user.IsAdmin)
	return &Session{Token: token, User: user}, nil
}

package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fieldpass/fieldpass/internal/common"
	"github.com/fieldpass/fieldpass/internal/server/auth"
	"github.com/fieldpass/fieldpass/internal/server/config"
	"github.com/fieldpass/fieldpass/internal/server/models"
	"github.com/fieldpass/fieldpass/internal/server/repositories/repomanager"
	"github.com/fieldpass/fieldpass/internal/server/revocation"
)

// IdentityService turns a bearer token into the current user. Every request
// re-reads the account from storage, so role changes take effect on the
// subject's next request; there is no identity cache.
type IdentityService struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	denylist  revocation.Denylist
	jwtSecret []byte
}

func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, d revocation.Denylist, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:        db,
		repos:     m,
		denylist:  d,
		jwtSecret: []byte(cfg.SecretKey),
	}
}

// Resolve verifies the token, checks the revocation denylist, and loads the
// subject. The returned user carries no credential material. A valid token
// whose subject no longer exists is an authentication failure, not a
// different kind of success.
func (s *IdentityService) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseClaims(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, common.ErrTokenRevoked
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	// A password reset advances the per-user cutoff; tokens minted before
	// it no longer resolve. Tokens without an issued-at claim cannot be
	// placed relative to the cutoff and are rejected with them.
	if !user.TokenInvalidBefore.IsZero() {
		if claims.IssuedAt == nil || claims.IssuedAt.Time.Before(user.TokenInvalidBefore) {
			return nil, common.ErrTokenRevoked
		}
	}

	user.Sanitize()
	return user, nil
}

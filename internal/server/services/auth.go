// Package services contains server-side business logic. This file implements
// AuthService: registration, login, logout, and the password-reset flow.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fieldpass/fieldpass/internal/common"
	"github.com/fieldpass/fieldpass/internal/dbx"
	"github.com/fieldpass/fieldpass/internal/server/auth"
	"github.com/fieldpass/fieldpass/internal/server/config"
	"github.com/fieldpass/fieldpass/internal/server/models"
	"github.com/fieldpass/fieldpass/internal/server/repositories/repomanager"
	"github.com/fieldpass/fieldpass/internal/server/revocation"
	"github.com/google/uuid"
)

// AuthService provides authentication-related operations:
// - Register: create accounts and mint a first session token
// - Login: verify credentials and mint tokens
// - Logout: revoke the presented token
// - ForgotPassword / ResetPassword: the one-time-code reset flow
type AuthService struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	denylist      revocation.Denylist
	mailer        Mailer
	jwtSecret     []byte
	tokenValidity time.Duration
	resetValidity time.Duration
	hashCost      int
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, d revocation.Denylist, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		db:            db,
		repos:         m,
		denylist:      d,
		mailer:        mailer,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		resetValidity: cfg.ResetCodeValidityDuration,
		hashCost:      cfg.PasswordHashCost,
	}
}

// RegisterParams carries a validated signup request.
type RegisterParams struct {
	Email        string
	Password     string
	Name         string
	ReferralCode string
}

// Register creates a credentials-origin account and returns it together with
// a fresh session token. An unknown referral code is rejected; email
// uniqueness is enforced by the storage layer.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*models.User, string, error) {
	repo := s.repos.Users(s.db)

	email := strings.ToLower(strings.TrimSpace(p.Email))

	if p.ReferralCode != "" {
		if _, err := repo.GetByAffiliateCode(ctx, p.ReferralCode); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, "", common.ErrInvalidReferralCode
			}
			return nil, "", err
		}
	}

	hash, err := auth.HashPassword(p.Password, s.hashCost)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         p.Name,
		Provider:     models.ProviderCredentials,
		Role:         models.RoleUser,
		TeamIDs:      []string{},
		ReferredBy:   p.ReferralCode,
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(created.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	created.Sanitize()
	return created, token, nil
}

// Login verifies the email/password pair and, on success, returns the user
// and a new session token. Every failure surfaces as
// common.ErrInvalidCredentials so callers cannot distinguish an unknown
// email from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", err
	}

	// External-provider accounts have no local password.
	if user.PasswordHash == "" || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	user.Sanitize()
	return user, token, nil
}

// Logout revokes the presented token for its remaining validity window.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := auth.ParseClaims(token, s.jwtSecret)
	if err != nil {
		return err
	}
	return s.denylist.Revoke(ctx, token, time.Until(claims.ExpiresAt.Time))
}

// ForgotPassword issues a 6-digit reset code with a short expiry, replacing
// any previous challenge. It returns nil for unknown emails so the HTTP
// response is identical whether or not the account exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}

	// Accounts from external providers have no password to reset.
	if user.Provider != models.ProviderCredentials {
		return nil
	}

	code, err := common.MakeResetCode()
	if err != nil {
		return common.ErrInternal
	}

	codeHash, err := auth.HashPassword(code, s.hashCost)
	if err != nil {
		return common.ErrInternal
	}

	if err := repo.SetResetChallenge(ctx, user.ID, codeHash, time.Now().Add(s.resetValidity)); err != nil {
		return err
	}

	return s.mailer.SendPasswordResetCode(ctx, user.Email, user.Name, code)
}

// ResetPassword consumes a reset code: it verifies the hashed challenge and
// its expiry, then writes the new password hash and clears the challenge in
// one transaction. Invalid email, code, or expiry all surface as
// common.ErrInvalidResetCode.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidResetCode
		}
		return err
	}

	if user.ResetCodeHash == "" || time.Now().After(user.ResetCodeExpires) {
		return common.ErrInvalidResetCode
	}
	if !auth.CheckPassword(code, user.ResetCodeHash) {
		return common.ErrInvalidResetCode
	}

	hash, err := auth.HashPassword(newPassword, s.hashCost)
	if err != nil {
		return common.ErrInternal
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Users(tx).UpdatePassword(ctx, user.ID, hash)
	})
}

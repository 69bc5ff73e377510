// Package users provides the persistence layer for user accounts.
package users

import (
	"context"
	"time"

	"github.com/fieldpass/fieldpass/internal/server/models"
)

// Repository is the keyed-document view of the users table consumed by the
// service layer. Implementations map "not found" to common.ErrNotFound and
// uniqueness violations to common.ErrEmailTaken / common.ErrAffiliateCodeTaken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByAffiliateCode(ctx context.Context, code string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListScouts(ctx context.Context) ([]*models.User, error)

	// UpdateProfile writes the mutable profile fields (name, avatar,
	// verified flag, team memberships).
	UpdateProfile(ctx context.Context, user *models.User) error

	// SetRole changes the role without touching the affiliate code.
	SetRole(ctx context.Context, id string, role models.Role) error

	// SetRoleAndAffiliateCode changes role and affiliate code together
	// (promotion assigns a code, demotion passes "" to clear it).
	SetRoleAndAffiliateCode(ctx context.Context, id string, role models.Role, code string) error

	// SetResetChallenge stores a hashed one-time code and its expiry,
	// replacing any previous challenge.
	SetResetChallenge(ctx context.Context, id string, codeHash string, expires time.Time) error

	// UpdatePassword sets a new password hash, clears the reset challenge,
	// and advances the session-token cutoff to now.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	Delete(ctx context.Context, id string) error

	// CountReferrals counts users whose referred_by equals the given
	// affiliate code.
	CountReferrals(ctx context.Context, code string) (int64, error)
}

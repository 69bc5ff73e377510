package services

import (
	"context"
	"database/sql"

	"github.com/fieldpass/fieldpass/internal/server/models"
	"github.com/fieldpass/fieldpass/internal/server/repositories/repomanager"
)

// UserService implements identity-management operations. Authorization
// decisions (who may call what, self-protection rules) live in the HTTP
// layer; this service only executes them.
type UserService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repos: m}
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repos.Users(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Sanitize()
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Sanitize()
	return user, nil
}

// UpdateProfileParams carries the fields a profile update may touch. Nil
// pointers leave the stored value unchanged; email and role are immutable
// through this path.
type UpdateProfileParams struct {
	Name      *string
	AvatarURL *string
	TeamIDs   *[]string
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, p UpdateProfileParams) (*models.User, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.AvatarURL != nil {
		user.AvatarURL = *p.AvatarURL
	}
	if p.TeamIDs != nil {
		user.TeamIDs = *p.TeamIDs
	}

	if err := repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	user.Sanitize()
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repos.Users(s.db).Delete(ctx, id)
}

// ChangeRole assigns a new role. The caller is responsible for having parsed
// the role and for the superadmin/self-protection gates.
func (s *UserService) ChangeRole(ctx context.Context, id string, role models.Role) error {
	return s.repos.Users(s.db).SetRole(ctx, id, role)
}

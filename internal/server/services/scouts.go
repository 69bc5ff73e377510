package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fieldpass/fieldpass/internal/common"
	"github.com/fieldpass/fieldpass/internal/server/models"
	"github.com/fieldpass/fieldpass/internal/server/repositories/repomanager"
)

const (
	affiliateCodeLength  = 8
	affiliateCodeRetries = 10
)

// ScoutService implements scout promotion, demotion, and the referral report.
type ScoutService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewScoutService(db *sql.DB, m repomanager.RepositoryManager) *ScoutService {
	return &ScoutService{db: db, repos: m}
}

// Promote turns a user into a scout and assigns a fresh affiliate code.
// Promoting an existing scout fails with ErrAlreadyScout.
func (s *ScoutService) Promote(ctx context.Context, id string) (*models.User, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleScout {
		return nil, ErrAlreadyScout
	}

	code, err := s.generateUniqueAffiliateCode(ctx)
	if err != nil {
		return nil, err
	}

	err = repo.SetRoleAndAffiliateCode(ctx, id, models.RoleScout, code)
	if errors.Is(err, common.ErrAffiliateCodeTaken) {
		// Lost a race between the uniqueness check and the write; draw a
		// fresh code and try the write once more.
		code, err = s.generateUniqueAffiliateCode(ctx)
		if err != nil {
			return nil, err
		}
		err = repo.SetRoleAndAffiliateCode(ctx, id, models.RoleScout, code)
	}
	if err != nil {
		return nil, err
	}

	user.Role = models.RoleScout
	user.AffiliateCode = code
	user.Sanitize()
	return user, nil
}

// Demote reverts a scout to an ordinary user and clears the affiliate code.
// It is blocked with a ReferralsError while any signup is still attributed
// to the code.
func (s *ScoutService) Demote(ctx context.Context, id string) (*models.User, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleScout {
		return nil, ErrNotScout
	}

	if user.AffiliateCode != "" {
		count, err := repo.CountReferrals(ctx, user.AffiliateCode)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &ReferralsError{Count: count}
		}
	}

	if err := repo.SetRoleAndAffiliateCode(ctx, id, models.RoleUser, ""); err != nil {
		return nil, err
	}

	user.Role = models.RoleUser
	user.AffiliateCode = ""
	user.Sanitize()
	return user, nil
}

// generateUniqueAffiliateCode draws random codes and checks each against
// existing ones. After affiliateCodeRetries collisions it falls back to a
// timestamp-derived code. The check-then-write sequence is best effort;
// the unique constraint on the column is the real guard.
func (s *ScoutService) generateUniqueAffiliateCode(ctx context.Context) (string, error) {
	repo := s.repos.Users(s.db)

	for i := 0; i < affiliateCodeRetries; i++ {
		code, err := common.MakeAffiliateCode(affiliateCodeLength)
		if err != nil {
			return "", common.ErrInternal
		}
		_, err = repo.GetByAffiliateCode(ctx, code)
		if errors.Is(err, common.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("SC%d", time.Now().UnixMilli()), nil
}

// ScoutReportRow is one line of the admin referral report.
type ScoutReportRow struct {
	Name          string
	Email         string
	AffiliateCode string
	ReferralCount int64
}

// Report lists every scout with the number of signups attributed to their
// affiliate code.
func (s *ScoutService) Report(ctx context.Context) ([]ScoutReportRow, error) {
	repo := s.repos.Users(s.db)

	scouts, err := repo.ListScouts(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ScoutReportRow, 0, len(scouts))
	for _, scout := range scouts {
		var count int64
		if scout.AffiliateCode != "" {
			count, err = repo.CountReferrals(ctx, scout.AffiliateCode)
			if err != nil {
				return nil, err
			}
		}
		rows = append(rows, ScoutReportRow{
			Name:          scout.Name,
			Email:         scout.Email,
			AffiliateCode: scout.AffiliateCode,
			ReferralCount: count,
		})
	}
	return rows, nil
}

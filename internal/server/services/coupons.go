package services

import (
	"context"
	"database/sql"

	"github.com/fieldpass/fieldpass/internal/server/models"
	"github.com/fieldpass/fieldpass/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CouponService implements coupon CRUD with a strict ownership rule: only
// the recorded creator may mutate a coupon. There is no role override, not
// even for superadmin.
type CouponService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewCouponService(db *sql.DB, m repomanager.RepositoryManager) *CouponService {
	return &CouponService{db: db, repos: m}
}

func (s *CouponService) Create(ctx context.Context, creatorID, code string, discountPct int) (*models.Coupon, error) {
	coupon := &models.Coupon{
		ID:          uuid.NewString(),
		Code:        code,
		DiscountPct: discountPct,
		CreatedBy:   creatorID,
	}
	return s.repos.Coupons(s.db).Create(ctx, coupon)
}

// CouponUpdateParams carries the fields an update may touch; nil pointers
// leave the stored value unchanged.
type CouponUpdateParams struct {
	Code        *string
	DiscountPct *int
}

func (s *CouponService) Update(ctx context.Context, id, actorID string, p CouponUpdateParams) (*models.Coupon, error) {
	repo := s.repos.Coupons(s.db)

	coupon, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon.CreatedBy != actorID {
		return nil, ErrNotOwner
	}

	if p.Code != nil {
		coupon.Code = *p.Code
	}
	if p.DiscountPct != nil {
		coupon.DiscountPct = *p.DiscountPct
	}

	if err := repo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) Delete(ctx context.Context, id, actorID string) error {
	repo := s.repos.Coupons(s.db)

	coupon, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if coupon.CreatedBy != actorID {
		return ErrNotOwner
	}

	return repo.Delete(ctx, id)
}

// Package coupons provides the persistence layer for scout-issued coupons.
package coupons

import (
	"context"

	"github.com/fieldpass/fieldpass/internal/server/models"
)

// Repository is the storage contract for coupons. "Not found" maps to
// common.ErrNotFound; a duplicate code maps to common.ErrCouponCodeTaken.
type Repository interface {
	Create(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error)
	GetByID(ctx context.Context, id string) (*models.Coupon, error)
	Update(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, id string) error
}

package coupons

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fieldpass/fieldpass/internal/common"
	"github.com/fieldpass/fieldpass/internal/dbx"
	"github.com/fieldpass/fieldpass/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error) {
	query := `
		INSERT INTO coupons (id, code, discount_pct, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		coupon.ID, coupon.Code, coupon.DiscountPct, coupon.CreatedBy).
		Scan(&coupon.CreatedAt, &coupon.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrCouponCodeTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return coupon, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Coupon, error) {
	query := `
		SELECT id, code, discount_pct, created_by, created_at, updated_at
		FROM coupons
		WHERE id = $1
	`
	coupon := &models.Coupon{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&coupon.ID, &coupon.Code,
		&coupon.DiscountPct, &coupon.CreatedBy, &coupon.CreatedAt, &coupon.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return coupon, nil
}

func (r *PostgresRepository) Update(ctx context.Context, coupon *models.Coupon) error {
	query := `
		UPDATE coupons
		SET code = $2, discount_pct = $3, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, coupon.ID, coupon.Code, coupon.DiscountPct)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrCouponCodeTaken
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM coupons WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

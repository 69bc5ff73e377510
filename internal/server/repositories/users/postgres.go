package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

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

const userColumns = `id, email, password_hash, name, avatar_url, provider, verified, role,
	team_ids, affiliate_code, referred_by, reset_code_hash, reset_code_expires,
	token_invalid_before, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var (
		teamsRaw     []byte
		affiliate    sql.NullString
		resetExpires sql.NullTime
		tokenCutoff  sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.AvatarURL,
		&u.Provider, &u.Verified, &u.Role, &teamsRaw, &affiliate, &u.ReferredBy,
		&u.ResetCodeHash, &resetExpires, &tokenCutoff, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(teamsRaw) > 0 {
		if err := json.Unmarshal(teamsRaw, &u.TeamIDs); err != nil {
			return nil, fmt.Errorf("team ids decode error: %w", err)
		}
	}
	u.AffiliateCode = affiliate.String
	if resetExpires.Valid {
		u.ResetCodeExpires = resetExpires.Time
	}
	if tokenCutoff.Valid {
		u.TokenInvalidBefore = tokenCutoff.Time
	}
	return u, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return common.ErrEmailTaken
		case "users_affiliate_code_key":
			return common.ErrAffiliateCodeTaken
		}
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	teamsRaw, err := json.Marshal(user.TeamIDs)
	if err != nil {
		return nil, fmt.Errorf("team ids encode error: %w", err)
	}

	query := `
		INSERT INTO users (id, email, password_hash, name, avatar_url, provider,
			verified, role, team_ids, affiliate_code, referred_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.AvatarURL,
		user.Provider, user.Verified, user.Role, teamsRaw, user.AffiliateCode,
		user.ReferredBy).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByAffiliateCode(ctx context.Context, code string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE affiliate_code = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	return r.queryUsers(ctx, query)
}

func (r *PostgresRepository) ListScouts(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at`
	return r.queryUsers(ctx, query, models.RoleScout)
}

func (r *PostgresRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	teamsRaw, err := json.Marshal(user.TeamIDs)
	if err != nil {
		return fmt.Errorf("team ids encode error: %w", err)
	}

	query := `
		UPDATE users
		SET name = $2, avatar_url = $3, verified = $4, team_ids = $5, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.AvatarURL,
		user.Verified, teamsRaw)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func (r *PostgresRepository) SetRole(ctx context.Context, id string, role models.Role) error {
	query := `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, role)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func (r *PostgresRepository) SetRoleAndAffiliateCode(ctx context.Context, id string, role models.Role, code string) error {
	query := `
		UPDATE users
		SET role = $2, affiliate_code = NULLIF($3, ''), updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, role, code)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func (r *PostgresRepository) SetResetChallenge(ctx context.Context, id string, codeHash string, expires time.Time) error {
	query := `
		UPDATE users
		SET reset_code_hash = $2, reset_code_expires = $3, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, codeHash, expires)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

// UpdatePassword also moves the token cutoff forward, so session tokens
// issued before the reset stop resolving.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, reset_code_hash = '', reset_code_expires = NULL,
			token_invalid_before = now(), updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func (r *PostgresRepository) CountReferrals(ctx context.Context, code string) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE referred_by = $1`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, code).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

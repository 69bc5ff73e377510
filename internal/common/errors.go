// Package common defines shared constants and sentinel errors used across
// the FieldPass server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAffiliateCodeTaken = errors.New("affiliate code already exists")
	ErrCouponCodeTaken    = errors.New("coupon code already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Credential / token errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")

	// Password-reset and referral validation errors.
	ErrInvalidResetCode    = errors.New("invalid or expired reset code")
	ErrInvalidReferralCode = errors.New("invalid referral code")
)

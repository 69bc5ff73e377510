// Package revocation implements a best-effort token denylist. Session tokens
// are stateless and live for days, so logout and password reset push the
// presented token here with a TTL equal to its remaining validity; the
// identity resolver consults the list on every request.
package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Denylist records revoked tokens until they would have expired anyway.
type Denylist interface {
	// Revoke marks the token as revoked for the given TTL.
	Revoke(ctx context.Context, token string, ttl time.Duration) error

	// IsRevoked reports whether the token was revoked earlier.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// key derives a fixed-length storage key so raw tokens never land in the
// backing store.
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}

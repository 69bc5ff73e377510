// Package auth implements the credential verifier and the session token
// codec. Both recover failures into typed results; neither ever panics on
// untrusted input.
package auth

import "golang.org/x/crypto/bcrypt"

// DefaultHashCost is tuned so hashing takes on the order of hundreds of
// milliseconds on commodity hardware.
const DefaultHashCost = 12

// HashPassword produces a salted bcrypt digest. Two calls with the same
// password yield different digests.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultHashCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored digest.
// Malformed digests yield false, never an error. Callers must not surface
// "user not found" and "wrong password" differently.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

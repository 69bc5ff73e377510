package auth

import (
	"testing"
)

// bcrypt's minimum cost keeps these tests fast; production cost comes from
// config.
const testCost = 4

func TestCheckPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple", testCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPassword("correct horse battery staple", hash) {
		t.Fatalf("expected password to verify against its own hash")
	}
	if CheckPassword("wrong password", hash) {
		t.Fatalf("expected mismatched password to fail verification")
	}
}

func TestHashPassword_NonDeterministic(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret", testCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret", testCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected different hashes for the same input, got %q twice", h1)
	}
	if !CheckPassword("secret", h1) || !CheckPassword("secret", h2) {
		t.Fatalf("both hashes must still verify")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$garbage"} {
		if CheckPassword("anything", hash) {
			t.Fatalf("malformed hash %q must not verify", hash)
		}
	}
}

func TestHashPassword_DefaultCost(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPassword("pw", hash) {
		t.Fatalf("hash with default cost must verify")
	}
}

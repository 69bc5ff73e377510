package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// affiliateAlphabet deliberately omits easily confused characters (0/O, 1/I)
// because affiliate codes are typed by hand at signup.
const affiliateAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// MakeResetCode returns a 6-digit numeric one-time code, zero-padded,
// generated from crypto/rand.
func MakeResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// MakeAffiliateCode returns a random uppercase code of the given length
// drawn from affiliateAlphabet.
func MakeAffiliateCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(affiliateAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = affiliateAlphabet[n.Int64()]
	}
	return string(buf), nil
}

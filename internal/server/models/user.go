// Package models defines server-side data models persisted in the database.
package models

import "time"

// Provider tags where an account originated. Accounts created through the
// signup form carry ProviderCredentials and must have a password hash;
// accounts created via an external identity provider have none.
type Provider string

const (
	ProviderCredentials Provider = "credentials"
	ProviderGoogle      Provider = "google"
	ProviderFacebook    Provider = "facebook"
)

// ParseProvider maps a raw string to a Provider.
func ParseProvider(s string) (Provider, bool) {
	p := Provider(s)
	switch p {
	case ProviderCredentials, ProviderGoogle, ProviderFacebook:
		return p, true
	}
	return "", false
}

type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	AvatarURL    string   `json:"avatarUrl,omitempty"`
	Provider     Provider `json:"provider"`
	Verified     bool     `json:"verified"`
	Role         Role     `json:"role"`
	TeamIDs      []string `json:"teamIds"`

	// AffiliateCode is set only while Role is scout.
	AffiliateCode string `json:"affiliateCode,omitempty"`
	// ReferredBy holds a foreign affiliate code captured at signup.
	ReferredBy string `json:"referredBy,omitempty"`

	// Password-reset challenge. At most one live challenge per user;
	// a new forgot-password request overwrites the previous one.
	ResetCodeHash    string    `json:"-"`
	ResetCodeExpires time.Time `json:"-"`

	// Session tokens issued before this instant are rejected. A password
	// reset moves it forward; zero means no cutoff.
	TokenInvalidBefore time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sanitize clears credential material before the record leaves the
// persistence layer.
func (u *User) Sanitize() {
	u.PasswordHash = ""
	u.ResetCodeHash = ""
	u.ResetCodeExpires = time.Time{}
}

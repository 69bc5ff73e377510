package services

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyScout is returned when promoting a user who already holds
	// the scout role.
	ErrAlreadyScout = errors.New("user is already a scout")

	// ErrNotScout is returned when demoting a user who is not a scout.
	ErrNotScout = errors.New("user is not a scout")

	// ErrNotOwner is returned when a mutation targets a resource the acting
	// user did not create.
	ErrNotOwner = errors.New("not the resource owner")
)

// ReferralsError blocks scout demotion while signups are still attributed to
// the scout's affiliate code.
type ReferralsError struct {
	Count int64
}

func (e *ReferralsError) Error() string {
	return fmt.Sprintf("scout has %d referrals", e.Count)
}

package models

import "time"

// Coupon is a scout-issued discount code. Mutation is gated on CreatedBy:
// only the recorded creator may update or delete a coupon.
type Coupon struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	DiscountPct int       `json:"discountPct"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

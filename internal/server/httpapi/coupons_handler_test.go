package httpapi

import "testing"

func TestCreateCoupon_ScoutOnly(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(t, "POST", "/api/v1/coupons", tokenFor(t, regularID), map[string]any{
		"code":        "WINTER20",
		"discountPct": 20,
	})
	if w.Code != 403 {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "Insufficient permissions" {
		t.Fatalf("unexpected body: %v", body)
	}
}

// The scout-only gate really means scout: even superadmin cannot mint coupons.
func TestCreateCoupon_SuperadminExcluded(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(t, "POST", "/api/v1/coupons", tokenFor(t, superadminID), map[string]any{
		"code":        "WINTER20",
		"discountPct": 20,
	})
	if w.Code != 403 {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCreateCoupon_Success(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(t, "POST", "/api/v1/coupons", tokenFor(t, scoutID), map[string]any{
		"code":        "WINTER20",
		"discountPct": 20,
	})
	if w.Code != 201 {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	coupon, ok := body["coupon"].(map[string]any)
	if !ok || coupon["code"] != "WINTER20" || coupon["createdBy"] != scoutID {
		t.Fatalf("unexpected coupon: %v", body["coupon"])
	}
}

func TestCreateCoupon_DuplicateCode(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(t, "POST", "/api/v1/coupons", tokenFor(t, scoutID), map[string]any{
		"code":        "SUMMER10",
		"discountPct": 15,
	})
	if w.Code != 400 {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "Coupon code already exists" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestUpdateCoupon_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)

	// Another authenticated account, even superadmin, is not the creator.
	w := env.perform(t, "PUT", "/api/v1/coupons/"+couponID, tokenFor(t, superadminID), map[string]any{
		"discountPct": 50,
	})
	if w.Code != 403 {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "Access denied" {
		t.Fatalf("unexpected body: %v", body)
	}
	if env.coupons.coupons[couponID].DiscountPct != 10 {
		t.Fatalf("update must not persist")
	}
}

func TestUpdateCoupon_Success(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(t, "PUT", "/api/v1/coupons/"+couponID, tokenFor(t, scoutID), map[string]any{
		"discountPct": 25,
	})
	if w.Code != 200 {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	coupon := body["coupon"].(map[string]any)
	if coupon["discountPct"] != float64(25) {
		t.Fatalf("unexpected coupon: %v", coupon)
	}
	if env.coupons.coupons[couponID].DiscountPct != 25 {
		t.Fatalf("update not persisted")
	}
}

func TestUpdateCoupon_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(t, "PUT", "/api/v1/coupons/nope", tokenFor(t, scoutID), map[string]any{
		"discountPct": 25,
	})
	if w.Code != 400 {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "Invalid coupon ID" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestUpdateCoupon_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(t, "PUT", "/api/v1/coupons/"+ghostID, tokenFor(t, scoutID), map[string]any{
		"discountPct": 25,
	})
	if w.Code != 404 {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "Coupon not found" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestDeleteCoupon_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(t, "DELETE", "/api/v1/coupons/"+couponID, tokenFor(t, superadminID), nil)
	if w.Code != 403 {
		t.Fatalf("status = %d", w.Code)
	}
	if _, ok := env.coupons.coupons[couponID]; !ok {
		t.Fatalf("coupon must survive")
	}
}

func TestDeleteCoupon_Success(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(t, "DELETE", "/api/v1/coupons/"+couponID, tokenFor(t, scoutID), nil)
	if w.Code != 200 {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["message"] != "Coupon deleted successfully" {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := env.coupons.coupons[couponID]; ok {
		t.Fatalf("coupon not deleted")
	}
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/fieldpass/fieldpass/internal/common"
	"github.com/fieldpass/fieldpass/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createCouponRequest struct {
	Code        string `json:"code" binding:"required,min=3,max=32"`
	DiscountPct int    `json:"discountPct" binding:"required,min=1,max=100"`
}

type updateCouponRequest struct {
	Code        *string `json:"code" binding:"omitempty,min=3,max=32"`
	DiscountPct *int    `json:"discountPct" binding:"omitempty,min=1,max=100"`
}

func couponIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid coupon ID"})
		return "", false
	}
	return id, true
}

// createCoupon is scout-only (gated by middleware); the coupon records the
// caller as its creator.
func (s *Server) createCoupon(c *gin.Context) {
	var req createCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request parameters",
			"details": err.Error(),
		})
		return
	}

	ident, _ := CurrentIdentity(c)

	coupon, err := s.coupons.Create(c.Request.Context(), ident.ID, req.Code, req.DiscountPct)
	if err != nil {
		if errors.Is(err, common.ErrCouponCodeTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon code already exists"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"coupon": coupon})
}

// updateCoupon enforces strict ownership: only the recorded creator may
// mutate a coupon, with no superadmin override.
func (s *Server) updateCoupon(c *gin.Context) {
	id, ok := couponIDParam(c)
	if !ok {
		return
	}

	var req updateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request parameters",
			"details": err.Error(),
		})
		return
	}

	ident, _ := CurrentIdentity(c)

	coupon, err := s.coupons.Update(c.Request.Context(), id, ident.ID, services.CouponUpdateParams{
		Code:        req.Code,
		DiscountPct: req.DiscountPct,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Coupon not found"})
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		case errors.Is(err, common.ErrCouponCodeTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon code already exists"})
		default:
			s.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupon": coupon})
}

func (s *Server) deleteCoupon(c *gin.Context) {
	id, ok := couponIDParam(c)
	if !ok {
		return
	}

	ident, _ := CurrentIdentity(c)

	if err := s.coupons.Delete(c.Request.Context(), id, ident.ID); err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Coupon not found"})
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		default:
			s.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/fieldpass/fieldpass/internal/common"
	"github.com/fieldpass/fieldpass/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *Server) promoteScout(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	user, err := s.scouts.Promote(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, services.ErrAlreadyScout):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User is already a scout"})
		case errors.Is(err, common.ErrAffiliateCodeTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "Could not assign a unique affiliate code"})
		default:
			s.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User promoted to scout", "user": user})
}

func (s *Server) demoteScout(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	user, err := s.scouts.Demote(c.Request.Context(), id)
	if err != nil {
		var refErr *services.ReferralsError
		switch {
		case errors.Is(err, common.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, services.ErrNotScout):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User is not a scout"})
		case errors.As(err, &refErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":       "Cannot demote scout with active referrals",
				"referralCount": refErr.Count,
			})
		default:
			s.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Scout demoted successfully", "user": user})
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/fieldpass/fieldpass/internal/common"
	"github.com/fieldpass/fieldpass/internal/server/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Name         string `json:"name" binding:"required"`
	ReferralCode string `json:"referralCode"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request parameters",
			"details": err.Error(),
		})
		return
	}

	user, token, err := s.auth.Register(c.Request.Context(), services.RegisterParams{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
		case errors.Is(err, common.ErrInvalidReferralCode):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid referral code"})
		default:
			s.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request parameters",
			"details": err.Error(),
		})
		return
	}

	user, token, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.auth.Logout(c.Request.Context(), rawToken(c)); err != nil {
		if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *Server) me(c *gin.Context) {
	ident, _ := CurrentIdentity(c)

	user, err := s.users.Get(c.Request.Context(), ident.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// forgotPassword answers with the same body whether or not the email exists,
// to avoid account enumeration.
func (s *Server) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request parameters",
			"details": err.Error(),
		})
		return
	}

	if err := s.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If that email exists, a reset code has been sent"})
}

func (s *Server) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request parameters",
			"details": err.Error(),
		})
		return
	}

	err := s.auth.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		if errors.Is(err, common.ErrInvalidResetCode) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired reset code"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

package httpapi

import (
	"github.com/fieldpass/fieldpass/internal/server/models"
	"github.com/gin-gonic/gin"
)

// registerRoutes declares every endpoint together with its gate chain.
// Role sets come from the models policy helpers; handlers add only the
// endpoint-specific checks (self-access, self-protection, ownership).
func (s *Server) registerRoutes(r *gin.Engine) {
	m := NewAuthMiddleware(s.identity, s.logger)

	api := r.Group("/api/v1")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.POST("/logout", m.Authenticate(), s.logout)
		authGroup.POST("/forgot-password", s.forgotPassword)
		authGroup.POST("/reset-password", s.resetPassword)
		authGroup.GET("/me", m.Authenticate(), s.me)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(m.Authenticate())
	{
		users := protected.Group("/users")
		{
			users.GET("", m.RequireRole(models.SuperAdminOnly()...), s.listUsers)
			users.GET("/:id", s.getUser)
			users.PUT("/:id", s.updateUser)
			users.DELETE("/:id", m.RequireRole(models.SuperAdminOnly()...), s.deleteUser)
			users.PUT("/:id/role", m.RequireRole(models.SuperAdminOnly()...), s.changeRole)
		}

		scouts := protected.Group("/scouts")
		scouts.Use(m.RequireRole(models.SuperAdminOnly()...))
		{
			scouts.POST("/:id/promote", s.promoteScout)
			scouts.POST("/:id/demote", s.demoteScout)
		}

		admin := protected.Group("/admin")
		admin.Use(m.RequireRole(models.SuperAdminOnly()...))
		{
			admin.GET("/reports/scouts", s.scoutReport)
		}

		coupons := protected.Group("/coupons")
		{
			coupons.POST("", m.RequireRole(models.ScoutOnly()...), s.createCoupon)
			coupons.PUT("/:id", s.updateCoupon)
			coupons.DELETE("/:id", s.deleteCoupon)
		}
	}
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/fieldpass/fieldpass/internal/common"
	"github.com/fieldpass/fieldpass/internal/server/models"
	"github.com/fieldpass/fieldpass/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// userIDParam validates the :id path parameter before anything else runs,
// keeping the canonical check order: id format, then authentication (done by
// middleware), then role/self gates, then the load.
func userIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return "", false
	}
	return id, true
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// getUser implements the self-access override: a user may read their own
// record; reading anyone else's requires superadmin.
func (s *Server) getUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	ident, _ := CurrentIdentity(c)
	if ident.ID != id && ident.Role != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	user, err := s.users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateUserRequest struct {
	Name      *string   `json:"name"`
	AvatarURL *string   `json:"avatarUrl"`
	TeamIDs   *[]string `json:"teamIds"`
}

// updateUser mirrors getUser's self-access override. Email and role are not
// mutable through this endpoint; role changes go through changeRole.
func (s *Server) updateUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	ident, _ := CurrentIdentity(c)
	if ident.ID != id && ident.Role != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request parameters",
			"details": err.Error(),
		})
		return
	}

	user, err := s.users.UpdateProfile(c.Request.Context(), id, services.UpdateProfileParams{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		TeamIDs:   req.TeamIDs,
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// deleteUser is superadmin-only (gated by middleware) and refuses to act on
// the caller's own account.
func (s *Server) deleteUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	ident, _ := CurrentIdentity(c)
	if ident.ID == id {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot delete your own account"})
		return
	}

	if err := s.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// changeRole is superadmin-only (gated by middleware). The target role must
// be one of the enumerated values and the caller may not retarget themselves.
func (s *Server) changeRole(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request parameters",
			"details": err.Error(),
		})
		return
	}

	role, valid := models.ParseRole(req.Role)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":    "Invalid role",
			"validRoles": models.ValidRoles(),
		})
		return
	}

	ident, _ := CurrentIdentity(c)
	if ident.ID == id {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot change your own role"})
		return
	}

	if err := s.users.ChangeRole(c.Request.Context(), id, role); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully", "role": role})
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/fieldpass/fieldpass/internal/common"
	"github.com/fieldpass/fieldpass/internal/logging"
	"github.com/fieldpass/fieldpass/internal/server/auth"
	"github.com/fieldpass/fieldpass/internal/server/models"
	"github.com/fieldpass/fieldpass/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
	rawTokenKey = "rawToken"
)

// Identity is the request-decoration contract: after Authenticate succeeds
// the request carries the caller's id, email, name, and role. Handlers read
// this and must not re-derive identity on their own.
type Identity struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

// CurrentIdentity returns the identity attached by Authenticate.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}

// rawToken returns the bearer token Authenticate verified for this request.
func rawToken(c *gin.Context) string {
	return c.GetString(rawTokenKey)
}

// AuthMiddleware holds the gates of the authorization pipeline. Each gate
// either calls the next one or terminates the request with a JSON error.
type AuthMiddleware struct {
	identity *services.IdentityService
	logger   logging.Logger
}

func NewAuthMiddleware(identity *services.IdentityService, logger logging.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		identity: identity,
		logger:   logger.With("module", "auth_middleware"),
	}
}

// Authenticate requires a bearer token and resolves it into an Identity.
// All token problems surface as the same 401 body; clients never learn
// whether the signature, the expiry, the revocation list, or the subject
// lookup failed.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "No token provided",
			})
			return
		}

		user, err := m.identity.Resolve(c.Request.Context(), token)
		if err != nil {
			if isAuthFailure(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message": "Invalid token",
				})
				return
			}
			m.logger.Error(c.Request.Context(), "identity resolution failed", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "Internal server error",
			})
			return
		}

		c.Set(identityKey, Identity{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		})
		c.Set(rawTokenKey, token)

		c.Next()
	}
}

// RequireRole allows the request through only when the authenticated
// identity's role is in the allowed set. It requires Authenticate to have
// run earlier in the chain.
func (m *AuthMiddleware) RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "No token provided",
			})
			return
		}

		if !ident.Role.In(roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":       "Insufficient permissions",
				"requiredRoles": roles,
				"currentRole":   ident.Role,
			})
			return
		}

		c.Next()
	}
}

func isAuthFailure(err error) bool {
	return errors.Is(err, common.ErrInvalidToken) ||
		errors.Is(err, common.ErrTokenExpired) ||
		errors.Is(err, common.ErrTokenRevoked) ||
		errors.Is(err, common.ErrUnauthorized)
}

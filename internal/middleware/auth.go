package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teamtasker/task-manager-api/internal/constants"
	apierrors "github.com/teamtasker/task-manager-api/internal/errors"
	"github.com/teamtasker/task-manager-api/internal/services"
)

// RequireAuth validates the bearer token and stores the principal in the
// request context. Validation is pure signature and expiry checking; no
// database lookup happens here.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierrors.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		principal, err := authService.ValidateToken(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireAdmin rejects requests whose principal lacks the admin flag. It
// must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := GetPrincipal(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !principal.IsAdmin {
			apierrors.Forbidden(c, "Administrator privileges required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from context.
func GetPrincipal(c *gin.Context) (*services.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return nil, false
	}

	principal, ok := value.(*services.Principal)
	if !ok {
		return nil, false
	}

	return principal, true
}

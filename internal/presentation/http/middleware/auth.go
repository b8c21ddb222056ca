package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/backoffice-api/pkg/utils"
	"go.uber.org/zap"
)

// SuperAdminRole bypasses permission checks.
const SuperAdminRole = "super-admin"

// AuthMiddleware validates the bearer token minted by the identity provider
// and exposes its claims as user_id, user_email, user_roles and
// user_permissions. The request logger is tagged with the user ID.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, "Missing or malformed bearer token")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			GetLogger(c, nil).Debug("token rejected", zap.Error(err))
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_roles", claims.Roles)
		c.Set("user_permissions", claims.Permissions)
		if v, ok := c.Get(loggerKey); ok {
			if l, ok := v.(*zap.Logger); ok {
				c.Set(loggerKey, l.With(zap.String("user_id", claims.UserID.String())))
			}
		}

		c.Next()
	}
}

// RequirePermission lets the request through when the caller holds any of
// the given permissions or the super-admin role.
func RequirePermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if slices.Contains(c.GetStringSlice("user_roles"), SuperAdminRole) {
			c.Next()
			return
		}

		granted := c.GetStringSlice("user_permissions")
		for _, p := range permissions {
			if slices.Contains(granted, p) {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "You do not have permission to perform this action")
		c.Abort()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

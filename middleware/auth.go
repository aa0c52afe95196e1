package middleware

import (
	"context"
	"strings"

	"sunnah-steps/helper"
	"sunnah-steps/models"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "user_id"

const bearerPrefix = "Bearer "

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthMiddleware admits requests carrying "Authorization: Bearer <token>"
// with a valid token and records the caller's user id. It does not look at
// roles; see RequireRole.
func AuthMiddleware(tokens TokenVerifier, h *helper.HTTPHelper, metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) || len(authHeader) == len(bearerPrefix) {
			metrics.ObserveAuthFailure("missing_token")
			h.SendErrorFromErr(c, models.ErrNoToken)
			c.Abort()
			return
		}

		userID, err := tokens.Verify(authHeader[len(bearerPrefix):])
		if err != nil {
			metrics.ObserveAuthFailure("invalid_token")
			h.SendErrorFromErr(c, models.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the id stored by AuthMiddleware.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// RequireRole admits only callers whose account holds one of roles. It must
// run after AuthMiddleware.
func RequireRole(users UserLookup, h *helper.HTTPHelper, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			h.SendErrorFromErr(c, models.ErrNoToken)
			c.Abort()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			h.SendErrorFromErr(c, err)
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		h.SendErrorFromErr(c, models.ErrInsufficientRole)
		c.Abort()
	}
}

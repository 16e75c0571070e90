package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"feedback/internal/auth"
	"feedback/internal/authz"
	"feedback/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const currentUserContextKey = "current-user"

const repoTimeout = 5 * time.Second

// AuthMiddleware validates the bearer token and resolves the user behind its
// subject. The user record, role_id included, is re-read on every request so
// role changes and account deletion take effect immediately.
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "missing or malformed authorization header",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
		defer cancel()

		user, err := h.authz.ResolveUser(ctx, token)
		if err != nil {
			if errors.Is(err, authz.ErrUnauthenticated) {
				code := ErrCodeUnauthorized
				message := "could not validate credentials"
				if errors.Is(err, auth.ErrTokenExpired) {
					code = ErrCodeSessionExpired
					message = "token has expired"
				}
				c.Header("WWW-Authenticate", "Bearer")
				c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
					Code:    code,
					Message: message,
				})
				return
			}
			logrus.WithError(err).Error("failed to resolve current user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
				Code:    ErrCodeInternalError,
				Message: "failed to verify user",
			})
			return
		}

		c.Set(currentUserContextKey, user)
		c.Next()
	}
}

// RequireSuperAdmin guards role and user management endpoints.
func (h *HTTPHandler) RequireSuperAdmin() gin.HandlerFunc {
	return h.requirePolicy(func(ctx context.Context, user *entity.DbUser) error {
		return h.authz.RequireSuperAdmin(ctx, user)
	}, "super admin access required")
}

// RequireAdminOrSuperAdmin guards form-building endpoints.
func (h *HTTPHandler) RequireAdminOrSuperAdmin() gin.HandlerFunc {
	return h.requirePolicy(func(ctx context.Context, user *entity.DbUser) error {
		return h.authz.RequireAdminOrSuperAdmin(ctx, user)
	}, "admin access required")
}

// RequireEndUser guards answer submission endpoints.
func (h *HTTPHandler) RequireEndUser() gin.HandlerFunc {
	return h.requirePolicy(func(ctx context.Context, user *entity.DbUser) error {
		return h.authz.RequireEndUser(ctx, user)
	}, "end user access required")
}

func (h *HTTPHandler) requirePolicy(policy func(context.Context, *entity.DbUser) error, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "authentication required",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
		defer cancel()

		if err := policy(ctx, user); err != nil {
			if errors.Is(err, authz.ErrForbidden) {
				c.AbortWithStatusJSON(http.StatusForbidden, APIError{
					Code:    ErrCodeForbidden,
					Message: message,
				})
				return
			}
			logrus.WithError(err).WithField("user_id", user.ID).Error("policy check failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
				Code:    ErrCodeInternalError,
				Message: "failed to check permissions",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) *entity.DbUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*entity.DbUser)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

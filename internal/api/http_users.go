package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"feedback/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListUsers returns every user with its role resolved to a name. Guarded by
// the super admin policy at the route level.
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	var query entity.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if query.PageSize > 100 {
		query.PageSize = 100
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	users, meta, err := h.repo.ListUsers(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		InternalError(c, "failed to load users")
		return
	}

	// role_id values come from a small table; resolve each id once.
	roleNames := make(map[uint]string)
	response := entity.UserListResponse{
		Users: make([]entity.UserSummary, 0, len(users)),
		Meta:  meta,
	}
	for idx := range users {
		user := &users[idx]
		name, ok := roleNames[user.RoleID]
		if !ok {
			role, err := h.repo.GetRoleByID(ctx, user.RoleID)
			switch {
			case err == nil:
				name = role.Name
			case errors.Is(err, gorm.ErrRecordNotFound):
				name = ""
			default:
				logrus.WithError(err).Error("failed to resolve role for user listing")
				InternalError(c, "failed to load users")
				return
			}
			roleNames[user.RoleID] = name
		}
		response.Users = append(response.Users, entity.UserSummary{
			ID:        user.ID,
			Email:     user.Email,
			Role:      name,
			Confirmed: user.Confirmed,
			CreatedAt: user.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// CreateUser registers an account with an explicit role. Guarded by the
// super admin policy at the route level.
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	var req entity.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	role, err := h.repo.GetRoleByName(ctx, strings.TrimSpace(req.Role))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			BadRequest(c, ErrCodeInvalidRole, "unknown role")
			return
		}
		logrus.WithError(err).Error("failed to resolve role for user creation")
		InternalError(c, "failed to create user")
		return
	}

	summary, ok := h.createUser(c, ctx, req.Email, req.Password, req.FcmToken, role)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, summary)
}

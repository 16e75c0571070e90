package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"feedback/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListRoles returns every role. Open as in the rest of the read surface;
// role names are not secrets.
func (h *HTTPHandler) ListRoles(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	roles, err := h.repo.ListRoles(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list roles")
		InternalError(c, "failed to load roles")
		return
	}

	summaries := make([]entity.RoleSummary, 0, len(roles))
	for _, role := range roles {
		summaries = append(summaries, entity.RoleSummary{ID: role.ID, Name: role.Name})
	}
	c.JSON(http.StatusOK, summaries)
}

// CreateRole adds a role. Guarded by the super admin policy at the route
// level.
func (h *HTTPHandler) CreateRole(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	var req entity.RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		MissingField(c, "name")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	if _, err := h.repo.GetRoleByName(ctx, name); err == nil {
		Conflict(c, ErrCodeRoleExists, "role already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("failed to check existing role")
		InternalError(c, "failed to create role")
		return
	}

	role := entity.DbRole{Name: name}
	if err := h.repo.CreateRole(ctx, &role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeRoleExists, "role already exists")
			return
		}
		logrus.WithError(err).Error("failed to create role")
		InternalError(c, "failed to create role")
		return
	}

	logrus.WithField("role", name).Info("role created")
	c.JSON(http.StatusCreated, entity.RoleSummary{ID: role.ID, Name: role.Name})
}

// UpdateRole renames a role. Guarded by the super admin policy at the route
// level.
func (h *HTTPHandler) UpdateRole(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req entity.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		MissingField(c, "name")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	existing, err := h.repo.GetRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRoleNotFound, "role not found")
			return
		}
		logrus.WithError(err).Error("failed to load role for update")
		InternalError(c, "failed to update role")
		return
	}

	// Renaming a bootstrap role would break every policy check that
	// resolves it by name.
	if entity.IsBootstrapRole(existing.Name) && existing.Name != name {
		ErrorResponse(c, http.StatusForbidden, ErrCodeProtectedRole, "bootstrap roles cannot be renamed")
		return
	}

	if err := h.repo.UpdateRole(ctx, id, map[string]interface{}{"name": name}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeRoleExists, "role already exists")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRoleNotFound, "role not found")
			return
		}
		logrus.WithError(err).Error("failed to update role")
		InternalError(c, "failed to update role")
		return
	}

	c.JSON(http.StatusOK, entity.RoleSummary{ID: id, Name: name})
}

// DeleteRole removes a role. Bootstrap roles refuse deletion: removing one
// would orphan every user referencing it and disable its policy checks.
func (h *HTTPHandler) DeleteRole(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	existing, err := h.repo.GetRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRoleNotFound, "role not found")
			return
		}
		logrus.WithError(err).Error("failed to load role for deletion")
		InternalError(c, "failed to delete role")
		return
	}

	if entity.IsBootstrapRole(existing.Name) {
		ErrorResponse(c, http.StatusForbidden, ErrCodeProtectedRole, "bootstrap roles cannot be deleted")
		return
	}

	if err := h.repo.DeleteRole(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRoleNotFound, "role not found")
			return
		}
		logrus.WithError(err).Error("failed to delete role")
		InternalError(c, "failed to delete role")
		return
	}

	c.Status(http.StatusNoContent)
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uint, bool) {
	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

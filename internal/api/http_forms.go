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

// ListForms returns every feedback form with the creator resolved to an
// email. A creator deleted since keeps the form listed with an empty email.
func (h *HTTPHandler) ListForms(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	forms, err := h.repo.ListForms(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list feedback forms")
		InternalError(c, "failed to load feedback forms")
		return
	}

	summaries := make([]entity.FormSummary, 0, len(forms))
	for _, form := range forms {
		creator := ""
		if form.CreatedBy != 0 {
			user, err := h.repo.GetUserByID(ctx, form.CreatedBy)
			switch {
			case err == nil:
				creator = user.Email
			case errors.Is(err, gorm.ErrRecordNotFound):
				// keep empty
			default:
				logrus.WithError(err).Error("failed to resolve form creator")
				InternalError(c, "failed to load feedback forms")
				return
			}
		}
		summaries = append(summaries, entity.FormSummary{
			ID:        form.ID,
			Title:     form.Title,
			CreatedBy: creator,
		})
	}
	c.JSON(http.StatusOK, summaries)
}

// CreateForm adds a feedback form owned by the current user.
func (h *HTTPHandler) CreateForm(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	var req entity.FormCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		MissingField(c, "title")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	if _, err := h.repo.GetFormByTitle(ctx, title); err == nil {
		Conflict(c, ErrCodeFormExists, "this form already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("failed to check existing form")
		InternalError(c, "failed to create feedback form")
		return
	}

	form := entity.DbFeedbackForm{
		Title:     title,
		CreatedBy: user.ID,
	}
	if err := h.repo.CreateForm(ctx, &form); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeFormExists, "this form already exists")
			return
		}
		logrus.WithError(err).Error("failed to create feedback form")
		InternalError(c, "failed to create feedback form")
		return
	}

	logrus.WithField("title", title).Info("feedback form created")
	c.JSON(http.StatusCreated, entity.FormSummary{
		ID:        form.ID,
		Title:     form.Title,
		CreatedBy: user.Email,
	})
}

// UpdateForm retitles a form and records the updating user as its owner.
func (h *HTTPHandler) UpdateForm(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req entity.FormUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		MissingField(c, "title")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	updates := map[string]interface{}{
		"title":      title,
		"created_by": user.ID,
	}
	if err := h.repo.UpdateForm(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeFormNotFound, "form not found")
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeFormExists, "this form already exists")
			return
		}
		logrus.WithError(err).Error("failed to update feedback form")
		InternalError(c, "failed to update feedback form")
		return
	}

	c.JSON(http.StatusOK, entity.FormSummary{ID: id, Title: title, CreatedBy: user.Email})
}

// DeleteForm removes a feedback form by id.
func (h *HTTPHandler) DeleteForm(c *gin.Context) {
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

	if err := h.repo.DeleteForm(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeFormNotFound, "form not found")
			return
		}
		logrus.WithError(err).Error("failed to delete feedback form")
		InternalError(c, "failed to delete feedback form")
		return
	}

	c.Status(http.StatusNoContent)
}

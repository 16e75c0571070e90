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

// ListQuestionTypes returns every question type.
func (h *HTTPHandler) ListQuestionTypes(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	types, err := h.repo.ListQuestionTypes(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list question types")
		InternalError(c, "failed to load question types")
		return
	}

	summaries := make([]entity.QuestionTypeSummary, 0, len(types))
	for _, questionType := range types {
		summaries = append(summaries, entity.QuestionTypeSummary{
			ID:          questionType.ID,
			Name:        questionType.Name,
			Description: questionType.Description,
		})
	}
	c.JSON(http.StatusOK, summaries)
}

// CreateQuestionType adds a question type recording the creating user.
func (h *HTTPHandler) CreateQuestionType(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	var req entity.QuestionTypeCreateRequest
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

	if _, err := h.repo.GetQuestionTypeByName(ctx, name); err == nil {
		Conflict(c, ErrCodeQuestionTypeExists, "this question type already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("failed to check existing question type")
		InternalError(c, "failed to create question type")
		return
	}

	questionType := entity.DbQuestionType{
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		CreatedByUser: user.ID,
	}
	if err := h.repo.CreateQuestionType(ctx, &questionType); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeQuestionTypeExists, "this question type already exists")
			return
		}
		logrus.WithError(err).Error("failed to create question type")
		InternalError(c, "failed to create question type")
		return
	}

	logrus.WithField("question_type", name).Info("question type created")
	c.JSON(http.StatusCreated, entity.QuestionTypeSummary{
		ID:          questionType.ID,
		Name:        questionType.Name,
		Description: questionType.Description,
	})
}

// UpdateQuestionType updates name and description of a question type.
func (h *HTTPHandler) UpdateQuestionType(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req entity.QuestionTypeUpdateRequest
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

	updates := map[string]interface{}{
		"name":        name,
		"description": strings.TrimSpace(req.Description),
	}
	if err := h.repo.UpdateQuestionType(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeQuestionTypeNotFound, "question type not found")
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeQuestionTypeExists, "this question type already exists")
			return
		}
		logrus.WithError(err).Error("failed to update question type")
		InternalError(c, "failed to update question type")
		return
	}

	c.JSON(http.StatusOK, entity.QuestionTypeSummary{ID: id, Name: name, Description: strings.TrimSpace(req.Description)})
}

// DeleteQuestionType removes a question type by id.
func (h *HTTPHandler) DeleteQuestionType(c *gin.Context) {
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

	if err := h.repo.DeleteQuestionType(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeQuestionTypeNotFound, "question type not found")
			return
		}
		logrus.WithError(err).Error("failed to delete question type")
		InternalError(c, "failed to delete question type")
		return
	}

	c.Status(http.StatusNoContent)
}

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

// ListQuestions returns the questions belonging to the form named by the
// form_id query parameter.
func (h *HTTPHandler) ListQuestions(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	formID, ok := queryID(c, "form_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	questions, err := h.repo.ListQuestionsByForm(ctx, formID)
	if err != nil {
		logrus.WithError(err).Error("failed to list questions")
		InternalError(c, "failed to load questions")
		return
	}

	c.JSON(http.StatusOK, questions)
}

// CreateQuestion adds a question to a form, checking that the form and the
// question type both exist.
func (h *HTTPHandler) CreateQuestion(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	var req entity.QuestionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	if _, err := h.repo.GetFormByID(ctx, req.FormID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeFormNotFound, "form not found")
			return
		}
		logrus.WithError(err).Error("failed to check form for question")
		InternalError(c, "failed to create question")
		return
	}
	if _, err := h.repo.GetQuestionTypeByID(ctx, req.TypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeQuestionTypeNotFound, "question type not found")
			return
		}
		logrus.WithError(err).Error("failed to check question type for question")
		InternalError(c, "failed to create question")
		return
	}

	question := entity.DbQuestion{
		FormID:      req.FormID,
		Text:        strings.TrimSpace(req.Text),
		Description: strings.TrimSpace(req.Description),
		TypeID:      req.TypeID,
	}
	if err := h.repo.CreateQuestion(ctx, &question); err != nil {
		logrus.WithError(err).Error("failed to create question")
		InternalError(c, "failed to create question")
		return
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion updates text, description and optionally the type of a
// question.
func (h *HTTPHandler) UpdateQuestion(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req entity.QuestionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	updates := map[string]interface{}{
		"text":        strings.TrimSpace(req.Text),
		"description": strings.TrimSpace(req.Description),
	}
	if req.TypeID != 0 {
		if _, err := h.repo.GetQuestionTypeByID(ctx, req.TypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				NotFound(c, ErrCodeQuestionTypeNotFound, "question type not found")
				return
			}
			logrus.WithError(err).Error("failed to check question type for question update")
			InternalError(c, "failed to update question")
			return
		}
		updates["type"] = req.TypeID
	}

	if err := h.repo.UpdateQuestion(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeQuestionNotFound, "question not found")
			return
		}
		logrus.WithError(err).Error("failed to update question")
		InternalError(c, "failed to update question")
		return
	}

	updated, err := h.repo.GetQuestionByID(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("failed to reload question after update")
		InternalError(c, "failed to load updated question")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteQuestion removes a question by id.
func (h *HTTPHandler) DeleteQuestion(c *gin.Context) {
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

	if err := h.repo.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeQuestionNotFound, "question not found")
			return
		}
		logrus.WithError(err).Error("failed to delete question")
		InternalError(c, "failed to delete question")
		return
	}

	c.Status(http.StatusNoContent)
}

// queryID parses a required uint query parameter.
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

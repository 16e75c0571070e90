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

// ListOptions returns the options of the question named by the question_id
// query parameter, each with the parent question text resolved.
func (h *HTTPHandler) ListOptions(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	questionID, ok := queryID(c, "question_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	questionText := ""
	if question, err := h.repo.GetQuestionByID(ctx, questionID); err == nil {
		questionText = question.Text
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("failed to resolve parent question")
		InternalError(c, "failed to load options")
		return
	}

	options, err := h.repo.ListOptionsByQuestion(ctx, questionID)
	if err != nil {
		logrus.WithError(err).Error("failed to list options")
		InternalError(c, "failed to load options")
		return
	}

	summaries := make([]entity.OptionSummary, 0, len(options))
	for _, option := range options {
		summaries = append(summaries, entity.OptionSummary{
			ID:          option.ID,
			Text:        option.Text,
			Description: option.Description,
			Question:    questionText,
		})
	}
	c.JSON(http.StatusOK, summaries)
}

// CreateOption attaches an option to a question.
func (h *HTTPHandler) CreateOption(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	var req entity.OptionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	if _, err := h.repo.GetQuestionByID(ctx, req.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeQuestionNotFound, "question not found")
			return
		}
		logrus.WithError(err).Error("failed to check question for option")
		InternalError(c, "failed to create option")
		return
	}

	option := entity.DbOption{
		QuestionID:  req.QuestionID,
		Text:        strings.TrimSpace(req.Text),
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.repo.CreateOption(ctx, &option); err != nil {
		logrus.WithError(err).Error("failed to create option")
		InternalError(c, "failed to create option")
		return
	}

	c.JSON(http.StatusCreated, option)
}

// UpdateOption updates text and description of an option.
func (h *HTTPHandler) UpdateOption(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req entity.OptionUpdateRequest
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
	if err := h.repo.UpdateOption(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeOptionNotFound, "option not found")
			return
		}
		logrus.WithError(err).Error("failed to update option")
		InternalError(c, "failed to update option")
		return
	}

	updated, err := h.repo.GetOptionByID(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("failed to reload option after update")
		InternalError(c, "failed to load updated option")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteOption removes an option by id.
func (h *HTTPHandler) DeleteOption(c *gin.Context) {
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

	if err := h.repo.DeleteOption(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeOptionNotFound, "option not found")
			return
		}
		logrus.WithError(err).Error("failed to delete option")
		InternalError(c, "failed to delete option")
		return
	}

	c.Status(http.StatusNoContent)
}

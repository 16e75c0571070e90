package api

import (
	"context"
	"errors"
	"net/http"

	"feedback/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SubmitAnswer records an end user's answer to a question. Guarded by the
// end user policy at the route level.
func (h *HTTPHandler) SubmitAnswer(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	var req entity.AnswerCreateRequest
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
		logrus.WithError(err).Error("failed to check question for answer")
		InternalError(c, "failed to submit answer")
		return
	}

	answer := entity.DbAnswer{
		QuestionID:      req.QuestionID,
		UserID:          user.ID,
		SelectedAnswer:  req.SelectedAnswer,
		UserInputAnswer: req.UserInputAnswer,
		Rating:          req.Rating,
	}
	if err := h.repo.CreateAnswer(ctx, &answer); err != nil {
		logrus.WithError(err).Error("failed to create answer")
		InternalError(c, "failed to submit answer")
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// ListAnswers returns every answer submitted for a question. Guarded by the
// admin-or-super-admin policy at the route level.
func (h *HTTPHandler) ListAnswers(c *gin.Context) {
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

	answers, err := h.repo.ListAnswersByQuestion(ctx, questionID)
	if err != nil {
		logrus.WithError(err).Error("failed to list answers")
		InternalError(c, "failed to load answers")
		return
	}

	c.JSON(http.StatusOK, answers)
}

// ListMyAnswers returns the answers the current user has submitted.
func (h *HTTPHandler) ListMyAnswers(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	answers, err := h.repo.ListAnswersByUser(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to list answers for user")
		InternalError(c, "failed to load answers")
		return
	}

	c.JSON(http.StatusOK, answers)
}

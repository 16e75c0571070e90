package sql

import (
	"context"
	"fmt"

	"feedback/internal/entity"
)

// CreateAnswer persists a submitted answer.
func (r *GormRepository) CreateAnswer(ctx context.Context, answer *entity.DbAnswer) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if answer == nil {
		return fmt.Errorf("answer is nil")
	}
	return r.db.WithContext(ctx).Create(answer).Error
}

// ListAnswersByQuestion returns every answer submitted for one question.
func (r *GormRepository) ListAnswersByQuestion(ctx context.Context, questionID uint) ([]entity.DbAnswer, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if questionID == 0 {
		return nil, fmt.Errorf("invalid question id")
	}
	var answers []entity.DbAnswer
	if err := r.db.WithContext(ctx).Where("question_id = ?", questionID).Order("id ASC").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// ListAnswersByUser returns every answer one user submitted.
func (r *GormRepository) ListAnswersByUser(ctx context.Context, userID uint) ([]entity.DbAnswer, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var answers []entity.DbAnswer
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

package sql

import (
	"context"
	"fmt"

	"feedback/internal/entity"

	"gorm.io/gorm"
)

// CreateQuestion persists a new question.
func (r *GormRepository) CreateQuestion(ctx context.Context, question *entity.DbQuestion) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if question == nil {
		return fmt.Errorf("question is nil")
	}
	return r.db.WithContext(ctx).Create(question).Error
}

// GetQuestionByID loads a question by ID.
func (r *GormRepository) GetQuestionByID(ctx context.Context, id uint) (*entity.DbQuestion, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid question id")
	}
	var question entity.DbQuestion
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// ListQuestionsByForm returns the questions of one feedback form.
func (r *GormRepository) ListQuestionsByForm(ctx context.Context, formID uint) ([]entity.DbQuestion, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if formID == 0 {
		return nil, fmt.Errorf("invalid form id")
	}
	var questions []entity.DbQuestion
	if err := r.db.WithContext(ctx).Where("form_id = ?", formID).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// UpdateQuestion updates an existing question.
func (r *GormRepository) UpdateQuestion(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid question id")
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbQuestion{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteQuestion removes a question by ID.
func (r *GormRepository) DeleteQuestion(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid question id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbQuestion{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

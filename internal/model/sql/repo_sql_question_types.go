package sql

import (
	"context"
	"fmt"
	"strings"

	"feedback/internal/entity"

	"gorm.io/gorm"
)

// CreateQuestionType persists a new question type.
func (r *GormRepository) CreateQuestionType(ctx context.Context, questionType *entity.DbQuestionType) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if questionType == nil {
		return fmt.Errorf("question type is nil")
	}
	return r.db.WithContext(ctx).Create(questionType).Error
}

// GetQuestionTypeByName loads a question type by its unique name.
func (r *GormRepository) GetQuestionTypeByName(ctx context.Context, name string) (*entity.DbQuestionType, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("question type name is empty")
	}

	var questionType entity.DbQuestionType
	if err := r.db.WithContext(ctx).Where("name = ?", trimmed).First(&questionType).Error; err != nil {
		return nil, err
	}
	return &questionType, nil
}

// GetQuestionTypeByID loads a question type by ID.
func (r *GormRepository) GetQuestionTypeByID(ctx context.Context, id uint) (*entity.DbQuestionType, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid question type id")
	}
	var questionType entity.DbQuestionType
	if err := r.db.WithContext(ctx).First(&questionType, id).Error; err != nil {
		return nil, err
	}
	return &questionType, nil
}

// ListQuestionTypes returns every question type ordered by id.
func (r *GormRepository) ListQuestionTypes(ctx context.Context) ([]entity.DbQuestionType, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var types []entity.DbQuestionType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// UpdateQuestionType updates an existing question type.
func (r *GormRepository) UpdateQuestionType(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid question type id")
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbQuestionType{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteQuestionType removes a question type by ID.
func (r *GormRepository) DeleteQuestionType(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid question type id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbQuestionType{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

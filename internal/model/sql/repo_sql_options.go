package sql

import (
	"context"
	"fmt"

	"feedback/internal/entity"

	"gorm.io/gorm"
)

// CreateOption persists a new question option.
func (r *GormRepository) CreateOption(ctx context.Context, option *entity.DbOption) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if option == nil {
		return fmt.Errorf("option is nil")
	}
	return r.db.WithContext(ctx).Create(option).Error
}

// GetOptionByID loads an option by ID.
func (r *GormRepository) GetOptionByID(ctx context.Context, id uint) (*entity.DbOption, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid option id")
	}
	var option entity.DbOption
	if err := r.db.WithContext(ctx).First(&option, id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

// ListOptionsByQuestion returns the options attached to one question.
func (r *GormRepository) ListOptionsByQuestion(ctx context.Context, questionID uint) ([]entity.DbOption, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if questionID == 0 {
		return nil, fmt.Errorf("invalid question id")
	}
	var options []entity.DbOption
	if err := r.db.WithContext(ctx).Where("question_id = ?", questionID).Order("id ASC").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// UpdateOption updates an existing option.
func (r *GormRepository) UpdateOption(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid option id")
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbOption{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOption removes an option by ID.
func (r *GormRepository) DeleteOption(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid option id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbOption{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package sql

import (
	"context"
	"fmt"
	"strings"

	"feedback/internal/entity"

	"gorm.io/gorm"
)

// CreateForm persists a new feedback form.
func (r *GormRepository) CreateForm(ctx context.Context, form *entity.DbFeedbackForm) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if form == nil {
		return fmt.Errorf("form is nil")
	}
	return r.db.WithContext(ctx).Create(form).Error
}

// GetFormByTitle loads a feedback form by its unique title.
func (r *GormRepository) GetFormByTitle(ctx context.Context, title string) (*entity.DbFeedbackForm, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, fmt.Errorf("form title is empty")
	}

	var form entity.DbFeedbackForm
	if err := r.db.WithContext(ctx).Where("title = ?", trimmed).First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// GetFormByID loads a feedback form by ID.
func (r *GormRepository) GetFormByID(ctx context.Context, id uint) (*entity.DbFeedbackForm, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid form id")
	}
	var form entity.DbFeedbackForm
	if err := r.db.WithContext(ctx).First(&form, id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// ListForms returns every feedback form ordered by id.
func (r *GormRepository) ListForms(ctx context.Context) ([]entity.DbFeedbackForm, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var forms []entity.DbFeedbackForm
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

// UpdateForm updates an existing feedback form.
func (r *GormRepository) UpdateForm(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid form id")
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbFeedbackForm{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteForm removes a feedback form by ID.
func (r *GormRepository) DeleteForm(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid form id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbFeedbackForm{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

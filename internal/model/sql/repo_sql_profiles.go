package sql

import (
	"context"
	"fmt"

	"feedback/internal/entity"
)

// GetProfileByUserID loads the profile attached to a user.
func (r *GormRepository) GetProfileByUserID(ctx context.Context, userID uint) (*entity.DbProfile, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var profile entity.DbProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile creates the profile row on first write and updates it after.
func (r *GormRepository) SaveProfile(ctx context.Context, profile *entity.DbProfile) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if profile == nil {
		return fmt.Errorf("profile is nil")
	}
	if profile.UserID == 0 {
		return fmt.Errorf("invalid user id")
	}
	return r.db.WithContext(ctx).Save(profile).Error
}

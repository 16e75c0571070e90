package entity

import "time"

// DbProfile stores the optional profile attached to a user account.
type DbProfile struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	PhoneNumber    string    `gorm:"column:phone_number;type:varchar(32)" json:"phone_number"`
	ProfilePicture string    `gorm:"column:profile_picture;type:varchar(512)" json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName overrides default pluralised name.
func (DbProfile) TableName() string {
	return "profiles"
}

type ProfileUpdateRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// ProfileResponse is the profile view returned to the owning user. The
// picture field holds a public URL, not the raw storage key.
type ProfileResponse struct {
	UserID         uint   `json:"user_id"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	ProfilePicture string `json:"profile_picture"`
}

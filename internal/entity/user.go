package entity

import "time"

// DbUser represents a persisted user account. Role membership is a foreign
// key into the roles table rather than a claim baked into the token, so a
// role change takes effect on the next request without reissuing tokens.
type DbUser struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	Email            string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	FcmToken         string    `gorm:"column:fcm_token;type:varchar(512)" json:"-"`
	VerificationCode string    `gorm:"column:verification_code;type:varchar(64)" json:"-"`
	Confirmed        bool      `gorm:"column:confirmed;not null;default:false" json:"confirmed"`
	RoleID           uint      `gorm:"column:role_id;index;not null" json:"role_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// UserSummary is a lightweight user description returned to clients.
type UserSummary struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthRegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FcmToken string `json:"fcm_token"`
}

type AuthLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthTokenResponse mirrors the classic bearer token grant shape.
type AuthTokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type UserCreateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
	FcmToken string `json:"fcm_token"`
}

type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Meta  *Meta         `json:"meta"`
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	BaseParams
	Keyword string `json:"keyword" form:"keyword"`
}

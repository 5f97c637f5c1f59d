package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHebrew  Language = "he"
)

type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Username    string         `gorm:"uniqueIndex;not null" json:"username"`
	Password    string         `gorm:"not null" json:"-"`
	DisplayName string         `gorm:"size:200" json:"display_name"`
	Avatar      string         `gorm:"size:500" json:"avatar"`
	Language    Language       `gorm:"size:5;default:en" json:"language"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Viewer is the authenticated identity a repository operation runs on
// behalf of. It is always passed explicitly; repositories never read
// ambient auth state. A nil *Viewer means anonymous.
type Viewer struct {
	ID    string
	Email string
}

func (u *User) Viewer() *Viewer {
	return &Viewer{ID: u.ID.String(), Email: u.Email}
}

type UserRegisterRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Username    string   `json:"username" validate:"required,min=3,max=50"`
	Password    string   `json:"password" validate:"required,min=6"`
	DisplayName string   `json:"display_name" validate:"max=200"`
	Language    Language `json:"language" validate:"omitempty,oneof=en he"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserUpdateRequest struct {
	DisplayName *string   `json:"display_name" validate:"omitempty,max=200"`
	Username    *string   `json:"username" validate:"omitempty,min=3,max=50"`
	Language    *Language `json:"language" validate:"omitempty,oneof=en he"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Avatar      string     `json:"avatar"`
	Language    Language   `json:"language"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ExpiresIn    int64        `json:"expires_in,omitempty"`
}

func ToUserResponse(user *User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Language:    user.Language,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

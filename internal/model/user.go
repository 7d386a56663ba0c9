package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles assignable to a user. There is no finer-grained permission model:
// every admin-only operation requires RoleAdmin exactly.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the admin user base.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;default:'user';index"`

	ProfileImage ImageRef `json:"profile_image" gorm:"embedded;embeddedPrefix:profile_image_"`

	// Password-reset state. Only a one-way hash of the reset token is kept;
	// the raw token travels in the emailed link and nowhere else.
	ResetTokenHash   string     `json:"-" gorm:"size:64"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a CMS account. Only admins may mutate listing content.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Role         string         `gorm:"type:varchar(20);default:'editor'" json:"role"` // editor, admin
	TokenVersion int            `gorm:"default:0" json:"-"`                            // increment to invalidate all user tokens
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

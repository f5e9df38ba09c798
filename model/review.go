package model

import (
	"time"

	"gorm.io/gorm"
)

// Review is a visitor review attached to a university.
type Review struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UniversityID uint           `gorm:"not null;index" json:"university_id"`
	Name         string         `gorm:"not null" json:"name"`
	Rating       int            `gorm:"default:0" json:"rating"` // 1..5
	Content      string         `gorm:"type:text" json:"content"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

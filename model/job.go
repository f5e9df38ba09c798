package model

import (
	"time"

	"gorm.io/gorm"
)

// Job is a posting listed on the careers section.
type Job struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"not null" json:"title"`
	Company     string         `gorm:"type:varchar(255)" json:"company"`
	Location    string         `gorm:"type:varchar(255)" json:"location"`
	Experience  string         `gorm:"type:varchar(100)" json:"experience"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

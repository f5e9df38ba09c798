package model

import (
	"time"

	"gorm.io/gorm"
)

// Category is a top-level grouping matched to courses and programs by a
// plain integer foreign key, not a JSON list.
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name      string         `gorm:"not null" json:"name"`
	Icon      string         `gorm:"type:varchar(512)" json:"icon"`
	Position  int            `gorm:"default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Courses  []Course  `gorm:"foreignKey:CategoryID" json:"courses,omitempty"`
	Programs []Program `gorm:"foreignKey:CategoryID" json:"programs,omitempty"`
}

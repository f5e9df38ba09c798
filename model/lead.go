package model

import (
	"time"

	"gorm.io/gorm"
)

// Lead is an enquiry submitted from the public site. City, state and device
// type are derived from the client IP and user agent at create time.
type Lead struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	Email      string         `gorm:"type:varchar(255)" json:"email"`
	Mobile     string         `gorm:"type:varchar(20);not null;index" json:"mobile"`
	CourseID   uint           `gorm:"index" json:"course_id"`
	Message    string         `gorm:"type:text" json:"message"`
	IP         string         `gorm:"type:varchar(45)" json:"ip"`
	City       string         `gorm:"type:varchar(255)" json:"city"`
	State      string         `gorm:"type:varchar(255)" json:"state"`
	DeviceType string         `gorm:"type:varchar(20)" json:"device_type"`
	Verified   bool           `gorm:"default:false" json:"verified"` // set after OTP verification
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// ChatMessage is a message submitted through the site chat widget, enriched
// the same way as a lead.
type ChatMessage struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `json:"name"`
	Mobile     string         `gorm:"type:varchar(20);index" json:"mobile"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	IP         string         `gorm:"type:varchar(45)" json:"ip"`
	City       string         `gorm:"type:varchar(255)" json:"city"`
	State      string         `gorm:"type:varchar(255)" json:"state"`
	DeviceType string         `gorm:"type:varchar(20)" json:"device_type"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

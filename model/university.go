package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// University represents a listed institution. Slug is the public lookup key.
type University struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name      string         `gorm:"not null" json:"name"`
	Position  int            `gorm:"default:0" json:"position"` // sort order, 0 = unset
	City      string         `gorm:"type:varchar(255)" json:"city"`
	State     string         `gorm:"type:varchar(255)" json:"state"`
	Website   string         `gorm:"type:varchar(255)" json:"website"`
	Logo      string         `gorm:"type:varchar(512)" json:"logo"`
	Banner    string         `gorm:"type:varchar(512)" json:"banner"`
	Brochure  string         `gorm:"type:varchar(512)" json:"brochure"`
	About     string         `gorm:"type:text" json:"about"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// One-to-one content blocks
	Approvals    *UniversityApprovals    `gorm:"foreignKey:UniversityID" json:"approvals,omitempty"`
	Partners     *UniversityPartners     `gorm:"foreignKey:UniversityID" json:"partners,omitempty"`
	FinancialAid *UniversityFinancialAid `gorm:"foreignKey:UniversityID" json:"financial_aid,omitempty"`
	Rankings     *UniversityRankings     `gorm:"foreignKey:UniversityID" json:"rankings,omitempty"`
	ExamPatterns *UniversityExamPatterns `gorm:"foreignKey:UniversityID" json:"exam_patterns,omitempty"`

	// One-to-many
	Reviews []Review `gorm:"foreignKey:UniversityID" json:"reviews,omitempty"`
}

func (u *University) PrimaryID() uint { return u.ID }

// UniversityApprovals stores the approval bodies of a university as a
// denormalized ID list pointing at the approvals table.
type UniversityApprovals struct {
	ChildModel
	UniversityRef
	Title       string `json:"title"`
	ApprovalIDs IDList `gorm:"type:jsonb" json:"approval_ids"`
}

// UniversityPartners stores placement partners as a denormalized ID list
// pointing at the placements table.
type UniversityPartners struct {
	ChildModel
	UniversityRef
	Title        string `json:"title"`
	PlacementIDs IDList `gorm:"type:jsonb" json:"placement_partner_id"`
}

type UniversityFinancialAid struct {
	ChildModel
	UniversityRef
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Image   string `gorm:"type:varchar(512)" json:"image"`
}

type UniversityRankings struct {
	ChildModel
	UniversityRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"` // [{agency, rank, year}]
}

type UniversityExamPatterns struct {
	ChildModel
	UniversityRef
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

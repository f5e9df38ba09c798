package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Program is an aggregate root for standalone programs (diplomas,
// certifications) offered across several universities.
type Program struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CategoryID    uint           `gorm:"index" json:"category_id"`
	UniversityIDs IDList         `gorm:"type:jsonb" json:"university_id"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name          string         `gorm:"not null" json:"name"`
	Duration      string         `gorm:"type:varchar(100)" json:"duration"`
	Image         string         `gorm:"type:varchar(512)" json:"image"`
	Position      int            `gorm:"default:0" json:"position"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	About       *ProgramAbout       `gorm:"foreignKey:ProgramID" json:"about,omitempty"`
	Fees        *ProgramFees        `gorm:"foreignKey:ProgramID" json:"fees,omitempty"`
	Faq         *ProgramFaq         `gorm:"foreignKey:ProgramID" json:"faq,omitempty"`
	Seo         *ProgramSeo         `gorm:"foreignKey:ProgramID" json:"seo,omitempty"`
	Career      *ProgramCareer      `gorm:"foreignKey:ProgramID" json:"career,omitempty"`
	Curriculum  *ProgramCurriculum  `gorm:"foreignKey:ProgramID" json:"curriculum,omitempty"`
	Eligibility *ProgramEligibility `gorm:"foreignKey:ProgramID" json:"eligibility,omitempty"`
	Approvals   *ProgramApprovals   `gorm:"foreignKey:ProgramID" json:"approvals,omitempty"`
}

func (p *Program) PrimaryID() uint { return p.ID }

type ProgramAbout struct {
	ChildModel
	ProgramRef
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Image   string `gorm:"type:varchar(512)" json:"image"`
}

type ProgramFees struct {
	ChildModel
	ProgramRef
	Title   string `json:"title"`
	Amount  string `gorm:"type:varchar(100)" json:"amount"`
	Content string `gorm:"type:text" json:"content"`
}

type ProgramFaq struct {
	ChildModel
	ProgramRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type ProgramSeo struct {
	ChildModel
	ProgramRef
	MetaTitle       string `gorm:"type:varchar(255)" json:"meta_title"`
	MetaDescription string `gorm:"type:text" json:"meta_description"`
	MetaKeywords    string `gorm:"type:text" json:"meta_keywords"`
}

type ProgramCareer struct {
	ChildModel
	ProgramRef
	Title   string         `json:"title"`
	Content string         `gorm:"type:text" json:"content"`
	Items   datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type ProgramCurriculum struct {
	ChildModel
	ProgramRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type ProgramEligibility struct {
	ChildModel
	ProgramRef
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

type ProgramApprovals struct {
	ChildModel
	ProgramRef
	Title       string `json:"title"`
	ApprovalIDs IDList `gorm:"type:jsonb" json:"approval_ids"`
}

// SpecialisationProgram is an aggregate root tying a specialisation to a
// program variant with its own content blocks.
type SpecialisationProgram struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	ProgramID        uint           `gorm:"index" json:"program_id"`
	SpecialisationID uint           `gorm:"index" json:"specialisation_id"`
	UniversityIDs    IDList         `gorm:"type:jsonb" json:"university_id"`
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name             string         `gorm:"not null" json:"name"`
	Duration         string         `gorm:"type:varchar(100)" json:"duration"`
	Position         int            `gorm:"default:0" json:"position"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	About  *SpecialisationProgramAbout  `gorm:"foreignKey:SpecialisationProgramID" json:"about,omitempty"`
	Fees   *SpecialisationProgramFees   `gorm:"foreignKey:SpecialisationProgramID" json:"fees,omitempty"`
	Faq    *SpecialisationProgramFaq    `gorm:"foreignKey:SpecialisationProgramID" json:"faq,omitempty"`
	Seo    *SpecialisationProgramSeo    `gorm:"foreignKey:SpecialisationProgramID" json:"seo,omitempty"`
	Career *SpecialisationProgramCareer `gorm:"foreignKey:SpecialisationProgramID" json:"career,omitempty"`
}

func (s *SpecialisationProgram) PrimaryID() uint { return s.ID }

type SpecialisationProgramAbout struct {
	ChildModel
	SpecialisationProgramRef
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

type SpecialisationProgramFees struct {
	ChildModel
	SpecialisationProgramRef
	Title   string `json:"title"`
	Amount  string `gorm:"type:varchar(100)" json:"amount"`
	Content string `gorm:"type:text" json:"content"`
}

type SpecialisationProgramFaq struct {
	ChildModel
	SpecialisationProgramRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type SpecialisationProgramSeo struct {
	ChildModel
	SpecialisationProgramRef
	MetaTitle       string `gorm:"type:varchar(255)" json:"meta_title"`
	MetaDescription string `gorm:"type:text" json:"meta_description"`
	MetaKeywords    string `gorm:"type:text" json:"meta_keywords"`
}

type SpecialisationProgramCareer struct {
	ChildModel
	SpecialisationProgramRef
	Title   string         `json:"title"`
	Content string         `gorm:"type:text" json:"content"`
	Items   datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Specialisation is an aggregate root mirroring Course, scoped to a single
// parent course (e.g. "MBA in Finance" under "MBA").
type Specialisation struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CourseID      uint           `gorm:"index" json:"course_id"`
	UniversityIDs IDList         `gorm:"type:jsonb" json:"university_id"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name          string         `gorm:"not null" json:"name"`
	Duration      string         `gorm:"type:varchar(100)" json:"duration"`
	Image         string         `gorm:"type:varchar(512)" json:"image"`
	Position      int            `gorm:"default:0" json:"position"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	About            *SpecialisationAbout            `gorm:"foreignKey:SpecialisationID" json:"about,omitempty"`
	Fees             *SpecialisationFees             `gorm:"foreignKey:SpecialisationID" json:"fees,omitempty"`
	Faq              *SpecialisationFaq              `gorm:"foreignKey:SpecialisationID" json:"faq,omitempty"`
	Seo              *SpecialisationSeo              `gorm:"foreignKey:SpecialisationID" json:"seo,omitempty"`
	Career           *SpecialisationCareer           `gorm:"foreignKey:SpecialisationID" json:"career,omitempty"`
	Skills           *SpecialisationSkills           `gorm:"foreignKey:SpecialisationID" json:"skills,omitempty"`
	Curriculum       *SpecialisationCurriculum       `gorm:"foreignKey:SpecialisationID" json:"curriculum,omitempty"`
	AdmissionProcess *SpecialisationAdmissionProcess `gorm:"foreignKey:SpecialisationID" json:"admission_process,omitempty"`
	Eligibility      *SpecialisationEligibility      `gorm:"foreignKey:SpecialisationID" json:"eligibility,omitempty"`
	Approvals        *SpecialisationApprovals        `gorm:"foreignKey:SpecialisationID" json:"approvals,omitempty"`
}

func (s *Specialisation) PrimaryID() uint { return s.ID }

type SpecialisationAbout struct {
	ChildModel
	SpecialisationRef
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Image   string `gorm:"type:varchar(512)" json:"image"`
}

type SpecialisationFees struct {
	ChildModel
	SpecialisationRef
	Title    string `json:"title"`
	Amount   string `gorm:"type:varchar(100)" json:"amount"`
	Semester string `gorm:"type:varchar(100)" json:"semester"`
	Content  string `gorm:"type:text" json:"content"`
}

type SpecialisationFaq struct {
	ChildModel
	SpecialisationRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type SpecialisationSeo struct {
	ChildModel
	SpecialisationRef
	MetaTitle       string `gorm:"type:varchar(255)" json:"meta_title"`
	MetaDescription string `gorm:"type:text" json:"meta_description"`
	MetaKeywords    string `gorm:"type:text" json:"meta_keywords"`
}

type SpecialisationCareer struct {
	ChildModel
	SpecialisationRef
	Title   string         `json:"title"`
	Content string         `gorm:"type:text" json:"content"`
	Items   datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type SpecialisationSkills struct {
	ChildModel
	SpecialisationRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type SpecialisationCurriculum struct {
	ChildModel
	SpecialisationRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type SpecialisationAdmissionProcess struct {
	ChildModel
	SpecialisationRef
	Title   string         `json:"title"`
	Content string         `gorm:"type:text" json:"content"`
	Items   datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type SpecialisationEligibility struct {
	ChildModel
	SpecialisationRef
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

type SpecialisationApprovals struct {
	ChildModel
	SpecialisationRef
	Title       string `json:"title"`
	ApprovalIDs IDList `gorm:"type:jsonb" json:"approval_ids"`
}

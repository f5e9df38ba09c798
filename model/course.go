package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course is an aggregate root: the parent row plus a fixed set of one-to-one
// content blocks, always saved together in one transaction.
type Course struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CategoryID    uint           `gorm:"index" json:"category_id"`
	UniversityIDs IDList         `gorm:"type:jsonb" json:"university_id"` // denormalized, no join table
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name          string         `gorm:"not null" json:"name"`
	Duration      string         `gorm:"type:varchar(100)" json:"duration"`
	Mode          string         `gorm:"type:varchar(50)" json:"mode"` // online, distance, regular
	Image         string         `gorm:"type:varchar(512)" json:"image"`
	Position      int            `gorm:"default:0" json:"position"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	About            *CourseAbout            `gorm:"foreignKey:CourseID" json:"about,omitempty"`
	Fees             *CourseFees             `gorm:"foreignKey:CourseID" json:"fees,omitempty"`
	Faq              *CourseFaq              `gorm:"foreignKey:CourseID" json:"faq,omitempty"`
	Seo              *CourseSeo              `gorm:"foreignKey:CourseID" json:"seo,omitempty"`
	Career           *CourseCareer           `gorm:"foreignKey:CourseID" json:"career,omitempty"`
	Skills           *CourseSkills           `gorm:"foreignKey:CourseID" json:"skills,omitempty"`
	Advantages       *CourseAdvantages       `gorm:"foreignKey:CourseID" json:"advantages,omitempty"`
	Curriculum       *CourseCurriculum       `gorm:"foreignKey:CourseID" json:"curriculum,omitempty"`
	ExamPattern      *CourseExamPattern      `gorm:"foreignKey:CourseID" json:"exam_pattern,omitempty"`
	FinancialAid     *CourseFinancialAid     `gorm:"foreignKey:CourseID" json:"financial_aid,omitempty"`
	Services         *CourseServices         `gorm:"foreignKey:CourseID" json:"services,omitempty"`
	AdmissionProcess *CourseAdmissionProcess `gorm:"foreignKey:CourseID" json:"admission_process,omitempty"`
	Eligibility      *CourseEligibility      `gorm:"foreignKey:CourseID" json:"eligibility,omitempty"`
	Certificates     *CourseCertificates     `gorm:"foreignKey:CourseID" json:"certificates,omitempty"`
	Rankings         *CourseRankings         `gorm:"foreignKey:CourseID" json:"rankings,omitempty"`
	Approvals        *CourseApprovals        `gorm:"foreignKey:CourseID" json:"approvals,omitempty"`
	Partners         *CoursePartners         `gorm:"foreignKey:CourseID" json:"partners,omitempty"`
}

func (c *Course) PrimaryID() uint { return c.ID }

type CourseAbout struct {
	ChildModel
	CourseRef
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Image   string `gorm:"type:varchar(512)" json:"image"`
}

type CourseFees struct {
	ChildModel
	CourseRef
	Title    string `json:"title"`
	Amount   string `gorm:"type:varchar(100)" json:"amount"`
	Semester string `gorm:"type:varchar(100)" json:"semester"`
	Content  string `gorm:"type:text" json:"content"`
}

type CourseFaq struct {
	ChildModel
	CourseRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"` // [{question, answer}]
}

type CourseSeo struct {
	ChildModel
	CourseRef
	MetaTitle       string `gorm:"type:varchar(255)" json:"meta_title"`
	MetaDescription string `gorm:"type:text" json:"meta_description"`
	MetaKeywords    string `gorm:"type:text" json:"meta_keywords"`
}

type CourseCareer struct {
	ChildModel
	CourseRef
	Title   string         `json:"title"`
	Content string         `gorm:"type:text" json:"content"`
	Items   datatypes.JSON `gorm:"type:jsonb" json:"items"` // [{role, package}]
}

type CourseSkills struct {
	ChildModel
	CourseRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type CourseAdvantages struct {
	ChildModel
	CourseRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type CourseCurriculum struct {
	ChildModel
	CourseRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"` // [{semester, subjects}]
}

type CourseExamPattern struct {
	ChildModel
	CourseRef
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

type CourseFinancialAid struct {
	ChildModel
	CourseRef
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Image   string `gorm:"type:varchar(512)" json:"image"`
}

// CourseServices holds list items whose icons are uploaded as indexed
// multipart files (services[0], services[1], ...).
type CourseServices struct {
	ChildModel
	CourseRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"` // [{title, description, icon}]
}

type CourseAdmissionProcess struct {
	ChildModel
	CourseRef
	Title   string         `json:"title"`
	Content string         `gorm:"type:text" json:"content"`
	Items   datatypes.JSON `gorm:"type:jsonb" json:"items"` // [{step, description}]
}

type CourseEligibility struct {
	ChildModel
	CourseRef
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

type CourseCertificates struct {
	ChildModel
	CourseRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"` // [{title, image}]
}

type CourseRankings struct {
	ChildModel
	CourseRef
	Title string         `json:"title"`
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"`
}

type CourseApprovals struct {
	ChildModel
	CourseRef
	Title       string `json:"title"`
	ApprovalIDs IDList `gorm:"type:jsonb" json:"approval_ids"`
}

type CoursePartners struct {
	ChildModel
	CourseRef
	Title        string `json:"title"`
	PlacementIDs IDList `gorm:"type:jsonb" json:"placement_partner_id"`
}

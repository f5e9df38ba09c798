package model

import "time"

// ChildModel is the embedded base of every one-to-one content block. Blocks
// are not soft-deleted on their own; they live and die with their parent.
type ChildModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// The Ref types below carry the parent foreign key of a block and tell the
// aggregate save which column identifies the block's row for upserts.

type CourseRef struct {
	CourseID uint `gorm:"uniqueIndex;not null" json:"course_id"`
}

func (r *CourseRef) SetParentID(id uint) { r.CourseID = id }
func (CourseRef) ParentColumn() string   { return "course_id" }

type SpecialisationRef struct {
	SpecialisationID uint `gorm:"uniqueIndex;not null" json:"specialisation_id"`
}

func (r *SpecialisationRef) SetParentID(id uint) { r.SpecialisationID = id }
func (SpecialisationRef) ParentColumn() string   { return "specialisation_id" }

type ProgramRef struct {
	ProgramID uint `gorm:"uniqueIndex;not null" json:"program_id"`
}

func (r *ProgramRef) SetParentID(id uint) { r.ProgramID = id }
func (ProgramRef) ParentColumn() string   { return "program_id" }

type SpecialisationProgramRef struct {
	SpecialisationProgramID uint `gorm:"uniqueIndex;not null" json:"specialisation_program_id"`
}

func (r *SpecialisationProgramRef) SetParentID(id uint) { r.SpecialisationProgramID = id }
func (SpecialisationProgramRef) ParentColumn() string   { return "specialisation_program_id" }

type UniversityRef struct {
	UniversityID uint `gorm:"uniqueIndex;not null" json:"university_id"`
}

func (r *UniversityRef) SetParentID(id uint) { r.UniversityID = id }
func (UniversityRef) ParentColumn() string   { return "university_id" }

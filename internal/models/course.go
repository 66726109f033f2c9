package models

import "time"

// Course belongs to a program and semester and carries the assessable content.
type Course struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CourseCode string    `gorm:"size:20;uniqueIndex;not null" json:"course_code"`
	CourseName string    `gorm:"size:100;not null" json:"course_name"`
	ProgramID  *uint     `gorm:"index" json:"program_id"`
	SemesterID *uint     `gorm:"index" json:"semester_id"`
	CreatedAt  time.Time `json:"created_at"`

	Program  *Program  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"program,omitempty"`
	Semester *Semester `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"semester,omitempty"`
}

// StaffCourse assigns a staff member to teach a course during an academic year.
type StaffCourse struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	StaffID        uint       `gorm:"not null;uniqueIndex:uniq_staff_course_year" json:"staff_id"`
	CourseID       uint       `gorm:"not null;uniqueIndex:uniq_staff_course_year" json:"course_id"`
	AcademicYearID uint       `gorm:"not null;uniqueIndex:uniq_staff_course_year" json:"academic_year_id"`
	AssignedDate   *time.Time `json:"assigned_date"`
	CreatedAt      time.Time  `json:"created_at"`

	Staff        Staff        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"staff,omitempty"`
	Course       Course       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course,omitempty"`
	AcademicYear AcademicYear `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"academic_year,omitempty"`
}

// Material kinds recognised by the frontend.
const (
	MaterialTypeVideo   = "video"
	MaterialTypeYoutube = "youtube"
	MaterialTypePDF     = "pdf"
	MaterialTypePPT     = "ppt"
)

// StudyMaterial is a piece of course content. Materials nest one level deep
// via ParentID (a topic and its attachments).
type StudyMaterial struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	FileURL       string    `gorm:"size:500" json:"file_url"`
	FileType      string    `gorm:"size:50" json:"file_type"`
	StaffCourseID uint      `gorm:"index;not null" json:"staff_course_id"`
	ParentID      *uint     `gorm:"index" json:"parent_id"`
	UploadDate    time.Time `gorm:"autoCreateTime" json:"upload_date"`

	StaffCourse StaffCourse     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"staff_course,omitempty"`
	Children    []StudyMaterial `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

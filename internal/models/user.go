package models

import "time"

// Role names accepted by the auth layer.
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleStudent = "student"
)

// Admin is a platform administrator account.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Phone        string    `gorm:"size:20" json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}

// Staff is a teaching account that owns courses, assignments and MCQs.
type Staff struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StaffCode    string    `gorm:"size:20;uniqueIndex;not null" json:"staff_code"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Student is a learner attached to a program and semester.
type Student struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	StudentCode    string     `gorm:"size:20;uniqueIndex;not null" json:"student_code"`
	Username       string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"size:255;not null" json:"-"`
	FullName       string     `gorm:"size:100;not null" json:"full_name"`
	ProgramID      *uint      `gorm:"index" json:"program_id"`
	SemesterID     *uint      `gorm:"index" json:"semester_id"`
	EnrollmentDate *time.Time `json:"enrollment_date"`
	CreatedAt      time.Time  `json:"created_at"`

	Program  *Program  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"program,omitempty"`
	Semester *Semester `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"semester,omitempty"`
}

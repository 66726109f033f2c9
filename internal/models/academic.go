package models

import "time"

// AcademicYear groups staff-course assignments into a teaching year.
type AcademicYear struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	YearName  string    `gorm:"size:50;not null" json:"year_name"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

// Program is a degree program students enroll into.
type Program struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProgramName string    `gorm:"size:100;not null" json:"program_name"`
	ProgramCode string    `gorm:"size:20;uniqueIndex;not null" json:"program_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// Semester is a numbered study period within a program.
type Semester struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SemesterName   string    `gorm:"size:50;not null" json:"semester_name"`
	SemesterNumber int       `gorm:"not null" json:"semester_number"`
	CreatedAt      time.Time `json:"created_at"`
}

package models

import "time"

// Notification types produced by the fan-out service.
const (
	NotificationTypeNewAssignment       = "new_assignment"
	NotificationTypeNewStudyMaterial    = "new_study_material"
	NotificationTypeAssignmentSubmitted = "assignment_submitted"
	NotificationTypeSubmissionReceived  = "assignment_submission_received"
	NotificationTypeAssignmentGraded    = "assignment_graded"
	NotificationTypeDeadlineReminder    = "deadline_reminder"
)

// Notification is addressed to a (user_type, user_id) pair. One row is
// created per event-recipient pair; repeated events create new rows.
// EmailSent is flipped by the mail worker after dispatch and must not be
// read synchronously by the triggering caller.
type Notification struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserType      string     `gorm:"size:20;index:idx_notification_user;not null" json:"user_type"`
	UserID        uint       `gorm:"index:idx_notification_user;not null" json:"user_id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	Type          string     `gorm:"column:notification_type;size:50" json:"notification_type"`
	ReferenceType string     `gorm:"size:50" json:"reference_type"`
	ReferenceID   *uint      `json:"reference_id"`
	IsRead        bool       `gorm:"not null;default:false" json:"is_read"`
	EmailSent     bool       `gorm:"not null;default:false" json:"email_sent"`
	CreatedAt     time.Time  `json:"created_at"`
	ReadAt        *time.Time `json:"read_at"`
}

// Communication is a direct message between two users, identified by role
// and id on both ends.
type Communication struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SenderType   string     `gorm:"size:20;not null" json:"sender_type"`
	SenderID     uint       `gorm:"index;not null" json:"sender_id"`
	ReceiverType string     `gorm:"size:20;not null" json:"receiver_type"`
	ReceiverID   uint       `gorm:"index;not null" json:"receiver_id"`
	Subject      string     `gorm:"size:200" json:"subject"`
	Message      string     `gorm:"type:text;not null" json:"message"`
	IsRead       bool       `gorm:"not null;default:false" json:"is_read"`
	SentAt       time.Time  `gorm:"autoCreateTime" json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
}

// Feedback is a student rating for a course or staff member.
type Feedback struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"index;not null" json:"student_id"`
	CourseID     *uint     `gorm:"index" json:"course_id"`
	StaffID      *uint     `gorm:"index" json:"staff_id"`
	Rating       int       `gorm:"not null" json:"rating"`
	FeedbackText string    `gorm:"type:text" json:"feedback_text"`
	IsAnonymous  bool      `gorm:"not null;default:false" json:"is_anonymous"`
	SubmittedAt  time.Time `gorm:"autoCreateTime" json:"submitted_at"`

	Student Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student,omitempty"`
}

package dto

import "time"

// DashboardStats holds the headline counters on the student dashboard.
type DashboardStats struct {
	EnrolledCourses      int   `json:"enrolled_courses"`
	PendingAssignments   int   `json:"pending_assignments"`
	SubmittedAssignments int   `json:"submitted_assignments"`
	UnreadNotifications  int64 `json:"unread_notifications"`
}

// UpcomingAssignment is a dashboard line for an assignment due soon.
type UpcomingAssignment struct {
	AssignmentID uint      `json:"assignment_id"`
	Title        string    `json:"title"`
	CourseID     uint      `json:"course_id"`
	CourseName   string    `json:"course_name"`
	DueDate      time.Time `json:"due_date"`
	Submitted    bool      `json:"submitted"`
}

// StudentDashboardResponse is the aggregate served to the student dashboard,
// cached briefly in Redis.
type StudentDashboardResponse struct {
	StudentID           uint                 `json:"student_id"`
	Stats               DashboardStats       `json:"stats"`
	UpcomingAssignments []UpcomingAssignment `json:"upcoming_assignments"`
	GeneratedAt         time.Time            `json:"generated_at"`
}

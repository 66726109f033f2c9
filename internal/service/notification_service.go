package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/observability"
	"github.com/lls-edu/lls-api/internal/repository"
	"github.com/lls-edu/lls-api/pkg/mailer"
)

// ErrNotificationNotFound indicates a notification could not be found.
var ErrNotificationNotFound = errors.New("notification not found")

// reminderWindow is how far ahead the deadline sweep looks for due
// assignments.
const reminderWindow = 72 * time.Hour

// NotificationService resolves event audiences, persists one notification row
// per recipient and hands emails to a background worker pool. Email delivery
// is best-effort: failures are logged and never surfaced to the caller.
type NotificationService interface {
	NotifyNewAssignment(ctx context.Context, assignment models.Assignment) error
	NotifyNewStudyMaterial(ctx context.Context, material models.StudyMaterial) error
	NotifyAssignmentSubmitted(ctx context.Context, submission models.Submission) error
	NotifyAssignmentGraded(ctx context.Context, evaluation models.Evaluation) error
	SendDeadlineReminders(ctx context.Context) (int, error)
	List(ctx context.Context, userType string, userID uint, unreadOnly bool, limit int) ([]dto.NotificationResponse, error)
	UnreadCount(ctx context.Context, userType string, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) (dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, userType string, userID uint) error
	Delete(ctx context.Context, id uint) error
	Start()
	Stop()
}

type emailJob struct {
	notificationID uint
	recipient      string
	subject        string
	body           string
}

type notificationService struct {
	notifications repository.NotificationRepository
	enrollments   repository.EnrollmentRepository
	students      repository.StudentRepository
	staff         repository.StaffRepository
	courses       repository.CourseRepository
	staffCourses  repository.StaffCourseRepository
	assignments   repository.AssignmentRepository
	submissions   repository.SubmissionRepository
	mailer        mailer.Mailer
	sanitizer     *bluemonday.Policy
	logger        zerolog.Logger
	now           func() time.Time

	workers   int
	jobs      chan emailJob
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewNotificationService constructs a NotificationService instance. Start
// must be called before any event triggers emails.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	enrollmentRepo repository.EnrollmentRepository,
	studentRepo repository.StudentRepository,
	staffRepo repository.StaffRepository,
	courseRepo repository.CourseRepository,
	staffCourseRepo repository.StaffCourseRepository,
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	mail mailer.Mailer,
	workers int,
	logger zerolog.Logger,
) NotificationService {
	if workers <= 0 {
		workers = 1
	}
	return &notificationService{
		notifications: notificationRepo,
		enrollments:   enrollmentRepo,
		students:      studentRepo,
		staff:         staffRepo,
		courses:       courseRepo,
		staffCourses:  staffCourseRepo,
		assignments:   assignmentRepo,
		submissions:   submissionRepo,
		mailer:        mail,
		sanitizer:     bluemonday.StrictPolicy(),
		logger:        logger.With().Str("component", "notification_service").Logger(),
		now:           time.Now,
		workers:       workers,
		jobs:          make(chan emailJob, 256),
	}
}

// Start launches the email worker pool.
func (s *notificationService) Start() {
	s.startOnce.Do(func() {
		for i := 0; i < s.workers; i++ {
			s.wg.Add(1)
			go s.worker()
		}
	})
}

// Stop drains queued emails and waits for the workers to exit.
func (s *notificationService) Stop() {
	s.stopOnce.Do(func() {
		close(s.jobs)
		s.wg.Wait()
	})
}

func (s *notificationService) worker() {
	defer s.wg.Done()
	for job := range s.jobs {
		if err := s.mailer.Send(job.recipient, job.subject, job.body, fmt.Sprintf("<p>%s</p>", job.body)); err != nil {
			if !errors.Is(err, mailer.ErrDisabled) {
				s.logger.Warn().Err(err).Str("recipient", job.recipient).Msg("email delivery failed")
				observability.EmailsFailed().Inc()
			}
			continue
		}
		observability.EmailsSent().Inc()
		if err := s.notifications.SetEmailSent(context.Background(), job.notificationID, true); err != nil {
			s.logger.Warn().Err(err).Uint("notification_id", job.notificationID).Msg("failed to flag email as sent")
		}
	}
}

func (s *notificationService) NotifyNewAssignment(ctx context.Context, assignment models.Assignment) error {
	course, err := s.courses.GetByID(ctx, assignment.CourseID)
	if err != nil {
		return err
	}

	audience, err := s.resolveCourseAudience(ctx, course)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("New Assignment: %s", assignment.Title)
	message := fmt.Sprintf("A new assignment has been posted in %s.", course.CourseName)
	if assignment.DueDate != nil {
		message = fmt.Sprintf("%s It is due on %s.", message, assignment.DueDate.Format("02 Jan 2006 15:04"))
	}

	for _, student := range audience {
		notification := models.Notification{
			UserType:      models.RoleStudent,
			UserID:        student.ID,
			Title:         title,
			Message:       message,
			Type:          models.NotificationTypeNewAssignment,
			ReferenceType: "assignment",
			ReferenceID:   &assignment.ID,
		}
		if err := s.dispatch(ctx, &notification, student.Email); err != nil {
			return err
		}
	}

	return nil
}

func (s *notificationService) NotifyNewStudyMaterial(ctx context.Context, material models.StudyMaterial) error {
	staffCourse, err := s.staffCourses.GetByID(ctx, material.StaffCourseID)
	if err != nil {
		return err
	}

	course, err := s.courses.GetByID(ctx, staffCourse.CourseID)
	if err != nil {
		return err
	}

	audience, err := s.resolveCourseAudience(ctx, course)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("New Study Material: %s", material.Title)
	message := fmt.Sprintf("New study material has been published in %s.", course.CourseName)

	for _, student := range audience {
		notification := models.Notification{
			UserType:      models.RoleStudent,
			UserID:        student.ID,
			Title:         title,
			Message:       message,
			Type:          models.NotificationTypeNewStudyMaterial,
			ReferenceType: "study_material",
			ReferenceID:   &material.ID,
		}
		if err := s.dispatch(ctx, &notification, student.Email); err != nil {
			return err
		}
	}

	return nil
}

func (s *notificationService) NotifyAssignmentSubmitted(ctx context.Context, submission models.Submission) error {
	assignment, err := s.assignments.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return err
	}

	student, err := s.students.GetByID(ctx, submission.StudentID)
	if err != nil {
		return err
	}

	receipt := models.Notification{
		UserType:      models.RoleStudent,
		UserID:        student.ID,
		Title:         fmt.Sprintf("Assignment Submitted: %s", assignment.Title),
		Message:       fmt.Sprintf("Your submission for %s has been received.", assignment.Title),
		Type:          models.NotificationTypeAssignmentSubmitted,
		ReferenceType: "submission",
		ReferenceID:   &submission.ID,
	}
	if err := s.dispatch(ctx, &receipt, student.Email); err != nil {
		return err
	}

	if assignment.StaffID == nil {
		return nil
	}

	staffMember, err := s.staff.GetByID(ctx, *assignment.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	alert := models.Notification{
		UserType:      models.RoleStaff,
		UserID:        staffMember.ID,
		Title:         fmt.Sprintf("New Submission: %s", assignment.Title),
		Message:       fmt.Sprintf("%s has submitted %s.", student.FullName, assignment.Title),
		Type:          models.NotificationTypeSubmissionReceived,
		ReferenceType: "submission",
		ReferenceID:   &submission.ID,
	}
	return s.dispatch(ctx, &alert, staffMember.Email)
}

func (s *notificationService) NotifyAssignmentGraded(ctx context.Context, evaluation models.Evaluation) error {
	submission, err := s.submissions.GetByID(ctx, evaluation.SubmissionID)
	if err != nil {
		return err
	}

	student, err := s.students.GetByID(ctx, submission.StudentID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Your submission for %s has been graded.", submission.Assignment.Title)
	if evaluation.MarksObtained != nil {
		message = fmt.Sprintf("Your submission for %s has been graded: %.2f marks.", submission.Assignment.Title, *evaluation.MarksObtained)
	}

	notification := models.Notification{
		UserType:      models.RoleStudent,
		UserID:        student.ID,
		Title:         fmt.Sprintf("Assignment Graded: %s", submission.Assignment.Title),
		Message:       message,
		Type:          models.NotificationTypeAssignmentGraded,
		ReferenceType: "submission",
		ReferenceID:   &submission.ID,
	}
	return s.dispatch(ctx, &notification, student.Email)
}

// SendDeadlineReminders sweeps assignments due within the reminder window,
// skipping students who already submitted or were reminded today. Returns the
// number of reminders created.
func (s *notificationService) SendDeadlineReminders(ctx context.Context) (int, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	due, err := s.assignments.ListDueBetween(ctx, now, now.Add(reminderWindow))
	if err != nil {
		return 0, err
	}

	created := 0
	for _, assignment := range due {
		course, err := s.courses.GetByID(ctx, assignment.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return created, err
		}

		audience, err := s.resolveCourseAudience(ctx, course)
		if err != nil {
			return created, err
		}

		submitted, err := s.submissions.List(ctx, repository.SubmissionFilter{AssignmentID: &assignment.ID})
		if err != nil {
			return created, err
		}
		submittedBy := make(map[uint]struct{}, len(submitted))
		for _, submission := range submitted {
			submittedBy[submission.StudentID] = struct{}{}
		}

		for _, student := range audience {
			if _, ok := submittedBy[student.ID]; ok {
				continue
			}
			reminded, err := s.notifications.HasReminderSince(ctx, student.ID, assignment.ID, startOfDay)
			if err != nil {
				return created, err
			}
			if reminded {
				continue
			}

			notification := models.Notification{
				UserType:      models.RoleStudent,
				UserID:        student.ID,
				Title:         fmt.Sprintf("Deadline Approaching: %s", assignment.Title),
				Message:       fmt.Sprintf("The assignment %s in %s is due on %s.", assignment.Title, course.CourseName, assignment.DueDate.Format("02 Jan 2006 15:04")),
				Type:          models.NotificationTypeDeadlineReminder,
				ReferenceType: "assignment",
				ReferenceID:   &assignment.ID,
			}
			if err := s.dispatch(ctx, &notification, student.Email); err != nil {
				return created, err
			}
			created++
		}
	}

	return created, nil
}

func (s *notificationService) List(ctx context.Context, userType string, userID uint, unreadOnly bool, limit int) ([]dto.NotificationResponse, error) {
	notifications, err := s.notifications.ListByUser(ctx, userType, userID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewNotificationResponseSlice(notifications), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userType string, userID uint) (int64, error) {
	return s.notifications.UnreadCount(ctx, userType, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id uint) (dto.NotificationResponse, error) {
	notification, err := s.notifications.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NotificationResponse{}, ErrNotificationNotFound
		}
		return dto.NotificationResponse{}, err
	}
	return dto.NewNotificationResponse(notification), nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userType string, userID uint) error {
	return s.notifications.MarkAllRead(ctx, userType, userID)
}

func (s *notificationService) Delete(ctx context.Context, id uint) error {
	if err := s.notifications.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// dispatch persists the notification row and queues the email. Only storage
// failures propagate; a full queue or disabled mailer leaves email_sent false.
func (s *notificationService) dispatch(ctx context.Context, notification *models.Notification, email string) error {
	notification.Title = s.sanitizer.Sanitize(notification.Title)
	notification.Message = s.sanitizer.Sanitize(notification.Message)

	if err := s.notifications.Create(ctx, notification); err != nil {
		return err
	}
	observability.NotificationsCreated().WithLabelValues(notification.Type).Inc()

	if email == "" || !s.mailer.Enabled() {
		return nil
	}

	job := emailJob{
		notificationID: notification.ID,
		recipient:      email,
		subject:        notification.Title,
		body:           notification.Message,
	}
	select {
	case s.jobs <- job:
	default:
		s.logger.Warn().Uint("notification_id", notification.ID).Msg("email queue full, dropping message")
		observability.EmailsFailed().Inc()
	}

	return nil
}

// resolveCourseAudience unions active enrollments with students whose program
// and semester match the course. Both paths are kept deliberately: a student
// matching by program/semester is notified even without an enrollment row.
func (s *notificationService) resolveCourseAudience(ctx context.Context, course models.Course) ([]models.Student, error) {
	seen := map[uint]struct{}{}
	audience := []models.Student{}

	enrollments, err := s.enrollments.ListActiveByCourse(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	enrolledIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		enrolledIDs = append(enrolledIDs, enrollment.StudentID)
	}

	if len(enrolledIDs) > 0 {
		enrolled, err := s.students.ListByIDs(ctx, enrolledIDs)
		if err != nil {
			return nil, err
		}
		for _, student := range enrolled {
			if _, ok := seen[student.ID]; ok {
				continue
			}
			seen[student.ID] = struct{}{}
			audience = append(audience, student)
		}
	}

	if course.ProgramID != nil && course.SemesterID != nil {
		matched, err := s.students.ListByProgramSemester(ctx, *course.ProgramID, *course.SemesterID)
		if err != nil {
			return nil, err
		}
		for _, student := range matched {
			if _, ok := seen[student.ID]; ok {
				continue
			}
			seen[student.ID] = struct{}{}
			audience = append(audience, student)
		}
	}

	return audience, nil
}

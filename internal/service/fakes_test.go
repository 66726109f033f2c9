package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

type memoryStudentRepo struct {
	students map[uint]models.Student
	nextID   uint
}

func newMemoryStudentRepo() *memoryStudentRepo {
	return &memoryStudentRepo{students: make(map[uint]models.Student), nextID: 1}
}

func (m *memoryStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	results := make([]models.Student, 0, len(m.students))
	for _, id := range sortedKeys(m.students) {
		results = append(results, m.students[id])
	}
	return results, nil
}

func (m *memoryStudentRepo) GetByID(ctx context.Context, id uint) (models.Student, error) {
	student, ok := m.students[id]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (m *memoryStudentRepo) GetByEmail(ctx context.Context, email string) (models.Student, error) {
	for _, id := range sortedKeys(m.students) {
		if m.students[id].Email == email {
			return m.students[id], nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (m *memoryStudentRepo) ListByProgramSemester(ctx context.Context, programID, semesterID uint) ([]models.Student, error) {
	results := []models.Student{}
	for _, id := range sortedKeys(m.students) {
		student := m.students[id]
		if student.ProgramID != nil && *student.ProgramID == programID &&
			student.SemesterID != nil && *student.SemesterID == semesterID {
			results = append(results, student)
		}
	}
	return results, nil
}

func (m *memoryStudentRepo) ListByIDs(ctx context.Context, ids []uint) ([]models.Student, error) {
	results := []models.Student{}
	for _, id := range ids {
		if student, ok := m.students[id]; ok {
			results = append(results, student)
		}
	}
	return results, nil
}

func (m *memoryStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = m.nextID
	student.CreatedAt = time.Now()
	m.students[m.nextID] = *student
	m.nextID++
	return nil
}

func (m *memoryStudentRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.students[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.students, id)
	return nil
}

type memoryCourseRepo struct {
	courses map[uint]models.Course
	nextID  uint
}

func newMemoryCourseRepo() *memoryCourseRepo {
	return &memoryCourseRepo{courses: make(map[uint]models.Course), nextID: 1}
}

func (m *memoryCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	results := make([]models.Course, 0, len(m.courses))
	for _, id := range sortedKeys(m.courses) {
		results = append(results, m.courses[id])
	}
	return results, nil
}

func (m *memoryCourseRepo) GetByID(ctx context.Context, id uint) (models.Course, error) {
	course, ok := m.courses[id]
	if !ok {
		return models.Course{}, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (m *memoryCourseRepo) GetByCode(ctx context.Context, code string) (models.Course, error) {
	for _, id := range sortedKeys(m.courses) {
		if m.courses[id].CourseCode == code {
			return m.courses[id], nil
		}
	}
	return models.Course{}, gorm.ErrRecordNotFound
}

func (m *memoryCourseRepo) ListByProgramSemester(ctx context.Context, programID, semesterID uint) ([]models.Course, error) {
	results := []models.Course{}
	for _, id := range sortedKeys(m.courses) {
		course := m.courses[id]
		if course.ProgramID != nil && *course.ProgramID == programID &&
			course.SemesterID != nil && *course.SemesterID == semesterID {
			results = append(results, course)
		}
	}
	return results, nil
}

func (m *memoryCourseRepo) Create(ctx context.Context, course *models.Course) error {
	course.ID = m.nextID
	course.CreatedAt = time.Now()
	m.courses[m.nextID] = *course
	m.nextID++
	return nil
}

func (m *memoryCourseRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.courses, id)
	return nil
}

type memoryAssignmentRepo struct {
	assignments map[uint]models.Assignment
	nextID      uint
}

func newMemoryAssignmentRepo() *memoryAssignmentRepo {
	return &memoryAssignmentRepo{assignments: make(map[uint]models.Assignment), nextID: 1}
}

func (m *memoryAssignmentRepo) List(ctx context.Context, filter repository.AssignmentFilter) ([]models.Assignment, error) {
	results := []models.Assignment{}
	for _, id := range sortedKeys(m.assignments) {
		assignment := m.assignments[id]
		if filter.CourseID != nil && assignment.CourseID != *filter.CourseID {
			continue
		}
		if filter.StaffID != nil && (assignment.StaffID == nil || *assignment.StaffID != *filter.StaffID) {
			continue
		}
		if filter.StudyMaterialID != nil && (assignment.StudyMaterialID == nil || *assignment.StudyMaterialID != *filter.StudyMaterialID) {
			continue
		}
		if len(filter.CourseIDs) > 0 {
			matched := false
			for _, courseID := range filter.CourseIDs {
				if assignment.CourseID == courseID {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		results = append(results, assignment)
	}
	return results, nil
}

func (m *memoryAssignmentRepo) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (m *memoryAssignmentRepo) ListByCourse(ctx context.Context, courseID uint) ([]models.Assignment, error) {
	courseFilter := courseID
	return m.List(ctx, repository.AssignmentFilter{CourseID: &courseFilter})
}

func (m *memoryAssignmentRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]models.Assignment, error) {
	results := []models.Assignment{}
	for _, id := range sortedKeys(m.assignments) {
		assignment := m.assignments[id]
		if assignment.DueDate == nil {
			continue
		}
		if assignment.DueDate.After(from) && !assignment.DueDate.After(to) {
			results = append(results, assignment)
		}
	}
	return results, nil
}

func (m *memoryAssignmentRepo) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	assignments, _ := m.ListByCourse(ctx, courseID)
	return int64(len(assignments)), nil
}

func (m *memoryAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	assignment.ID = m.nextID
	assignment.CreatedAt = time.Now()
	m.assignments[m.nextID] = *assignment
	m.nextID++
	return nil
}

func (m *memoryAssignmentRepo) Update(ctx context.Context, assignment *models.Assignment) error {
	if _, ok := m.assignments[assignment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *memoryAssignmentRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}

// memorySubmissionRepo keeps evaluations alongside submissions and attaches
// them the way the GORM preloads do.
type memorySubmissionRepo struct {
	submissions map[uint]models.Submission
	evaluations map[uint]models.Evaluation
	assignments *memoryAssignmentRepo
	nextID      uint
	nextEvalID  uint
}

func newMemorySubmissionRepo(assignments *memoryAssignmentRepo) *memorySubmissionRepo {
	return &memorySubmissionRepo{
		submissions: make(map[uint]models.Submission),
		evaluations: make(map[uint]models.Evaluation),
		assignments: assignments,
		nextID:      1,
		nextEvalID:  1,
	}
}

func (m *memorySubmissionRepo) attach(submission models.Submission) models.Submission {
	if evaluation, ok := m.evaluations[submission.ID]; ok {
		copied := evaluation
		submission.Evaluation = &copied
	}
	if m.assignments != nil {
		if assignment, ok := m.assignments.assignments[submission.AssignmentID]; ok {
			submission.Assignment = assignment
		}
	}
	return submission
}

func (m *memorySubmissionRepo) List(ctx context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	results := []models.Submission{}
	for _, id := range sortedKeys(m.submissions) {
		submission := m.submissions[id]
		if filter.AssignmentID != nil && submission.AssignmentID != *filter.AssignmentID {
			continue
		}
		if filter.StudentID != nil && submission.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && submission.Status != *filter.Status {
			continue
		}
		results = append(results, m.attach(submission))
	}
	return results, nil
}

func (m *memorySubmissionRepo) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	submission, ok := m.submissions[id]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return m.attach(submission), nil
}

func (m *memorySubmissionRepo) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.Submission, error) {
	for _, id := range sortedKeys(m.submissions) {
		submission := m.submissions[id]
		if submission.AssignmentID == assignmentID && submission.StudentID == studentID {
			return m.attach(submission), nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (m *memorySubmissionRepo) ListByStudentAndAssignments(ctx context.Context, studentID uint, assignmentIDs []uint) ([]models.Submission, error) {
	wanted := make(map[uint]struct{}, len(assignmentIDs))
	for _, id := range assignmentIDs {
		wanted[id] = struct{}{}
	}
	results := []models.Submission{}
	for _, id := range sortedKeys(m.submissions) {
		submission := m.submissions[id]
		if submission.StudentID != studentID {
			continue
		}
		if _, ok := wanted[submission.AssignmentID]; !ok {
			continue
		}
		results = append(results, m.attach(submission))
	}
	return results, nil
}

func (m *memorySubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	for _, existing := range m.submissions {
		if existing.AssignmentID == submission.AssignmentID && existing.StudentID == submission.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	submission.ID = m.nextID
	submission.SubmittedAt = time.Now()
	m.submissions[m.nextID] = *submission
	m.nextID++
	return nil
}

func (m *memorySubmissionRepo) Update(ctx context.Context, submission *models.Submission) error {
	if _, ok := m.submissions[submission.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *submission
	stored.Evaluation = nil
	stored.Assignment = models.Assignment{}
	m.submissions[submission.ID] = stored
	return nil
}

func (m *memorySubmissionRepo) SaveEvaluation(ctx context.Context, evaluation *models.Evaluation) error {
	if evaluation.ID == 0 {
		evaluation.ID = m.nextEvalID
		m.nextEvalID++
	}
	m.evaluations[evaluation.SubmissionID] = *evaluation
	return nil
}

func (m *memorySubmissionRepo) GetEvaluation(ctx context.Context, submissionID uint) (models.Evaluation, error) {
	evaluation, ok := m.evaluations[submissionID]
	if !ok {
		return models.Evaluation{}, gorm.ErrRecordNotFound
	}
	return evaluation, nil
}

func (m *memorySubmissionRepo) GetEvaluationByID(ctx context.Context, id uint) (models.Evaluation, error) {
	for _, evaluation := range m.evaluations {
		if evaluation.ID == id {
			return evaluation, nil
		}
	}
	return models.Evaluation{}, gorm.ErrRecordNotFound
}

type memoryMCQRepo struct {
	questions map[uint]models.MCQ
	nextID    uint
}

func newMemoryMCQRepo() *memoryMCQRepo {
	return &memoryMCQRepo{questions: make(map[uint]models.MCQ), nextID: 1}
}

func (m *memoryMCQRepo) List(ctx context.Context, filter repository.MCQFilter) ([]models.MCQ, error) {
	results := []models.MCQ{}
	for _, id := range sortedKeys(m.questions) {
		question := m.questions[id]
		if filter.CourseID != nil && question.CourseID != *filter.CourseID {
			continue
		}
		if filter.StaffID != nil && (question.StaffID == nil || *question.StaffID != *filter.StaffID) {
			continue
		}
		results = append(results, question)
	}
	return results, nil
}

func (m *memoryMCQRepo) GetByID(ctx context.Context, id uint) (models.MCQ, error) {
	question, ok := m.questions[id]
	if !ok {
		return models.MCQ{}, gorm.ErrRecordNotFound
	}
	return question, nil
}

func (m *memoryMCQRepo) ListByCourse(ctx context.Context, courseID uint) ([]models.MCQ, error) {
	courseFilter := courseID
	return m.List(ctx, repository.MCQFilter{CourseID: &courseFilter})
}

func (m *memoryMCQRepo) Create(ctx context.Context, mcq *models.MCQ) error {
	mcq.ID = m.nextID
	mcq.CreatedAt = time.Now()
	m.questions[m.nextID] = *mcq
	m.nextID++
	return nil
}

func (m *memoryMCQRepo) Update(ctx context.Context, mcq *models.MCQ) error {
	if _, ok := m.questions[mcq.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.questions[mcq.ID] = *mcq
	return nil
}

func (m *memoryMCQRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.questions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.questions, id)
	return nil
}

type memoryAttemptRepo struct {
	attempts map[uint]models.MCQAttempt
	mcqs     *memoryMCQRepo
	nextID   uint
}

func newMemoryAttemptRepo(mcqs *memoryMCQRepo) *memoryAttemptRepo {
	return &memoryAttemptRepo{attempts: make(map[uint]models.MCQAttempt), mcqs: mcqs, nextID: 1}
}

func (m *memoryAttemptRepo) attach(attempt models.MCQAttempt) models.MCQAttempt {
	if m.mcqs != nil {
		if question, ok := m.mcqs.questions[attempt.MCQID]; ok {
			attempt.MCQ = question
		}
	}
	return attempt
}

func (m *memoryAttemptRepo) GetByStudentAndMCQ(ctx context.Context, studentID, mcqID uint) (models.MCQAttempt, error) {
	for _, id := range sortedKeys(m.attempts) {
		attempt := m.attempts[id]
		if attempt.StudentID == studentID && attempt.MCQID == mcqID {
			return m.attach(attempt), nil
		}
	}
	return models.MCQAttempt{}, gorm.ErrRecordNotFound
}

func (m *memoryAttemptRepo) ListByStudent(ctx context.Context, studentID uint) ([]models.MCQAttempt, error) {
	results := []models.MCQAttempt{}
	for _, id := range sortedKeys(m.attempts) {
		attempt := m.attempts[id]
		if attempt.StudentID == studentID {
			results = append(results, m.attach(attempt))
		}
	}
	return results, nil
}

func (m *memoryAttemptRepo) ListByStudentAndMCQs(ctx context.Context, studentID uint, mcqIDs []uint) ([]models.MCQAttempt, error) {
	wanted := make(map[uint]struct{}, len(mcqIDs))
	for _, id := range mcqIDs {
		wanted[id] = struct{}{}
	}
	results := []models.MCQAttempt{}
	for _, id := range sortedKeys(m.attempts) {
		attempt := m.attempts[id]
		if attempt.StudentID != studentID {
			continue
		}
		if _, ok := wanted[attempt.MCQID]; !ok {
			continue
		}
		results = append(results, m.attach(attempt))
	}
	return results, nil
}

func (m *memoryAttemptRepo) Create(ctx context.Context, attempt *models.MCQAttempt) error {
	for _, existing := range m.attempts {
		if existing.StudentID == attempt.StudentID && existing.MCQID == attempt.MCQID {
			return gorm.ErrDuplicatedKey
		}
	}
	attempt.ID = m.nextID
	attempt.AttemptedAt = time.Now()
	m.attempts[m.nextID] = *attempt
	m.nextID++
	return nil
}

type memoryEnrollmentRepo struct {
	enrollments map[uint]models.StudentCourse
	courses     *memoryCourseRepo
	nextID      uint
}

func newMemoryEnrollmentRepo(courses *memoryCourseRepo) *memoryEnrollmentRepo {
	return &memoryEnrollmentRepo{enrollments: make(map[uint]models.StudentCourse), courses: courses, nextID: 1}
}

func (m *memoryEnrollmentRepo) attach(enrollment models.StudentCourse) models.StudentCourse {
	if m.courses != nil {
		if course, ok := m.courses.courses[enrollment.CourseID]; ok {
			enrollment.Course = course
		}
	}
	return enrollment
}

func (m *memoryEnrollmentRepo) GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (models.StudentCourse, error) {
	for _, id := range sortedKeys(m.enrollments) {
		enrollment := m.enrollments[id]
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID {
			return enrollment, nil
		}
	}
	return models.StudentCourse{}, gorm.ErrRecordNotFound
}

func (m *memoryEnrollmentRepo) ListActiveByStudent(ctx context.Context, studentID uint) ([]models.StudentCourse, error) {
	results := []models.StudentCourse{}
	for _, id := range sortedKeys(m.enrollments) {
		enrollment := m.enrollments[id]
		if enrollment.StudentID == studentID && enrollment.Status == models.EnrollmentStatusActive {
			results = append(results, m.attach(enrollment))
		}
	}
	return results, nil
}

func (m *memoryEnrollmentRepo) ListActiveByCourse(ctx context.Context, courseID uint) ([]models.StudentCourse, error) {
	results := []models.StudentCourse{}
	for _, id := range sortedKeys(m.enrollments) {
		enrollment := m.enrollments[id]
		if enrollment.CourseID == courseID && enrollment.Status == models.EnrollmentStatusActive {
			results = append(results, enrollment)
		}
	}
	return results, nil
}

func (m *memoryEnrollmentRepo) Create(ctx context.Context, enrollment *models.StudentCourse) error {
	for _, existing := range m.enrollments {
		if existing.StudentID == enrollment.StudentID && existing.CourseID == enrollment.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	enrollment.ID = m.nextID
	enrollment.EnrolledAt = time.Now()
	m.enrollments[m.nextID] = *enrollment
	m.nextID++
	return nil
}

func (m *memoryEnrollmentRepo) Update(ctx context.Context, enrollment *models.StudentCourse) error {
	if _, ok := m.enrollments[enrollment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *enrollment
	stored.Course = models.Course{}
	m.enrollments[enrollment.ID] = stored
	return nil
}

type memoryNotificationRepo struct {
	mu            sync.Mutex
	notifications map[uint]models.Notification
	nextID        uint
}

func newMemoryNotificationRepo() *memoryNotificationRepo {
	return &memoryNotificationRepo{notifications: make(map[uint]models.Notification), nextID: 1}
}

func (m *memoryNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification.ID = m.nextID
	notification.CreatedAt = time.Now()
	m.notifications[m.nextID] = *notification
	m.nextID++
	return nil
}

func (m *memoryNotificationRepo) ListByUser(ctx context.Context, userType string, userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	results := []models.Notification{}
	for _, id := range sortedKeys(m.notifications) {
		notification := m.notifications[id]
		if notification.UserType != userType || notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.IsRead {
			continue
		}
		results = append(results, notification)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

func (m *memoryNotificationRepo) UnreadCount(ctx context.Context, userType string, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, notification := range m.notifications {
		if notification.UserType == userType && notification.UserID == userID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *memoryNotificationRepo) MarkRead(ctx context.Context, id uint) (models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification, ok := m.notifications[id]
	if !ok {
		return models.Notification{}, gorm.ErrRecordNotFound
	}
	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	m.notifications[id] = notification
	return notification, nil
}

func (m *memoryNotificationRepo) MarkAllRead(ctx context.Context, userType string, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, notification := range m.notifications {
		if notification.UserType == userType && notification.UserID == userID && !notification.IsRead {
			notification.IsRead = true
			notification.ReadAt = &now
			m.notifications[id] = notification
		}
	}
	return nil
}

func (m *memoryNotificationRepo) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notifications[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.notifications, id)
	return nil
}

func (m *memoryNotificationRepo) SetEmailSent(ctx context.Context, id uint, sent bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification, ok := m.notifications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	notification.EmailSent = sent
	m.notifications[id] = notification
	return nil
}

func (m *memoryNotificationRepo) HasReminderSince(ctx context.Context, userID, assignmentID uint, since time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, notification := range m.notifications {
		if notification.UserType != models.RoleStudent || notification.UserID != userID {
			continue
		}
		if notification.Type != models.NotificationTypeDeadlineReminder {
			continue
		}
		if notification.ReferenceID == nil || *notification.ReferenceID != assignmentID {
			continue
		}
		if !notification.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryNotificationRepo) all() []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	results := make([]models.Notification, 0, len(m.notifications))
	for _, id := range sortedKeys(m.notifications) {
		results = append(results, m.notifications[id])
	}
	return results
}

type memoryStaffRepo struct {
	staff  map[uint]models.Staff
	nextID uint
}

func newMemoryStaffRepo() *memoryStaffRepo {
	return &memoryStaffRepo{staff: make(map[uint]models.Staff), nextID: 1}
}

func (m *memoryStaffRepo) List(ctx context.Context) ([]models.Staff, error) {
	results := make([]models.Staff, 0, len(m.staff))
	for _, id := range sortedKeys(m.staff) {
		results = append(results, m.staff[id])
	}
	return results, nil
}

func (m *memoryStaffRepo) GetByID(ctx context.Context, id uint) (models.Staff, error) {
	staffMember, ok := m.staff[id]
	if !ok {
		return models.Staff{}, gorm.ErrRecordNotFound
	}
	return staffMember, nil
}

func (m *memoryStaffRepo) GetByEmail(ctx context.Context, email string) (models.Staff, error) {
	for _, id := range sortedKeys(m.staff) {
		if m.staff[id].Email == email {
			return m.staff[id], nil
		}
	}
	return models.Staff{}, gorm.ErrRecordNotFound
}

func (m *memoryStaffRepo) Create(ctx context.Context, staff *models.Staff) error {
	staff.ID = m.nextID
	staff.CreatedAt = time.Now()
	m.staff[m.nextID] = *staff
	m.nextID++
	return nil
}

func (m *memoryStaffRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.staff[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.staff, id)
	return nil
}

type memoryAdminRepo struct {
	admins map[uint]models.Admin
	nextID uint
}

func newMemoryAdminRepo() *memoryAdminRepo {
	return &memoryAdminRepo{admins: make(map[uint]models.Admin), nextID: 1}
}

func (m *memoryAdminRepo) GetByID(ctx context.Context, id uint) (models.Admin, error) {
	admin, ok := m.admins[id]
	if !ok {
		return models.Admin{}, gorm.ErrRecordNotFound
	}
	return admin, nil
}

func (m *memoryAdminRepo) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	for _, id := range sortedKeys(m.admins) {
		if m.admins[id].Email == email {
			return m.admins[id], nil
		}
	}
	return models.Admin{}, gorm.ErrRecordNotFound
}

func (m *memoryAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = m.nextID
	admin.CreatedAt = time.Now()
	m.admins[m.nextID] = *admin
	m.nextID++
	return nil
}

type memoryStaffCourseRepo struct {
	assignments map[uint]models.StaffCourse
	nextID      uint
}

func newMemoryStaffCourseRepo() *memoryStaffCourseRepo {
	return &memoryStaffCourseRepo{assignments: make(map[uint]models.StaffCourse), nextID: 1}
}

func (m *memoryStaffCourseRepo) List(ctx context.Context) ([]models.StaffCourse, error) {
	results := make([]models.StaffCourse, 0, len(m.assignments))
	for _, id := range sortedKeys(m.assignments) {
		results = append(results, m.assignments[id])
	}
	return results, nil
}

func (m *memoryStaffCourseRepo) GetByID(ctx context.Context, id uint) (models.StaffCourse, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return models.StaffCourse{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (m *memoryStaffCourseRepo) FirstByCourse(ctx context.Context, courseID uint) (models.StaffCourse, error) {
	for _, id := range sortedKeys(m.assignments) {
		if m.assignments[id].CourseID == courseID {
			return m.assignments[id], nil
		}
	}
	return models.StaffCourse{}, gorm.ErrRecordNotFound
}

func (m *memoryStaffCourseRepo) Exists(ctx context.Context, staffID, courseID, academicYearID uint) (bool, error) {
	for _, assignment := range m.assignments {
		if assignment.StaffID == staffID && assignment.CourseID == courseID && assignment.AcademicYearID == academicYearID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStaffCourseRepo) Create(ctx context.Context, assignment *models.StaffCourse) error {
	assignment.ID = m.nextID
	assignment.CreatedAt = time.Now()
	m.assignments[m.nextID] = *assignment
	m.nextID++
	return nil
}

func (m *memoryStaffCourseRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}

type recordedEmail struct {
	to      string
	subject string
}

type stubMailer struct {
	mu      sync.Mutex
	enabled bool
	sent    []recordedEmail
}

func (s *stubMailer) Enabled() bool { return s.enabled }

func (s *stubMailer) Send(to, subject, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, recordedEmail{to: to, subject: subject})
	return nil
}

func (s *stubMailer) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

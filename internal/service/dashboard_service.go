package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

const upcomingAssignmentLimit = 5

// DashboardService aggregates the student dashboard view, cached briefly in
// Redis. A cache miss or Redis outage falls back to a live computation.
type DashboardService interface {
	StudentDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error)
}

type dashboardService struct {
	students      repository.StudentRepository
	enrollments   repository.EnrollmentRepository
	assignments   repository.AssignmentRepository
	submissions   repository.SubmissionRepository
	notifications repository.NotificationRepository
	cache         *redis.Client
	cacheTTL      time.Duration
	logger        zerolog.Logger
	now           func() time.Time
}

// NewDashboardService constructs a DashboardService instance. The cache
// client may be nil, in which case every call computes from the database.
func NewDashboardService(
	studentRepo repository.StudentRepository,
	enrollmentRepo repository.EnrollmentRepository,
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	notificationRepo repository.NotificationRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		students:      studentRepo,
		enrollments:   enrollmentRepo,
		assignments:   assignmentRepo,
		submissions:   submissionRepo,
		notifications: notificationRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
		logger:        logger.With().Str("component", "dashboard_service").Logger(),
		now:           time.Now,
	}
}

func dashboardCacheKey(studentID uint) string {
	return fmt.Sprintf("dashboard:student:%d", studentID)
}

func (s *dashboardService) StudentDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDashboardResponse{}, ErrStudentNotFound
		}
		return dto.StudentDashboardResponse{}, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, dashboardCacheKey(studentID)).Result()
		if err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("dashboard cache read failed")
		}
	}

	response, err := s.build(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey(studentID), encoded, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}

	return response, nil
}

func (s *dashboardService) build(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	enrollments, err := s.enrollments.ListActiveByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	response := dto.StudentDashboardResponse{
		StudentID:           studentID,
		UpcomingAssignments: []dto.UpcomingAssignment{},
		GeneratedAt:         s.now(),
	}
	response.Stats.EnrolledCourses = len(enrollments)

	unread, err := s.notifications.UnreadCount(ctx, models.RoleStudent, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}
	response.Stats.UnreadNotifications = unread

	if len(enrollments) == 0 {
		return response, nil
	}

	courseIDs := make([]uint, 0, len(enrollments))
	courseNames := make(map[uint]string, len(enrollments))
	for _, enrollment := range enrollments {
		courseIDs = append(courseIDs, enrollment.CourseID)
		courseNames[enrollment.CourseID] = enrollment.Course.CourseName
	}

	assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{CourseIDs: courseIDs})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	assignmentIDs := make([]uint, 0, len(assignments))
	for _, assignment := range assignments {
		assignmentIDs = append(assignmentIDs, assignment.ID)
	}

	submittedBy := map[uint]struct{}{}
	if len(assignmentIDs) > 0 {
		submissions, err := s.submissions.ListByStudentAndAssignments(ctx, studentID, assignmentIDs)
		if err != nil {
			return dto.StudentDashboardResponse{}, err
		}
		for _, submission := range submissions {
			submittedBy[submission.AssignmentID] = struct{}{}
		}
	}

	now := s.now()
	upcoming := []dto.UpcomingAssignment{}
	for _, assignment := range assignments {
		_, submitted := submittedBy[assignment.ID]
		if submitted {
			response.Stats.SubmittedAssignments++
		} else {
			response.Stats.PendingAssignments++
		}

		if assignment.DueDate == nil || !assignment.DueDate.After(now) {
			continue
		}
		upcoming = append(upcoming, dto.UpcomingAssignment{
			AssignmentID: assignment.ID,
			Title:        assignment.Title,
			CourseID:     assignment.CourseID,
			CourseName:   courseNames[assignment.CourseID],
			DueDate:      *assignment.DueDate,
			Submitted:    submitted,
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})
	if len(upcoming) > upcomingAssignmentLimit {
		upcoming = upcoming[:upcomingAssignmentLimit]
	}
	response.UpcomingAssignments = upcoming

	return response, nil
}

package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/handler"
	"github.com/lls-edu/lls-api/internal/service"
)

type stubResultService struct {
	course  dto.CourseResultResponse
	summary dto.StudentResultsResponse
	err     error

	lastStudentID uint
	lastCourseID  uint
}

func (s *stubResultService) ComputeCourseResult(_ context.Context, studentID, courseID uint) (dto.CourseResultResponse, error) {
	s.lastStudentID = studentID
	s.lastCourseID = courseID
	if s.err != nil {
		return dto.CourseResultResponse{}, s.err
	}
	return s.course, nil
}

func (s *stubResultService) ComputeAllCourseResults(_ context.Context, studentID uint) (dto.StudentResultsResponse, error) {
	s.lastStudentID = studentID
	if s.err != nil {
		return dto.StudentResultsResponse{}, s.err
	}
	return s.summary, nil
}

func newResultApp(svc service.ResultService) *fiber.App {
	app := fiber.New()
	handler.NewResultHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/students"))
	return app
}

func TestResultHandlerBreakdown(t *testing.T) {
	percentage := 33.3
	svc := &stubResultService{
		course: dto.CourseResultResponse{
			Course: dto.ResultCourseInfo{ID: 4, CourseCode: "CS101", CourseName: "Intro"},
			Final:  dto.FinalBlock{Released: true, Reason: "all_assignments_submitted", Percentage: &percentage},
		},
	}
	app := newResultApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/7/courses/4/result-breakdown", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                     `json:"success"`
		Message string                   `json:"message"`
		Data    dto.CourseResultResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Equal(t, uint(7), svc.lastStudentID)
	require.Equal(t, uint(4), svc.lastCourseID)
	require.True(t, payload.Data.Final.Released)
	require.NotNil(t, payload.Data.Final.Percentage)
	require.Equal(t, percentage, *payload.Data.Final.Percentage)
}

func TestResultHandlerSummary(t *testing.T) {
	svc := &stubResultService{
		summary: dto.StudentResultsResponse{StudentID: 7, Results: []dto.CourseResultResponse{}},
	}
	app := newResultApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/7/course-results", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                       `json:"success"`
		Data    dto.StudentResultsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Equal(t, uint(7), payload.Data.StudentID)
	require.NotNil(t, payload.Data.Results)
}

func TestResultHandlerUnknownStudent(t *testing.T) {
	svc := &stubResultService{err: service.ErrStudentNotFound}
	app := newResultApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/99/course-results", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.False(t, payload.Success)
	require.Equal(t, "student not found", payload.Message)
}

func TestResultHandlerBadID(t *testing.T) {
	svc := &stubResultService{}
	app := newResultApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/abc/course-results", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/handler"
	"github.com/lls-edu/lls-api/internal/service"
)

type stubAuthService struct {
	response    dto.LoginResponse
	err         error
	lastPayload dto.LoginRequest
}

func (s *stubAuthService) Login(_ context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	s.lastPayload = payload
	if s.err != nil {
		return dto.LoginResponse{}, s.err
	}
	return s.response, nil
}

func newAuthApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/auth"))
	return app
}

func postLogin(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &stubAuthService{
		response: dto.LoginResponse{
			Token: "signed-token",
			User:  dto.AuthUserInfo{ID: 12, Name: "Priya", Email: "priya@lls.edu", Role: "student"},
		},
	}
	app := newAuthApp(svc)

	resp := postLogin(t, app, `{"email":"priya@lls.edu","password":"secret123","role":"student"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    dto.LoginResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Equal(t, "login successful", payload.Message)
	require.Equal(t, "signed-token", payload.Data.Token)
	require.Equal(t, uint(12), payload.Data.User.ID)
	require.Equal(t, "priya@lls.edu", svc.lastPayload.Email)
}

func TestAuthHandlerInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: service.ErrInvalidCredentials}
	app := newAuthApp(svc)

	resp := postLogin(t, app, `{"email":"priya@lls.edu","password":"wrongpass","role":"student"}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.False(t, payload.Success)
	require.Equal(t, "invalid credentials", payload.Message)
}

func TestAuthHandlerMalformedBody(t *testing.T) {
	svc := &stubAuthService{}
	app := newAuthApp(svc)

	resp := postLogin(t, app, `{"email":`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

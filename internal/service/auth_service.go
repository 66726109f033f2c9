package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

// ErrInvalidCredentials indicates a failed login attempt. The same error is
// returned for unknown accounts and wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates accounts and issues signed tokens.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	admins    repository.AdminRepository
	staff     repository.StaffRepository
	students  repository.StudentRepository
	validator *validator.Validate
	secret    string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(
	adminRepo repository.AdminRepository,
	staffRepo repository.StaffRepository,
	studentRepo repository.StudentRepository,
	validate *validator.Validate,
	secret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		admins:    adminRepo,
		staff:     staffRepo,
		students:  studentRepo,
		validator: validate,
		secret:    secret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	var (
		user dto.AuthUserInfo
		hash string
	)

	switch payload.Role {
	case models.RoleAdmin:
		admin, err := s.admins.GetByEmail(ctx, payload.Email)
		if err != nil {
			return dto.LoginResponse{}, loginLookupError(err)
		}
		user = dto.AuthUserInfo{ID: admin.ID, Name: admin.FullName, Email: admin.Email, Role: models.RoleAdmin}
		hash = admin.PasswordHash
	case models.RoleStaff:
		staffMember, err := s.staff.GetByEmail(ctx, payload.Email)
		if err != nil {
			return dto.LoginResponse{}, loginLookupError(err)
		}
		user = dto.AuthUserInfo{ID: staffMember.ID, Name: staffMember.FullName, Email: staffMember.Email, Role: models.RoleStaff}
		hash = staffMember.PasswordHash
	case models.RoleStudent:
		student, err := s.students.GetByEmail(ctx, payload.Email)
		if err != nil {
			return dto.LoginResponse{}, loginLookupError(err)
		}
		user = dto.AuthUserInfo{ID: student.ID, Name: student.FullName, Email: student.Email, Role: models.RoleStudent}
		hash = student.PasswordHash
	default:
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(payload.Password)); err != nil {
		s.logger.Info().Str("email", payload.Email).Str("role", payload.Role).Msg("rejected login attempt")
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{Token: token, User: user}, nil
}

func (s *authService) signToken(user dto.AuthUserInfo) (string, error) {
	issued := s.now()
	claims := jwt.MapClaims{
		"sub":  float64(user.ID),
		"role": user.Role,
		"iat":  issued.Unix(),
		"exp":  issued.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

func loginLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCredentials
	}
	return err
}

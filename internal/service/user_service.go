package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/repository"
)

// ErrUserNotFound indicates the requested account does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrStudentIDTaken indicates the student id is already registered.
var ErrStudentIDTaken = errors.New("student id already exists")

// UserService manages account records.
type UserService interface {
	Save(ctx context.Context, payload dto.SaveUserRequest) (models.User, error)
	Get(ctx context.Context, uid string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	RegisterStudent(ctx context.Context, payload dto.RegisterStudentRequest) (models.User, error)
	RegisterTeacher(ctx context.Context, payload dto.RegisterTeacherRequest) (models.User, error)
	Delete(ctx context.Context, uid string) (dto.DeletedUserResponse, error)
}

type userService struct {
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewUserService constructs a UserService instance.
func NewUserService(users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
		now:       time.Now,
	}
}

func (s *userService) Save(ctx context.Context, payload dto.SaveUserRequest) (models.User, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.User{}, err
	}

	user := models.User{
		UID:       payload.UID,
		Email:     payload.Email,
		Role:      payload.Role,
		Status:    models.UserStatusActive,
		CreatedAt: s.now(),
	}

	if err := s.users.Save(ctx, &user); err != nil {
		return models.User{}, err
	}

	s.logger.Info().Str("uid", user.UID).Str("role", user.Role).Msg("user saved")

	return user, nil
}

func (s *userService) Get(ctx context.Context, uid string) (models.User, error) {
	user, err := s.users.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *userService) RegisterStudent(ctx context.Context, payload dto.RegisterStudentRequest) (models.User, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.User{}, err
	}

	studentID := strings.TrimSpace(payload.StudentID)
	taken, err := s.users.ExistsByStudentID(ctx, studentID)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrStudentIDTaken
	}

	role := payload.Role
	if role == "" {
		role = models.RoleStudent
	}

	user := models.User{
		UID:              payload.UID,
		Email:            payload.Email,
		Role:             role,
		StudentName:      strings.TrimSpace(payload.StudentName),
		StudentID:        studentID,
		AcademicYear:     payload.AcademicYear,
		AcademicSemester: payload.AcademicSemester,
		ProfilePicURL:    profilePicURL(payload.StudentName),
		Status:           models.UserStatusActive,
		CreatedAt:        s.now(),
	}

	if err := s.users.Save(ctx, &user); err != nil {
		return models.User{}, err
	}

	s.logger.Info().Str("uid", user.UID).Str("student_id", user.StudentID).Msg("student registered")

	return user, nil
}

func (s *userService) RegisterTeacher(ctx context.Context, payload dto.RegisterTeacherRequest) (models.User, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.User{}, err
	}

	role := payload.Role
	if role == "" {
		role = models.RoleTeacher
	}

	user := models.User{
		UID:           payload.UID,
		Email:         payload.Email,
		Role:          role,
		StudentName:   strings.TrimSpace(payload.StudentName),
		ProfilePicURL: profilePicURL(payload.StudentName),
		Status:        models.UserStatusActive,
		CreatedAt:     s.now(),
	}

	if err := s.users.Save(ctx, &user); err != nil {
		return models.User{}, err
	}

	s.logger.Info().Str("uid", user.UID).Msg("teacher registered")

	return user, nil
}

func (s *userService) Delete(ctx context.Context, uid string) (dto.DeletedUserResponse, error) {
	user, err := s.users.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DeletedUserResponse{}, ErrUserNotFound
		}
		return dto.DeletedUserResponse{}, err
	}

	if err := s.users.Delete(ctx, uid); err != nil {
		return dto.DeletedUserResponse{}, err
	}

	s.logger.Info().Str("uid", uid).Msg("user deleted")

	return dto.DeletedUserResponse{
		UID:         user.UID,
		Email:       user.Email,
		Role:        user.Role,
		StudentName: user.StudentName,
	}, nil
}

// profilePicURL builds the generated avatar URL from the first and last
// name, stripping non-alphanumeric characters from the surname.
func profilePicURL(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	first := "User"
	last := ""
	if len(parts) > 0 {
		first = parts[0]
	}
	if len(parts) > 1 {
		last = parts[len(parts)-1]
	}

	cleaned := strings.Builder{}
	for _, r := range last {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			cleaned.WriteRune(r)
		}
	}

	return fmt.Sprintf("https://avatar.iran.liara.run/username?username=%s+%s", first, strings.ToUpper(cleaned.String()))
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/mapper"
	"github.com/stratacloud/careers-backend/internal/models"
	"github.com/stratacloud/careers-backend/internal/notify"
)

const notifyTimeout = 5 * time.Second

// roleRule mirrors the role tag on dto.CreateUserRequest.
const roleRule = "required,oneof=" + models.RoleConsultant + " " + models.RoleAdmin + " " + models.RoleStaffer

type UserService struct {
	store     database.Store
	publisher notify.Publisher
	now       func() time.Time
}

func NewUserService(store database.Store, publisher notify.Publisher) *UserService {
	return &UserService{store: store, publisher: publisher, now: time.Now}
}

func (s *UserService) Register(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	in := dto.CreateUserRequest{
		Email:     strings.TrimSpace(req.Email),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      strings.ToLower(strings.TrimSpace(req.Role)),
	}
	if err := validateStruct(&in); err != nil {
		return nil, err
	}

	userID := uuid.NewString()
	now := s.now().UTC().Format(time.RFC3339)
	user := models.NewUserRecord(userID, in.Email, in.FirstName, in.LastName, in.Role, now)

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.announce(ctx, user)
	return &dto.CreateUserResponse{UserID: userID}, nil
}

// announce publishes the account-created event. Failures are logged only.
func (s *UserService) announce(ctx context.Context, user *models.UserRecord) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	event := notify.NewEvent(notify.EventUserCreated, map[string]any{
		"userId":    user.UserID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"role":      user.Role,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish user created event", "user_id", user.UserID, "error", err)
	}
}

func (s *UserService) CheckEmail(ctx context.Context, email string) (*dto.CheckUserResponse, error) {
	email = strings.TrimSpace(email)
	if err := validateVar("email", email, "required,email"); err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return &dto.CheckUserResponse{Exists: false}, nil
		}
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	u := mapper.ToUser(user)
	return &dto.CheckUserResponse{Exists: true, User: &u}, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (*dto.User, error) {
	user, err := loadUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	u := mapper.ToUser(user)
	return &u, nil
}

func (s *UserService) ListByRole(ctx context.Context, role string) ([]dto.User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if err := validateVar("role", role, roleRule); err != nil {
		return nil, err
	}
	records, err := s.store.ListUsersByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]dto.User, 0, len(records))
	for _, r := range records {
		users = append(users, mapper.ToUser(r))
	}
	return users, nil
}

func loadUser(ctx context.Context, store database.Store, userID string) (*models.UserRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserNotFound
	}
	user, err := store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	return user, nil
}

package usecase

import (
	"context"
	"fmt"

	"campus-resources/internal/data/entity"
	"campus-resources/internal/data/repository"
	"campus-resources/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	GetByID(ctx context.Context, actor entity.Actor, userID string) (*response.UserResponse, error)
	ListAll(ctx context.Context, actor entity.Actor) ([]response.UserResponse, error)
	ListMaintenanceStaff(ctx context.Context, actor entity.Actor) ([]response.UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
	log  *zap.Logger
}

func NewUserService(repo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), ErrNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetByID(ctx context.Context, actor entity.Actor, userID string) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("user ID %s: %w", userID, ErrInvalidID)
	}

	// Users can only see their own profile unless they are admin.
	if actor.Role != entity.RoleAdmin && actor.ID != id {
		return nil, fmt.Errorf("user %s: %w", userID, ErrForbidden)
	}

	return s.GetProfile(ctx, id)
}

func (s *userService) ListAll(ctx context.Context, actor entity.Actor) ([]response.UserResponse, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, fmt.Errorf("list users: %w", ErrForbidden)
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	return usersToResponses(users), nil
}

func (s *userService) ListMaintenanceStaff(ctx context.Context, actor entity.Actor) ([]response.UserResponse, error) {
	if actor.Role != entity.RoleAdmin && actor.Role != entity.RoleMaintenance {
		return nil, fmt.Errorf("list maintenance staff: %w", ErrForbidden)
	}

	users, err := s.repo.FindByRole(ctx, entity.RoleMaintenance)
	if err != nil {
		s.log.Error("Failed to list maintenance staff", zap.Error(err))
		return nil, fmt.Errorf("list maintenance staff: %w", err)
	}

	return usersToResponses(users), nil
}

func usersToResponses(users []*entity.User) []response.UserResponse {
	responses := make([]response.UserResponse, len(users))
	for i, user := range users {
		responses[i] = response.UserToResponse(user)
	}
	return responses
}

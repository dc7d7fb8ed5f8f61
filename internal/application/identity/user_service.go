package identity

import (
	"context"

	"github.com/breezehub/backend/internal/domain/identity"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService handles administrative account management
type UserService struct {
	userRepo  identity.UserRepository
	publisher shared.EventPublisher
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

func (s *UserService) publishEvents(ctx context.Context, user *identity.User) {
	if s.publisher == nil {
		return
	}
	for _, event := range user.GetDomainEvents() {
		// Publish failures are logged by the publisher; the write is already committed.
		_ = s.publisher.Publish(ctx, event)
	}
	user.ClearDomainEvents()
}

// List returns all users matching the filter
func (s *UserService) List(ctx context.Context, filter shared.Filter) (*UserListResponse, error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(u))
	}

	return &UserListResponse{Users: responses, Total: int64(len(responses))}, nil
}

// ListRiders returns all rider accounts, used when assigning deliveries
func (s *UserService) ListRiders(ctx context.Context) (*UserListResponse, error) {
	riders, err := s.userRepo.FindByRole(ctx, identity.RoleRider)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(riders))
	for _, u := range riders {
		responses = append(responses, ToUserResponse(u))
	}

	return &UserListResponse{Users: responses, Total: int64(len(responses))}, nil
}

// ChangeRole reassigns a user's role
func (s *UserService) ChangeRole(ctx context.Context, userID uuid.UUID, req ChangeRoleRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.ChangeRole(identity.Role(req.Role)); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// CreateRider registers an approved rider account
func (s *UserService) CreateRider(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewApprovedUser(req.Name, req.Email, req.Password, identity.RoleRider)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

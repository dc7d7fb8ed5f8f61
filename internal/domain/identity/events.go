package identity

import (
	"github.com/breezehub/backend/internal/domain/shared"
)

// Event types for the identity domain
const (
	EventTypeUserCreated     = "identity.user.created"
	EventTypeUserRoleChanged = "identity.user.role_changed"
)

// UserCreatedEvent is emitted when a new account is registered
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, "User", user.ID),
		Email:           user.Email,
		Role:            user.Role,
	}
}

// UserRoleChangedEvent is emitted when an administrator reassigns a role
type UserRoleChangedEvent struct {
	shared.BaseDomainEvent
	OldRole Role `json:"old_role"`
	NewRole Role `json:"new_role"`
}

func NewUserRoleChangedEvent(user *User, oldRole, newRole Role) *UserRoleChangedEvent {
	return &UserRoleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRoleChanged, "User", user.ID),
		OldRole:         oldRole,
		NewRole:         newRole,
	}
}

package identity

import (
	"context"

	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	// FindByID loads a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail loads a user by email (lowercased)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*User, error)

	// FindByRole returns all users with the given role
	FindByRole(ctx context.Context, role Role) ([]*User, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save persists a user
	Save(ctx context.Context, user *User) error
}

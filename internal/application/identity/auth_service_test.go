package identity

import (
	"context"
	"testing"
	"time"

	"github.com/breezehub/backend/internal/domain/identity"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]*identity.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// stubTokenIssuer returns a fixed token
type stubTokenIssuer struct{}

func (stubTokenIssuer) GenerateToken(user *identity.User) (string, time.Time, error) {
	return "test-token", time.Now().Add(time.Hour), nil
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers an approved customer", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil)
		userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		service := NewAuthService(userRepo, stubTokenIssuer{}, nil)
		response, err := service.Register(ctx, RegisterRequest{Name: "Ada", Email: "Ada@Example.com", Password: "supersecret"})
		require.NoError(t, err)

		assert.Equal(t, "test-token", response.Token)
		assert.Equal(t, "customer", response.User.Role)
		assert.True(t, response.User.Approved)
		assert.Equal(t, "ada@example.com", response.User.Email)
	})

	t.Run("allowlisted email becomes admin", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByEmail", mock.Anything, "ops@example.com").Return(false, nil)
		userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		service := NewAuthService(userRepo, stubTokenIssuer{}, []string{"Ops@Example.com"})
		response, err := service.Register(ctx, RegisterRequest{Name: "Ops", Email: "ops@example.com", Password: "supersecret"})
		require.NoError(t, err)
		assert.Equal(t, "admin", response.User.Role)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(true, nil)

		service := NewAuthService(userRepo, stubTokenIssuer{}, nil)
		_, err := service.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "supersecret"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		userRepo.AssertNotCalled(t, "Save")
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	newUser := func(t *testing.T) *identity.User {
		t.Helper()
		user, err := identity.NewApprovedUser("Ada", "ada@example.com", "supersecret", identity.RoleCustomer)
		require.NoError(t, err)
		return user
	}

	t.Run("valid credentials sign in", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := newUser(t)
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)

		service := NewAuthService(userRepo, stubTokenIssuer{}, nil)
		response, err := service.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "supersecret"})
		require.NoError(t, err)
		assert.Equal(t, "test-token", response.Token)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password fails without revealing the account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(newUser(t), nil)

		service := NewAuthService(userRepo, stubTokenIssuer{}, nil)
		_, err := service.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
		require.Error(t, err)
		assert.Equal(t, "Invalid email or password", err.Error())
	})

	t.Run("unknown email fails with the same message", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

		service := NewAuthService(userRepo, stubTokenIssuer{}, nil)
		_, err := service.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "supersecret"})
		require.Error(t, err)
		assert.Equal(t, "Invalid email or password", err.Error())
	})

	t.Run("unapproved account is forbidden", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user, err := identity.NewUser("Ada", "ada@example.com", "supersecret")
		require.NoError(t, err)
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		service := NewAuthService(userRepo, stubTokenIssuer{}, nil)
		_, err = service.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "supersecret"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

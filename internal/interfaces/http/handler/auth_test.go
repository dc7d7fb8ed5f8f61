package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appidentity "github.com/breezehub/backend/internal/application/identity"
	"github.com/breezehub/backend/internal/domain/identity"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository implements identity.UserRepository for testing
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

// stubTokenIssuer issues a fixed token for any user
type stubTokenIssuer struct{}

func (stubTokenIssuer) GenerateToken(_ *identity.User) (string, time.Time, error) {
	return "test-token", time.Now().Add(time.Hour), nil
}

func setupAuthTestRouter() (*gin.Engine, *MockUserRepository, *AuthHandler) {
	gin.SetMode(gin.TestMode)

	userRepo := new(MockUserRepository)
	service := appidentity.NewAuthService(userRepo, stubTokenIssuer{}, nil)
	h := NewAuthHandler(service)

	return gin.New(), userRepo, h
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("registers account and returns token", func(t *testing.T) {
		router, userRepo, h := setupAuthTestRouter()
		router.POST("/auth/register", h.Register)

		userRepo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil)
		userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		body, _ := json.Marshal(appidentity.RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "strong-password",
		})
		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "test-token", data["token"])

		user := data["user"].(map[string]interface{})
		assert.Equal(t, "customer", user["role"])
	})

	t.Run("returns 409 for duplicate email", func(t *testing.T) {
		router, userRepo, h := setupAuthTestRouter()
		router.POST("/auth/register", h.Register)

		userRepo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(true, nil)

		body, _ := json.Marshal(appidentity.RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "strong-password",
		})
		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("returns 400 for invalid email", func(t *testing.T) {
		router, userRepo, h := setupAuthTestRouter()
		router.POST("/auth/register", h.Register)

		userRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

		body, _ := json.Marshal(appidentity.RegisterRequest{
			Name:     "Ada",
			Email:    "not-an-email",
			Password: "strong-password",
		})
		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("authenticates with valid credentials", func(t *testing.T) {
		router, userRepo, h := setupAuthTestRouter()
		router.POST("/auth/login", h.Login)

		user, err := identity.NewApprovedUser("Ada", "ada@example.com", "strong-password", identity.RoleCustomer)
		require.NoError(t, err)
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		userRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		body, _ := json.Marshal(appidentity.LoginRequest{
			Email:    "ada@example.com",
			Password: "strong-password",
		})
		req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("returns 401 for wrong password", func(t *testing.T) {
		router, userRepo, h := setupAuthTestRouter()
		router.POST("/auth/login", h.Login)

		user, err := identity.NewApprovedUser("Ada", "ada@example.com", "strong-password", identity.RoleCustomer)
		require.NoError(t, err)
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		body, _ := json.Marshal(appidentity.LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong-password",
		})
		req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

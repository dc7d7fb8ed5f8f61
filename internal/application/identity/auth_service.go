package identity

import (
	"context"
	"strings"
	"time"

	"github.com/breezehub/backend/internal/domain/identity"
	"github.com/breezehub/backend/internal/domain/shared"
)

// TokenIssuer signs authentication tokens for users
type TokenIssuer interface {
	GenerateToken(user *identity.User) (token string, expiresAt time.Time, err error)
}

// AuthService handles registration and login. Accounts registering with a
// configured admin email come up as approved admins; everyone else starts
// as an approved customer. Rider accounts are created by administrators.
type AuthService struct {
	userRepo    identity.UserRepository
	tokens      TokenIssuer
	adminEmails map[string]bool
	publisher   shared.EventPublisher
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer, adminEmails []string) *AuthService {
	emails := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		emails[strings.ToLower(strings.TrimSpace(email))] = true
	}
	return &AuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		adminEmails: emails,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *AuthService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Register creates a new account and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	role := identity.RoleCustomer
	if s.adminEmails[email] {
		role = identity.RoleAdmin
	}

	user, err := identity.NewApprovedUser(req.Name, email, req.Password, role)
	if err != nil {
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	return s.respond(user)
}

// Login authenticates an account by email and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}
	if !user.Approved {
		return nil, shared.NewDomainError("FORBIDDEN", "Account is not approved")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.respond(user)
}

// Me returns the account behind a principal
func (s *AuthService) Me(ctx context.Context, principal identity.Principal) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

func (s *AuthService) publishEvents(ctx context.Context, user *identity.User) {
	if s.publisher == nil {
		return
	}
	for _, event := range user.GetDomainEvents() {
		// Publish failures are logged by the publisher; the write is already committed.
		_ = s.publisher.Publish(ctx, event)
	}
	user.ClearDomainEvents()
}

func (s *AuthService) respond(user *identity.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// Package identity provides user registration, login and session token handling.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/shelfwise/shelfwise/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
)

// Repository defines the interface for user data operations.
type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUserByEmail returns the user including the password hash.
	// Lookup is by normalized (case-folded) email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetUserByID returns the user without the password hash.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Authenticator defines the interface for token operations.
type Authenticator interface {
	GenerateToken(ctx context.Context, user *domain.User) (string, error)
	ValidateToken(ctx context.Context, token string) (userID string, role domain.Role, err error)
}

// Service implements identity business logic.
type Service struct {
	repo   Repository
	auth   Authenticator
	folder cases.Caser
}

// NewService creates a new identity service.
func NewService(repo Repository, auth Authenticator) *Service {
	return &Service{
		repo:   repo,
		auth:   auth,
		folder: cases.Fold(),
	}
}

// RegisterInput contains registration data.
type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

// Register creates a user with a hashed password and logs it in immediately.
// Email comparison is case-insensitive: the address is case-folded before
// storage, and the unique index on the folded form rejects concurrent
// duplicates at the storage layer.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	role := domain.DefaultRole
	if input.Role != "" {
		parsed, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, "", ErrInvalidRole
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:    s.normalizeEmail(input.Email),
		Password: string(hash),
		Role:     role,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.auth.GenerateToken(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// LoginInput contains login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the identical ErrInvalidCredentials so the response
// does not reveal whether the account exists.
func (s *Service) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, s.normalizeEmail(input.Email))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	user.Password = ""
	return user, token, nil
}

// GetUserByID returns a user profile without the password hash.
func (s *Service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// ListUsers returns all registered users.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// ValidateToken verifies a session token. Implements httputil.TokenValidator.
func (s *Service) ValidateToken(ctx context.Context, token string) (string, domain.Role, error) {
	return s.auth.ValidateToken(ctx, token)
}

func (s *Service) normalizeEmail(email string) string {
	return s.folder.String(strings.TrimSpace(email))
}

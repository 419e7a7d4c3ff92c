package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/logutils"
	"github.com/uwrite-api/models"
	"github.com/uwrite-api/repositories"
	"github.com/uwrite-api/utils"
	"gorm.io/gorm"
)

// AuthService handles registration, login and identity lookup
type AuthService struct {
	users      *repositories.UserRepository
	tokens     *TokenManager
	bcryptCost int
}

// NewAuthService creates a new auth service instance
func NewAuthService(users *repositories.UserRepository, tokens *TokenManager, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	problems := &ValidationError{}
	if email == "" {
		problems.Add("email", "email is required")
	}
	if len(req.Password) < 6 {
		problems.Add("password", "password must be at least 6 characters")
	}
	if name == "" {
		problems.Add("name", "name is required")
	}
	if err := problems.OrNil(); err != nil {
		return models.User{}, err
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, models.User{Email: email, PasswordHash: hash, Name: name})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a race with a concurrent registration
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	logutils.Log.WithFields(logutils.Fields{"userId": user.ID}).Info("user registered")
	return user, nil
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to load user: %w", err)
	}

	ok, err := utils.CheckPassword(user.PasswordHash, req.Password)
	if err != nil || !ok {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return dto.AuthResponse{Token: token, User: user, ExpiresAt: expiresAt}, nil
}

// GetUser retrieves the caller's account. A token for a removed account is
// treated as no identity.
func (s *AuthService) GetUser(ctx context.Context, id string) (models.User, error) {
	if id == "" {
		return models.User{}, ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUnauthenticated
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

package service

import (
	"errors"
	"fmt"
	"strings"

	"eduadmin/internal/crypto"
	"eduadmin/internal/models"
	"eduadmin/internal/repository"
	"eduadmin/internal/token"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

type AuthService interface {
	// Login authenticates an admin by email and password and returns a
	// session token. Unknown email, wrong password, and non-admin role all
	// fail with ErrInvalidCredentials; callers must not be able to tell
	// which check rejected them.
	Login(email, password string) (*LoginResult, error)
	RegisterStudent(input RegisterInput) (*models.User, error)
}

type LoginResult struct {
	Token  string
	UserID string
	Phone  string
}

type RegisterInput struct {
	Email    string
	Password string
	Phone    string
}

type authService struct {
	repo   repository.UserRepository
	issuer *token.Issuer
	logger *zap.Logger
}

func NewAuthService(repo repository.UserRepository, issuer *token.Issuer, logger *zap.Logger) AuthService {
	return &authService{repo: repo, issuer: issuer, logger: logger}
}

// NormalizeEmail is the canonical form stored and looked up for every email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Login(email, password string) (*LoginResult, error) {
	user, err := s.repo.GetUserByEmail(NormalizeEmail(email))
	if err != nil {
		s.logger.Error("Failed to look up user for login", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil || user.Role != models.RoleAdmin {
		return nil, ErrInvalidCredentials
	}

	if !crypto.VerifyPassword(password, user.PasswordHash, user.Salt) {
		return nil, ErrInvalidCredentials
	}

	tokenString, err := s.issuer.Issue(user.ID, user.Phone, user.Role)
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("Admin logged in", zap.String("user_id", user.ID))
	return &LoginResult{Token: tokenString, UserID: user.ID, Phone: user.Phone}, nil
}

func (s *authService) RegisterStudent(input RegisterInput) (*models.User, error) {
	salt, err := crypto.GenerateSalt()
	if err != nil {
		s.logger.Error("Failed to generate salt", zap.Error(err))
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	hash, err := crypto.HashPassword(input.Password, salt)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        NormalizeEmail(input.Email),
		PasswordHash: hash,
		Salt:         salt,
		Role:         models.RoleStudent,
		Phone:        input.Phone,
	}

	if err := s.repo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

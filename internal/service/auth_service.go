package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

const bcryptCost = 10

// AuthService handles admin initialization and session lifecycle.
type AuthService interface {
	InitAdmin(ctx context.Context, username, password string) (*model.Admin, error)
	Login(ctx context.Context, username, password string) (token string, err error)
	CheckSession(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
}

type authService struct {
	adminRepo repository.AdminRepository
	sessions  *auth.SessionService
}

// NewAuthService creates a new authentication service.
func NewAuthService(adminRepo repository.AdminRepository, sessions *auth.SessionService) AuthService {
	return &authService{
		adminRepo: adminRepo,
		sessions:  sessions,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareDummy spends the same bcrypt work as a real comparison so unknown
// usernames are not distinguishable by response time.
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("portfolio-dummy-password"), bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// InitAdmin creates the admin account with a hashed password.
func (s *authService) InitAdmin(ctx context.Context, username, password string) (*model.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password are required")
	}

	// Check if admin already exists
	existing, err := s.adminRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrAdminExists
	}
	// If error is not "record not found", return it (could be a database error)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check admin existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	return admin, nil
}

// Login verifies the credentials and returns a signed session token.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", apperrors.NewValidationError("username and password are required")
	}

	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			compareDummy(password)
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(admin.ID)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return token, nil
}

// CheckSession reports ErrInvalidSession unless token is a live session.
func (s *authService) CheckSession(ctx context.Context, token string) error {
	_, err := s.sessions.Verify(ctx, token)
	return err
}

// Logout revokes the token when it is still valid. It never fails on a
// missing or invalid token.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, token)
}

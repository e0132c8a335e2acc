package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"signplay/internal/models"
	"signplay/internal/repository"
	"signplay/internal/security"
	"signplay/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetTokenDuration = 1 * time.Hour

// AuthService handles authentication business logic
type AuthService struct {
	userRepo     *repository.UserRepository
	tokenManager *security.TokenManager
	emailService *EmailService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokenManager *security.TokenManager, emailService *EmailService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		emailService: emailService,
	}
}

// Signup creates a new player account and returns a signed access token
func (s *AuthService) Signup(name, email, password string) (string, *models.User, error) {
	// Validate inputs
	if err := validation.ValidateName(name); err != nil {
		return "", nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return "", nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", nil, err
	}

	// Check if email already exists
	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return "", nil, ErrEmailTaken
	}

	// Hash password
	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Create user
	user, err := s.userRepo.CreateUser(email, passwordHash, name)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Welcome email is best-effort
	if err := s.emailService.SendWelcomeEmail(context.Background(), user.Email, user.Name); err != nil {
		log.Printf("Warning: failed to send welcome email to %s: %v", user.Email, err)
	}

	token, err := s.tokenManager.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, user, nil
}

// Login authenticates a user and returns a signed access token
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", nil, ErrUserNotFound
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, user, nil
}

// LoginWithOAuth signs in a user identified by an OAuth provider, creating
// the account on first sign-in. Provisioned accounts get a random password
// hash so password login stays disabled until a reset.
func (s *AuthService) LoginWithOAuth(provider, subject, email, name string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		randomPasswordHash, err := security.HashPassword(uuid.New().String())
		if err != nil {
			return "", nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if name == "" {
			name = email
		}
		user, err = s.userRepo.CreateOAuthUser(email, randomPasswordHash, name, provider, subject)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create user: %w", err)
		}

		if err := s.emailService.SendWelcomeEmail(context.Background(), user.Email, user.Name); err != nil {
			log.Printf("Warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	token, err := s.tokenManager.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, user, nil
}

// GetUser loads the account for an authenticated user ID
func (s *AuthService) GetUser(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// RequestPasswordReset creates a reset token and emails it to the user.
// Succeeds silently when the email is unknown so the endpoint doesn't
// leak which addresses have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil
	}

	token := uuid.New().String()
	expiresAt := time.Now().Add(resetTokenDuration)
	if err := s.userRepo.CreatePasswordResetToken(token, user.ID, expiresAt); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if err := s.emailService.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword sets a new password for the account a reset token belongs to
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	reset, err := s.userRepo.GetPasswordResetToken(token)
	if err != nil {
		return fmt.Errorf("failed to get reset token: %w", err)
	}
	if reset == nil || reset.Used || reset.IsExpired() {
		return ErrInvalidResetToken
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(reset.UserID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.userRepo.MarkPasswordResetTokenUsed(token); err != nil {
		return fmt.Errorf("failed to invalidate reset token: %w", err)
	}

	return nil
}

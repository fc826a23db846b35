package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hunterlab/monster-advisor/internal/auth"
	"github.com/hunterlab/monster-advisor/internal/models"
	"github.com/hunterlab/monster-advisor/internal/repository"
	"github.com/hunterlab/monster-advisor/internal/utils"
	"github.com/hunterlab/monster-advisor/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The closed set of expected login failures. Their messages are part of the
// API contract and map to 400 at the handler boundary.
var (
	ErrEmailRequired    = errors.New("Email must be filled")
	ErrPasswordRequired = errors.New("Password must be filled")
	ErrEmailNotFound    = errors.New("Email not found")
	ErrWrongPassword    = errors.New("Check your email and password")
)

// IsLoginError reports whether err belongs to the expected login set.
func IsLoginError(err error) bool {
	return errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrEmailNotFound) ||
		errors.Is(err, ErrWrongPassword)
}

// ValidationError carries per-field messages for a failed user creation.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "Validation error: " + strings.Join(e.Details, "; ")
}

type AuthService struct {
	userRepo  *repository.UserRepository
	verifier  auth.TokenVerifier
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, verifier auth.TokenVerifier, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		verifier:  verifier,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// Login authenticates by email and password and issues a signed token.
func (s *AuthService) Login(email, password string) (string, error) {
	if email == "" {
		return "", ErrEmailRequired
	}
	if password == "" {
		return "", ErrPasswordRequired
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to look up user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: email not found",
			zap.String("email", email),
		)
		return "", ErrEmailNotFound
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("email", email),
			zap.Error(err),
		)
		return "", err
	}
	if !valid {
		logger.Log.Warn("Login failed: password mismatch",
			zap.Uint("user_id", user.ID),
		)
		return "", ErrWrongPassword
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return "", err
	}

	logger.Log.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return token, nil
}

// GoogleLogin verifies a Google identity token, finds or creates the local
// user, and issues a signed token. The bool reports whether a user was
// created.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*models.User, string, bool, error) {
	profile, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		logger.Log.Error("Google token verification failed",
			zap.Error(err),
		)
		return nil, "", false, err
	}

	user, err := s.userRepo.GetByEmail(profile.Email)
	if err != nil {
		return nil, "", false, err
	}

	created := false
	if user == nil {
		user, err = s.createGoogleUser(profile)
		if err != nil {
			return nil, "", false, err
		}
		created = true
		logger.Log.Info("Created user from Google sign-in",
			zap.Uint("user_id", user.ID),
			zap.String("email", user.Email),
		)
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return nil, "", false, err
	}

	return user, token, created, nil
}

func (s *AuthService) createGoogleUser(profile *auth.GoogleProfile) (*models.User, error) {
	username := profile.Name
	if username == "" {
		// Fall back to the email local-part.
		username = strings.SplitN(profile.Email, "@", 2)[0]
	}

	// No password was supplied; generate one that satisfies validation.
	password, err := utils.GenerateRandomPassword(16)
	if err != nil {
		return nil, err
	}

	if details := models.ValidateUser(username, profile.Email, password); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        profile.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		// A concurrent sign-in for the same email surfaces here.
		if isDuplicateKey(err) {
			return nil, &ValidationError{Details: []string{"Email must be unique"}}
		}
		return nil, err
	}

	return user, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

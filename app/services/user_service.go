package services

import (
	"context"
	"errors"
	"fmt"

	"bloghouse/app/auth"
	"bloghouse/app/models"
	"bloghouse/app/repositories"
)

// UserService handles registration, login and roles
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates an account unless the email is already known.
// A known email wins over any other form error. The password is hashed
// before it reaches the store.
func (s *UserService) Register(ctx context.Context, form models.RegisterForm) (*models.User, error) {
	email := models.NormalizeEmail(form.Email)
	if email != "" {
		exists, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, ErrEmailTaken
		}
	}
	if err := form.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     form.Name,
		Email:    email,
		Password: hash,
		Role:     models.RoleMember,
	}
	if err := user.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	if err := s.userRepo.Register(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user whose credentials match the form.
func (s *UserService) Authenticate(ctx context.Context, form models.LoginForm) (*models.User, error) {
	if err := form.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, models.NormalizeEmail(form.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(user.Password, form.Password) {
		return user, ErrInvalidCredentials
	}
	return user, nil
}

// ListUsers retrieves every account
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// Promote grants the admin role to the account registered under email.
func (s *UserService) Promote(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
		return nil, err
	}
	user.Role = models.RoleAdmin
	return user, nil
}

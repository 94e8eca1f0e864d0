package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"posledger/internal/core/apperror"
	appctx "posledger/internal/core/context"
	"posledger/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
	AdminUsername     string
	AdminPassword     string
}

// DefaultServiceConfig returns default configuration. The default admin
// credentials exist only to bootstrap an empty store and are expected to
// be changed after first login.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 6,
		AdminUsername:     "admin",
		AdminPassword:     "admin123",
	}
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// Service provides authentication and user management.
type Service struct {
	repo       Repository
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(repo Repository, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		repo:       repo,
		jwtService: jwtService,
		config:     config,
	}
}

// Bootstrap creates the default admin account when the user store is empty.
// Called once at startup; a store with any user is left untouched.
func (s *Service) Bootstrap(ctx context.Context) error {
	users, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(users) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := NewUser(s.config.AdminUsername, string(hash))
	admin.FullName = "Administrator"
	admin.IsAdmin = true
	admin.Permissions = appctx.AllPermissions()

	if err := s.repo.Save(ctx, admin); err != nil {
		return fmt.Errorf("save admin: %w", err)
	}

	logger.Info(ctx, "default admin created", "username", admin.Username)
	return nil
}

// Login authenticates a user and issues a token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	user, err := s.repo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Same error as a wrong password so usernames cannot be probed.
			return nil, apperror.NewUnauthorized("invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid username or password")
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID, "username", user.Username)

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// CreateUserRequest is the payload for creating an account.
type CreateUserRequest struct {
	Username    string             `json:"username" binding:"required"`
	Password    string             `json:"password" binding:"required"`
	FullName    string             `json:"fullName"`
	Permissions appctx.Permissions `json:"permissions"`
	IsAdmin     bool               `json:"isAdmin"`
}

// UpdateUserRequest is the payload for editing an account. A nil Password
// keeps the current one.
type UpdateUserRequest struct {
	FullName    *string             `json:"fullName"`
	Password    *string             `json:"password"`
	Permissions *appctx.Permissions `json:"permissions"`
	IsAdmin     *bool               `json:"isAdmin"`
}

// ListUsers returns all accounts. Admin only.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// GetUser returns one account. Admin only.
func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

// CreateUser creates an account. Admin only; usernames are unique.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if req.Username == "" {
		return nil, apperror.NewValidation("username is required").
			WithDetail("field", "username")
	}
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperror.NewConflict("username already taken").
			WithDetail("username", req.Username)
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(req.Username, string(hash))
	user.FullName = req.FullName
	user.Permissions = req.Permissions
	user.IsAdmin = req.IsAdmin

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	logger.Info(ctx, "user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// UpdateUser edits an account. Admin only.
func (s *Service) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*User, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		if len(*req.Password) < s.config.PasswordMinLength {
			return nil, apperror.NewValidation(
				fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
			).WithDetail("field", "password")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if req.Permissions != nil {
		user.Permissions = *req.Permissions
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	logger.Info(ctx, "user updated", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// DeleteUser removes an account. Admin only; self-deletion is rejected so
// the last admin cannot lock everyone out by accident.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if appctx.GetUserID(ctx) == userID {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "cannot delete your own account")
	}
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	logger.Info(ctx, "user deleted", "user_id", userID)
	return nil
}

func (s *Service) requireAdmin(ctx context.Context) error {
	user := appctx.GetUser(ctx)
	if user == nil {
		return apperror.NewUnauthorized("authentication required")
	}
	if !user.IsAdmin {
		return apperror.NewForbidden("admin access required")
	}
	return nil
}

// Package auth provides authentication and user management.
package auth

import (
	"context"
	"time"

	appctx "posledger/internal/core/context"
	"posledger/internal/core/id"
)

// User is an operator account. Permissions gate individual POS pages;
// IsAdmin additionally allows managing users and editing permissions.
type User struct {
	ID           string             `json:"id"`
	Username     string             `json:"username"`
	PasswordHash string             `json:"-"`
	FullName     string             `json:"fullName"`
	Permissions  appctx.Permissions `json:"permissions"`
	IsAdmin      bool               `json:"isAdmin"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// NewUser creates a user with generated ID and timestamp.
func NewUser(username, passwordHash string) *User {
	return &User{
		ID:           id.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// Context builds the request-scoped user context for this account.
func (u *User) Context() *appctx.UserContext {
	return &appctx.UserContext{
		UserID:      u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Permissions: u.Permissions,
		IsAdmin:     u.IsAdmin,
	}
}

// Credentials are the login request payload.
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Repository defines storage access for user accounts.
type Repository interface {
	// List returns all users in stored order.
	List(ctx context.Context) ([]*User, error)

	// Get retrieves a user by id.
	Get(ctx context.Context, userID string) (*User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Save upserts a user by id.
	Save(ctx context.Context, u *User) error

	// Delete removes a user.
	Delete(ctx context.Context, userID string) error
}

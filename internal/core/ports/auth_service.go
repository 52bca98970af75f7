package ports

import (
	"context"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// RegisterInput carries a self-service sign-up.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
	Company  string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService issues credentials.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

// ProfileInput is the caller-editable part of their own account.
type ProfileInput struct {
	FullName string
	Email    string
	Company  string
}

// ProfileService lets a user maintain their own account.
type ProfileService interface {
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UpdateNotifications(ctx context.Context, userID string, settings domain.NotificationSettings) (*domain.NotificationSettings, error)
}

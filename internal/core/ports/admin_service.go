package ports

import (
	"context"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// CreateUserInput carries an admin-created account.
type CreateUserInput struct {
	Username    string
	Password    string
	Email       string
	FullName    string
	Company     string
	Role        domain.Role
	Permissions domain.Permissions
}

// AdminUserUpdate is an admin edit of another account. Role changes go
// through UpdateRole instead.
type AdminUserUpdate struct {
	Username *string
	Email    *string
	FullName *string
	Company  *string
	Password *string
}

// AdminService defines the admin user-management and reporting use cases.
// Callers must already hold an admin role; hierarchy rules are enforced here.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, caller domain.Principal, in CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, caller domain.Principal, id string, in AdminUserUpdate) (*domain.User, error)
	// ToggleStatus sets isActive, or flips it when isActive is nil.
	ToggleStatus(ctx context.Context, caller domain.Principal, id string, isActive *bool) (*domain.User, error)
	DeleteUser(ctx context.Context, caller domain.Principal, id string) error
	UpdateRole(ctx context.Context, caller domain.Principal, id string, role domain.Role, perms *domain.Permissions) (*domain.User, error)
	Statistics(ctx context.Context) (*domain.Statistics, error)
	ListActivities(ctx context.Context, limit int) ([]*domain.ActivityWithActor, error)
	ListUserActivities(ctx context.Context, userID string) ([]*domain.ActivityLog, error)
}

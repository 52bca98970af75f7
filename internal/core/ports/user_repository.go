package ports

import (
	"context"
	"time"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// UserPatch is a partial update of a user. Nil fields are left untouched.
type UserPatch struct {
	Username      *string
	Email         *string
	FullName      *string
	Company       *string
	PasswordHash  *string
	Role          *domain.Role
	Permissions   *domain.Permissions
	IsActive      *bool
	Notifications *domain.NotificationSettings
	LastLogin     *time.Time
}

// Apply copies the set fields onto u.
func (p UserPatch) Apply(u *domain.User) {
	setIf(&u.Username, p.Username)
	setIf(&u.Email, p.Email)
	setIf(&u.FullName, p.FullName)
	setIf(&u.Company, p.Company)
	setIf(&u.PasswordHash, p.PasswordHash)
	setIf(&u.Role, p.Role)
	setIf(&u.Permissions, p.Permissions)
	setIf(&u.IsActive, p.IsActive)
	setIf(&u.Notifications, p.Notifications)
	if p.LastLogin != nil {
		t := *p.LastLogin
		u.LastLogin = &t
	}
}

// UserCountFilter narrows Count. Zero values disable a criterion.
type UserCountFilter struct {
	Role         domain.Role
	CreatedSince time.Time
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts the user and returns it with its generated ID. It fails
	// with ErrUserExists or ErrEmailExists on a unique-key collision.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByIDs silently skips unknown or malformed IDs.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter UserCountFilter) (int64, error)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

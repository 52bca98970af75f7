package domain

import "time"

// Role is the coarse access level of a user.
type Role string

const (
	RoleTrader     Role = "trader"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole validates s against the known roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleTrader, RoleAdmin, RoleSuperAdmin:
		return r, nil
	}
	return "", ErrInvalidRole
}

// IsAdmin reports whether the role may enter the admin area.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CanManage reports whether a holder of r may act on an account holding target.
// Superadmins act on anyone; admins act on traders only.
func (r Role) CanManage(target Role) bool {
	switch r {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return target == RoleTrader
	default:
		return false
	}
}

// Permission names a capability flag stored on the user.
type Permission string

const (
	PermManageUsers      Permission = "canManageUsers"
	PermViewAnalytics    Permission = "canViewAnalytics"
	PermManageMarketData Permission = "canManageMarketData"
	PermApproveDocuments Permission = "canApproveDocuments"
)

// Permissions are capability flags granted independently of role.
type Permissions struct {
	CanManageUsers      bool `json:"canManageUsers"`
	CanViewAnalytics    bool `json:"canViewAnalytics"`
	CanManageMarketData bool `json:"canManageMarketData"`
	CanApproveDocuments bool `json:"canApproveDocuments"`
}

// Has reports whether the named flag is set.
func (p Permissions) Has(perm Permission) bool {
	switch perm {
	case PermManageUsers:
		return p.CanManageUsers
	case PermViewAnalytics:
		return p.CanViewAnalytics
	case PermManageMarketData:
		return p.CanManageMarketData
	case PermApproveDocuments:
		return p.CanApproveDocuments
	}
	return false
}

// NotificationSettings are the user's delivery preferences.
type NotificationSettings struct {
	EmailNotifications bool `json:"emailNotifications"`
	MarketAlerts       bool `json:"marketAlerts"`
	CustomsUpdates     bool `json:"customsUpdates"`
	RouteOptimizations bool `json:"routeOptimizations"`
}

// DefaultNotificationSettings is applied to new accounts.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EmailNotifications: true,
		MarketAlerts:       true,
		CustomsUpdates:     true,
		RouteOptimizations: true,
	}
}

// User models an account of the dashboard.
type User struct {
	ID            string               `json:"id"`
	Username      string               `json:"username"`
	Email         string               `json:"email"`
	PasswordHash  string               `json:"-"`
	FullName      string               `json:"fullName"`
	Company       string               `json:"company,omitempty"`
	Role          Role                 `json:"role"`
	Permissions   Permissions          `json:"permissions"`
	IsActive      bool                 `json:"isActive"`
	Notifications NotificationSettings `json:"notifications"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastLogin     *time.Time           `json:"lastLogin,omitempty"`
}

// Principal returns the identity used for authorization decisions.
func (u *User) Principal() Principal {
	return Principal{
		UserID:      u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Role:        u.Role,
		Permissions: u.Permissions,
	}
}

// Principal is the authenticated caller of a request. Permissions are only
// populated when the caller was reloaded from the store.
type Principal struct {
	UserID      string
	Username    string
	FullName    string
	Role        Role
	Permissions Permissions
}

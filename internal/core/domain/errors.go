package domain

import "errors"

// Authentication and account errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrTooManyAttempts    = errors.New("too many failed login attempts, try again later")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already in use")
	ErrInvalidRole        = errors.New("invalid role")
)

// Authorization errors. The self-targeted variants are client mistakes (400),
// not permission failures.
var (
	ErrForbidden        = errors.New("access forbidden")
	ErrSelfDeactivation = errors.New("cannot deactivate your own account")
	ErrSelfDeletion     = errors.New("cannot delete your own account")
	ErrSelfDemotion     = errors.New("cannot downgrade your own superadmin role")
)

// Resource errors.
var (
	ErrMarketDataNotFound  = errors.New("market data not found")
	ErrRouteNotFound       = errors.New("shipping route not found")
	ErrDocumentNotFound    = errors.New("customs document not found")
	ErrRateNotFound        = errors.New("currency exchange rate not found")
	ErrOpportunityNotFound = errors.New("market opportunity not found")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

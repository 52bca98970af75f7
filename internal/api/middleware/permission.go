package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// UserLoader fetches the stored account of the caller.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// RequirePermission reloads the caller so role, permission flags and the
// active flag reflect the store rather than the token, then asks the policy
// table whether action is allowed. On success the fresh principal replaces
// the token one for the rest of the request.
func RequirePermission(users UserLoader, action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := users.FindByID(c.Request().Context(), p.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "user no longer exists")
				}
				return err
			}
			if !user.IsActive {
				return domain.ErrAccountDisabled
			}

			fresh := user.Principal()
			if !domain.CanPerform(fresh, action, domain.Resource{}) {
				return domain.ErrForbidden
			}

			SetPrincipal(c, fresh)
			return next(c)
		}
	}
}

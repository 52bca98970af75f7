package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/api/middleware"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// messageResponse is the plain acknowledgement body.
type messageResponse struct {
	Message string `json:"message"`
}

// caller extracts the principal injected by the Auth middleware. Its absence
// means the route was registered without Auth; reject with 401.
func caller(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

// queryLimit parses the optional ?limit= parameter. Zero means "use the
// default".
func queryLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
	}
	return n, nil
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/api/handler"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/pkg/token"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// statusByError maps domain sentinels to their HTTP status. The domain
// message is safe to show to clients.
var statusByError = []struct {
	err    error
	status int
}{
	{domain.ErrUserExists, http.StatusBadRequest},
	{domain.ErrEmailExists, http.StatusBadRequest},
	{domain.ErrInvalidRole, http.StatusBadRequest},
	{domain.ErrInvalidStatus, http.StatusBadRequest},
	{domain.ErrWrongPassword, http.StatusBadRequest},
	{domain.ErrSelfDeactivation, http.StatusBadRequest},
	{domain.ErrSelfDeletion, http.StatusBadRequest},
	{domain.ErrSelfDemotion, http.StatusBadRequest},

	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{token.ErrInvalid, http.StatusUnauthorized},

	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrAccountDisabled, http.StatusForbidden},

	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrMarketDataNotFound, http.StatusNotFound},
	{domain.ErrRouteNotFound, http.StatusNotFound},
	{domain.ErrDocumentNotFound, http.StatusNotFound},
	{domain.ErrRateNotFound, http.StatusNotFound},
	{domain.ErrOpportunityNotFound, http.StatusNotFound},

	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},

	{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (router 404/405, middleware 401, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("http error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}

	for _, m := range statusByError {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.err == domain.ErrInvalidTransition {
			return m.status, err.Error()
		}
		return m.status, m.err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

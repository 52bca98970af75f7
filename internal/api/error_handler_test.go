package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/api/handler"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/pkg/token"
)

func runErrorHandler(t *testing.T, method string, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	if rec.Body.Len() == 0 {
		return rec.Code, ""
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return rec.Code, resp.Message
}

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"duplicate username", domain.ErrUserExists, http.StatusBadRequest, "username already exists"},
		{"wrapped duplicate email", fmt.Errorf("create user: %w", domain.ErrEmailExists), http.StatusBadRequest, "email already in use"},
		{"self deletion", domain.ErrSelfDeletion, http.StatusBadRequest, "cannot delete your own account"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid username or password"},
		{"bad token", token.ErrInvalid, http.StatusUnauthorized, "invalid token"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"disabled", domain.ErrAccountDisabled, http.StatusForbidden, "account is deactivated"},
		{"missing route", domain.ErrRouteNotFound, http.StatusNotFound, "shipping route not found"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many failed login attempts, try again later"},
		{
			"transition keeps detail",
			fmt.Errorf("%w: from %q to %q", domain.ErrInvalidTransition, "approved", "pending"),
			http.StatusUnprocessableEntity,
			`invalid status transition: from "approved" to "pending"`,
		},
		{"validation", &handler.ValidationError{Fields: []string{"cost is required", "origin is required"}}, http.StatusBadRequest, "cost is required; origin is required"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(errors.New("eof")), http.StatusBadRequest, "invalid payload"},
		{"router 404", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := runErrorHandler(t, http.MethodGet, tt.err)
			if status != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, status)
			}
			if msg != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	status, msg := runErrorHandler(t, http.MethodHead, domain.ErrForbidden)
	if status != http.StatusForbidden || msg != "" {
		t.Fatalf("unexpected HEAD response: %d %q", status, msg)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/api/middleware"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn    func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn       func(ctx context.Context, username, password string) (*ports.AuthResult, error)
	currentUserFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentUserFn(ctx, userID)
}

// newTestContext builds an echo context with the production validator and,
// when p is non-nil, an authenticated principal.
func newTestContext(method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		middleware.SetPrincipal(c, *p)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, err error, want int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTP error %d, got %v", want, err)
	}
	if he.Code != want {
		t.Fatalf("expected status %d, got %d", want, he.Code)
	}
}

func expectValidation(t *testing.T, err error, field string) {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, msg := range ve.Fields {
		if strings.HasPrefix(msg, field+" ") {
			return
		}
	}
	t.Fatalf("expected a message about %q, got %v", field, ve.Fields)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Username != "alice" || in.FullName != "Alice Doe" || in.Company != "Acme" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				Token: "token123",
				User:  &domain.User{ID: "u1", Username: in.Username, Role: domain.RoleTrader, PasswordHash: "secret-hash"},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/register",
		`{"username":"alice","password":"secret1","email":"a@example.com","fullName":"Alice Doe","company":"Acme"}`, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}

	var resp map[string]any
	decodeBody(t, rec, &resp)
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" || user["role"] != "trader" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/api/register",
		`{"username":"bob","password":"secret1","email":"b@example.com","fullName":"Bob"}`, nil)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing username", `{"password":"secret1","email":"a@example.com","fullName":"Al"}`, "username"},
		{"short password", `{"username":"alice","password":"abc","email":"a@example.com","fullName":"Al"}`, "password"},
		{"bad email", `{"username":"alice","password":"secret1","email":"nope","fullName":"Al"}`, "email"},
		{"short full name", `{"username":"alice","password":"secret1","email":"a@example.com","fullName":"A"}`, "fullName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAuthService{
				registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			c, _ := newTestContext(http.MethodPost, "/api/register", tt.body, nil)
			expectValidation(t, NewAuthHandler(stub).Register(c), tt.field)
		})
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newTestContext(http.MethodPost, "/api/register", "not-json", nil)

	expectStatus(t, NewAuthHandler(stub).Register(c), http.StatusBadRequest)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*ports.AuthResult, error) {
			if username != "alice" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.AuthResult{Token: "token123", User: &domain.User{Username: "alice", Role: domain.RoleAdmin}}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/login", `{"username":"alice","password":"secret1"}`, nil)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	decodeBody(t, rec, &resp)
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Login_ServiceErrors(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidCredentials, domain.ErrAccountDisabled, domain.ErrTooManyAttempts} {
		t.Run(want.Error(), func(t *testing.T) {
			stub := &stubAuthService{
				loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
					return nil, want
				},
			}
			c, _ := newTestContext(http.MethodPost, "/api/login", `{"username":"alice","password":"bad"}`, nil)

			if err := NewAuthHandler(stub).Login(c); !errors.Is(err, want) {
				t.Fatalf("expected %v, got %v", want, err)
			}
		})
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	c, _ := newTestContext(http.MethodPost, "/api/login", "{", nil)
	expectStatus(t, NewAuthHandler(stub).Login(c), http.StatusBadRequest)

	c, _ = newTestContext(http.MethodPost, "/api/login", `{"username":"alice"}`, nil)
	expectValidation(t, NewAuthHandler(stub).Login(c), "password")
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newTestContext(http.MethodPost, "/api/logout", "", &domain.Principal{UserID: "u1"})
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp messageResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "Logged out successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}

	c, _ = newTestContext(http.MethodPost, "/api/logout", "", nil)
	expectStatus(t, h.Logout(c), http.StatusUnauthorized)
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	stub := &stubAuthService{
		currentUserFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: "u1", Username: "alice", Role: domain.RoleTrader}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/user", "", &domain.Principal{UserID: "u1"})
	if err := h.CurrentUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var user map[string]any
	decodeBody(t, rec, &user)
	if user["id"] != "u1" || user["username"] != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	// A token that outlived its account is treated as unauthenticated.
	c, _ = newTestContext(http.MethodGet, "/api/user", "", &domain.Principal{UserID: "gone"})
	expectStatus(t, h.CurrentUser(c), http.StatusUnauthorized)
}

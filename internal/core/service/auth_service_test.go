package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports/portstest"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/pkg/token"
)

type stubLimiter struct {
	blocked  bool
	allowErr error
	failures map[string]int
	resets   int
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{failures: make(map[string]int)}
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) {
	if l.allowErr != nil {
		return false, l.allowErr
	}
	return !l.blocked, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, username string) error {
	l.failures[username]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, username string) error {
	delete(l.failures, username)
	l.resets++
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *portstest.UserRepository, *stubLimiter) {
	t.Helper()
	users := portstest.NewUserRepository()
	limiter := newStubLimiter()
	svc := NewAuthService(users, token.NewManager("test-secret", time.Hour), limiter, zerolog.Nop())
	return svc, users, limiter
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Password: "s3cret",
		Email:    "alice@example.com",
		FullName: "Alice Trader",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}
	u := res.User
	if u.ID == "" || u.Role != domain.RoleTrader || !u.IsActive {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash == "s3cret" || u.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if !u.Notifications.EmailNotifications || !u.Notifications.CustomsUpdates {
		t.Fatalf("expected default notifications enabled, got %+v", u.Notifications)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Password: "x", Email: "a@example.com"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Password: "y", Email: "b@example.com"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	_, err = svc.Register(ctx, ports.RegisterInput{Username: "bob", Password: "y", Email: "a@example.com"})
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, limiter := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Password: "s3cret", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.User.ID != reg.User.ID {
		t.Fatalf("expected user %s, got %s", reg.User.ID, res.User.ID)
	}
	if res.User.LastLogin == nil {
		t.Fatalf("expected lastLogin to be recorded")
	}
	if limiter.resets != 1 {
		t.Fatalf("expected limiter reset, got %d", limiter.resets)
	}

	claims, err := svc.tokens.Parse(res.Token)
	if err != nil {
		t.Fatalf("token did not parse: %v", err)
	}
	if claims.UserID != reg.User.ID || claims.Role != string(domain.RoleTrader) {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _, limiter := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Password: "s3cret", Email: "a@example.com"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.failures["alice"] != 1 || limiter.failures["nobody"] != 1 {
		t.Fatalf("expected one failure per username, got %v", limiter.failures)
	}
}

func TestAuthService_Login_Disabled(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Password: "s3cret", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	inactive := false
	if _, err := users.Update(ctx, reg.User.ID, ports.UserPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "s3cret"); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
	// a wrong password on a disabled account still reads as bad credentials
	if _, err := svc.Login(ctx, "alice", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	svc, _, limiter := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Password: "s3cret", Email: "a@example.com"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	limiter.blocked = true
	if _, err := svc.Login(ctx, "alice", "s3cret"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_LimiterUnavailable(t *testing.T) {
	svc, _, limiter := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Password: "s3cret", Email: "a@example.com"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	limiter.allowErr = errors.New("redis down")
	if _, err := svc.Login(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("expected login to proceed without limiter, got %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Password: "s3cret", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, err := svc.CurrentUser(ctx, reg.User.ID)
	if err != nil || u.Username != "alice" {
		t.Fatalf("CurrentUser = %+v, %v", u, err)
	}
	if _, err := svc.CurrentUser(ctx, portstest.NewID()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPassword_HashAndVerify(t *testing.T) {
	hash, err := hashPassword("correct horse")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}

	ok, err := verifyPassword("correct horse", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got %v, %v", ok, err)
	}
	ok, err = verifyPassword("battery staple", hash)
	if err != nil || ok {
		t.Fatalf("expected mismatch, got %v, %v", ok, err)
	}

	other, _ := hashPassword("correct horse")
	if other == hash {
		t.Fatalf("expected distinct salts per hash")
	}
}

func TestPassword_Malformed(t *testing.T) {
	for _, stored := range []string{"", "nodot", "zz.salt", "abcd."} {
		if ok, err := verifyPassword("x", stored); ok || !errors.Is(err, errMalformedHash) {
			t.Fatalf("%q: expected errMalformedHash, got %v, %v", stored, ok, err)
		}
	}
}

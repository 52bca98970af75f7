package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/pkg/metrics"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/pkg/token"
)

// LoginLimiter abstracts the failed-login counter (Redis).
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// NoopLimiter never throttles. It is used when Redis is not configured.
type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }

func (NoopLimiter) RecordFailure(context.Context, string) error { return nil }

func (NoopLimiter) Reset(context.Context, string) error { return nil }

// AuthService implements registration, login and identity lookup.
type AuthService struct {
	users   ports.UserRepository
	tokens  *token.Manager
	limiter LoginLimiter
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthService(users ports.UserRepository, tokens *token.Manager, limiter LoginLimiter, log zerolog.Logger) *AuthService {
	if limiter == nil {
		limiter = NoopLimiter{}
	}
	return &AuthService{users: users, tokens: tokens, limiter: limiter, log: log, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Username:      in.Username,
		Email:         in.Email,
		PasswordHash:  hash,
		FullName:      in.FullName,
		Company:       in.Company,
		Role:          domain.RoleTrader,
		IsActive:      true,
		Notifications: domain.DefaultNotificationSettings(),
		CreatedAt:     s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	signed, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return &ports.AuthResult{Token: signed, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.limiter.Allow(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter unavailable, allowing attempt")
	} else if !allowed {
		metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, s.failLogin(ctx, username)
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	ok, err := verifyPassword(password, user.PasswordHash)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("stored password hash unusable")
	}
	if !ok {
		return nil, s.failLogin(ctx, username)
	}

	if !user.IsActive {
		metrics.LoginAttemptsTotal.WithLabelValues("disabled").Inc()
		return nil, domain.ErrAccountDisabled
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login attempts")
	}

	now := s.now().UTC()
	if updated, err := s.users.Update(ctx, user.ID, ports.UserPatch{LastLogin: &now}); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	} else {
		user = updated
	}

	signed, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return &ports.AuthResult{Token: signed, User: user}, nil
}

func (s *AuthService) failLogin(ctx context.Context, username string) error {
	metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
	return domain.ErrInvalidCredentials
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

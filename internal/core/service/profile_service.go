package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

// ProfileService lets users maintain their own account.
type ProfileService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewProfileService(users ports.UserRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, log: log}
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileInput) (*domain.User, error) {
	user, err := s.users.Update(ctx, userID, ports.UserPatch{
		FullName: &in.FullName,
		Email:    &in.Email,
		Company:  &in.Company,
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := verifyPassword(currentPassword, user.PasswordHash)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("stored password hash unusable")
	}
	if !ok {
		return domain.ErrWrongPassword
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if _, err := s.users.Update(ctx, userID, ports.UserPatch{PasswordHash: &hash}); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func (s *ProfileService) UpdateNotifications(ctx context.Context, userID string, settings domain.NotificationSettings) (*domain.NotificationSettings, error) {
	user, err := s.users.Update(ctx, userID, ports.UserPatch{Notifications: &settings})
	if err != nil {
		return nil, fmt.Errorf("update notifications: %w", err)
	}
	return &user.Notifications, nil
}

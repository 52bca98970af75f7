package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/pkg/metrics"
)

const DefaultAdminActivities = 50

// AdminRepositories groups the collections read by the admin service.
type AdminRepositories struct {
	Users      ports.UserRepository
	MarketData ports.MarketDataRepository
	Routes     ports.ShippingRouteRepository
	Documents  ports.CustomsDocumentRepository
	Activities ports.ActivityRepository
}

// AdminService implements user management and reporting for admins.
type AdminService struct {
	repos AdminRepositories
	audit ports.AuditLogger
	log   zerolog.Logger
	now   func() time.Time
}

func NewAdminService(repos AdminRepositories, audit ports.AuditLogger, log zerolog.Logger) *AdminService {
	return &AdminService{repos: repos, audit: audit, log: log, now: time.Now}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repos.Users.List(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repos.Users.FindByID(ctx, id)
}

// CreateUser creates an account on behalf of an admin. Admins may only create
// traders; permission flags are only honoured from superadmins.
func (s *AdminService) CreateUser(ctx context.Context, caller domain.Principal, in ports.CreateUserInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleTrader
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}
	if !domain.CanPerform(caller, domain.ActionManageUser, domain.Resource{OwnerRole: role}) {
		return nil, domain.ErrForbidden
	}

	perms := in.Permissions
	if caller.Role != domain.RoleSuperAdmin {
		perms = domain.Permissions{}
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.Users.Create(ctx, &domain.User{
		Username:      in.Username,
		Email:         in.Email,
		PasswordHash:  hash,
		FullName:      in.FullName,
		Company:       in.Company,
		Role:          role,
		Permissions:   perms,
		IsActive:      true,
		Notifications: domain.DefaultNotificationSettings(),
		CreatedAt:     s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.record(ctx, caller, domain.AuditUserCreated, "User created",
		fmt.Sprintf("%s created user %s with role %s", caller.Username, user.Username, user.Role), user.ID)
	return user, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, caller domain.Principal, id string, in ports.AdminUserUpdate) (*domain.User, error) {
	target, err := s.manageable(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	patch := ports.UserPatch{
		Username: in.Username,
		Email:    in.Email,
		FullName: in.FullName,
		Company:  in.Company,
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.repos.Users.Update(ctx, target.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.record(ctx, caller, domain.AuditUserUpdated, "User updated",
		fmt.Sprintf("%s updated user %s", caller.Username, updated.Username), updated.ID)
	return updated, nil
}

func (s *AdminService) ToggleStatus(ctx context.Context, caller domain.Principal, id string, isActive *bool) (*domain.User, error) {
	target, err := s.repos.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := !target.IsActive
	if isActive != nil {
		next = *isActive
	}
	if target.ID == caller.UserID && !next {
		return nil, domain.ErrSelfDeactivation
	}
	if !domain.CanPerform(caller, domain.ActionManageUser, domain.Resource{OwnerID: target.ID, OwnerRole: target.Role}) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.repos.Users.Update(ctx, target.ID, ports.UserPatch{IsActive: &next})
	if err != nil {
		return nil, fmt.Errorf("toggle user status: %w", err)
	}

	action, verb := domain.AuditUserActivated, "activated"
	if !next {
		action, verb = domain.AuditUserDeactivated, "deactivated"
	}
	s.record(ctx, caller, action, "User "+verb,
		fmt.Sprintf("%s %s user %s", caller.Username, verb, updated.Username), updated.ID)
	return updated, nil
}

// DeleteUser removes an account. A failed audit write does not fail the
// deletion.
func (s *AdminService) DeleteUser(ctx context.Context, caller domain.Principal, id string) error {
	target, err := s.repos.Users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if target.ID == caller.UserID {
		return domain.ErrSelfDeletion
	}
	if !domain.CanPerform(caller, domain.ActionManageUser, domain.Resource{OwnerID: target.ID, OwnerRole: target.Role}) {
		return domain.ErrForbidden
	}

	if err := s.repos.Users.Delete(ctx, target.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.record(ctx, caller, domain.AuditUserDeleted, "User deleted",
		fmt.Sprintf("%s deleted user %s", caller.Username, target.Username), target.ID)
	return nil
}

// UpdateRole assigns a role and, when perms is non-nil, permission flags.
func (s *AdminService) UpdateRole(ctx context.Context, caller domain.Principal, id string, role domain.Role, perms *domain.Permissions) (*domain.User, error) {
	if !domain.CanPerform(caller, domain.ActionChangeRole, domain.Resource{OwnerID: id}) {
		return nil, domain.ErrForbidden
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}
	if id == caller.UserID && caller.Role == domain.RoleSuperAdmin && role != domain.RoleSuperAdmin {
		return nil, domain.ErrSelfDemotion
	}

	updated, err := s.repos.Users.Update(ctx, id, ports.UserPatch{Role: &role, Permissions: perms})
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	s.record(ctx, caller, domain.AuditRoleUpdated, "Role updated",
		fmt.Sprintf("%s set role of %s to %s", caller.Username, updated.Username, role), updated.ID)
	return updated, nil
}

// Statistics counts users, data and activity at request time.
func (s *AdminService) Statistics(ctx context.Context) (*domain.Statistics, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var st domain.Statistics
	counts := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&st.Users.Total, func() (int64, error) { return s.repos.Users.Count(ctx, ports.UserCountFilter{}) }},
		{&st.Users.Traders, func() (int64, error) { return s.repos.Users.Count(ctx, ports.UserCountFilter{Role: domain.RoleTrader}) }},
		{&st.Users.Admins, func() (int64, error) { return s.repos.Users.Count(ctx, ports.UserCountFilter{Role: domain.RoleAdmin}) }},
		{&st.Users.SuperAdmins, func() (int64, error) {
			return s.repos.Users.Count(ctx, ports.UserCountFilter{Role: domain.RoleSuperAdmin})
		}},
		{&st.Users.NewInLastMonth, func() (int64, error) {
			return s.repos.Users.Count(ctx, ports.UserCountFilter{CreatedSince: now.AddDate(0, 0, -30)})
		}},
		{&st.Data.MarketData, func() (int64, error) { return s.repos.MarketData.Count(ctx) }},
		{&st.Data.ShippingRoutes, func() (int64, error) { return s.repos.Routes.Count(ctx) }},
		{&st.Data.CustomsDocuments, func() (int64, error) { return s.repos.Documents.Count(ctx, "") }},
		{&st.Customs.Pending, s.countDocuments(ctx, domain.DocumentPending)},
		{&st.Customs.InProgress, s.countDocuments(ctx, domain.DocumentInProgress)},
		{&st.Customs.Cleared, s.countDocuments(ctx, domain.DocumentCleared)},
		{&st.Customs.Approved, s.countDocuments(ctx, domain.DocumentApproved)},
		{&st.Customs.Rejected, s.countDocuments(ctx, domain.DocumentRejected)},
		{&st.Activity.Today, func() (int64, error) { return s.repos.Activities.CountSince(ctx, today) }},
		{&st.Activity.Weekly, func() (int64, error) { return s.repos.Activities.CountSince(ctx, now.AddDate(0, 0, -7)) }},
	}

	for _, c := range counts {
		n, err := c.fn()
		if err != nil {
			return nil, fmt.Errorf("statistics: %w", err)
		}
		*c.dst = n
	}
	return &st, nil
}

func (s *AdminService) countDocuments(ctx context.Context, status domain.DocumentStatus) func() (int64, error) {
	return func() (int64, error) { return s.repos.Documents.Count(ctx, status) }
}

// ListActivities returns the newest entries of all users joined with their
// authors. Entries of deleted users carry no author.
func (s *AdminService) ListActivities(ctx context.Context, limit int) ([]*domain.ActivityWithActor, error) {
	entries, err := s.repos.Activities.ListRecent(ctx, clampLimit(limit, DefaultAdminActivities))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.UserID]; ok || e.UserID == "" {
			continue
		}
		seen[e.UserID] = struct{}{}
		ids = append(ids, e.UserID)
	}

	users, err := s.repos.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	actors := make(map[string]*domain.Actor, len(users))
	for _, u := range users {
		actors[u.ID] = &domain.Actor{Username: u.Username, FullName: u.FullName, Role: u.Role}
	}

	out := make([]*domain.ActivityWithActor, len(entries))
	for i, e := range entries {
		out[i] = &domain.ActivityWithActor{ActivityLog: *e, User: actors[e.UserID]}
	}
	return out, nil
}

func (s *AdminService) ListUserActivities(ctx context.Context, userID string) ([]*domain.ActivityLog, error) {
	return s.repos.Activities.ListByUser(ctx, userID, 0)
}

// manageable loads the target of a user mutation and enforces the hierarchy.
func (s *AdminService) manageable(ctx context.Context, caller domain.Principal, id string) (*domain.User, error) {
	target, err := s.repos.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanPerform(caller, domain.ActionManageUser, domain.Resource{OwnerID: target.ID, OwnerRole: target.Role}) {
		return nil, domain.ErrForbidden
	}
	return target, nil
}

func (s *AdminService) record(ctx context.Context, caller domain.Principal, action, title, description, targetID string) {
	metrics.AdminActionsTotal.WithLabelValues(action).Inc()
	s.audit.Audit(ctx, domain.ActivityLog{
		Title:       title,
		Action:      action,
		Description: description,
		Type:        domain.ActivityAdmin,
		UserID:      caller.UserID,
		RelatedID:   targetID,
		RelatedType: domain.RelatedUser,
	})
	s.log.Info().Str("action", action).Str("admin_id", caller.UserID).Str("target_id", targetID).Msg("admin action")
}

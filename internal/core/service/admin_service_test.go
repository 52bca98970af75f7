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
)

type adminFixture struct {
	svc   *AdminService
	store *portstest.Store
	super *domain.User
	admin *domain.User
	trade *domain.User
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	store := portstest.NewStore()
	svc := NewAdminService(AdminRepositories{
		Users:      store.Users,
		MarketData: store.MarketData,
		Routes:     store.Routes,
		Documents:  store.Documents,
		Activities: store.Activities,
	}, NewAuditor(store.Activities, zerolog.Nop()), zerolog.Nop())

	return &adminFixture{
		svc:   svc,
		store: store,
		super: seedUser(t, store.Users, "root", domain.RoleSuperAdmin),
		admin: seedUser(t, store.Users, "ada", domain.RoleAdmin),
		trade: seedUser(t, store.Users, "tom", domain.RoleTrader),
	}
}

func TestAdminService_CreateUser(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	u, err := f.svc.CreateUser(ctx, f.admin.Principal(), ports.CreateUserInput{
		Username:    "newbie",
		Password:    "pw",
		Email:       "newbie@example.com",
		FullName:    "New Trader",
		Permissions: domain.Permissions{CanManageUsers: true},
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Role != domain.RoleTrader || !u.IsActive {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.Permissions.CanManageUsers {
		t.Fatalf("admins must not grant permissions")
	}

	_, err = f.svc.CreateUser(ctx, f.admin.Principal(), ports.CreateUserInput{
		Username: "boss", Password: "pw", Email: "boss@example.com", Role: domain.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin creating admin: expected ErrForbidden, got %v", err)
	}

	_, err = f.svc.CreateUser(ctx, f.super.Principal(), ports.CreateUserInput{
		Username: "pilot", Password: "pw", Email: "pilot@example.com", Role: "pilot",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAdminService_Hierarchy(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	name := "Renamed"

	if _, err := f.svc.UpdateUser(ctx, f.admin.Principal(), f.super.ID, ports.AdminUserUpdate{FullName: &name}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin editing superadmin: expected ErrForbidden, got %v", err)
	}
	if err := f.svc.DeleteUser(ctx, f.admin.Principal(), f.super.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin deleting superadmin: expected ErrForbidden, got %v", err)
	}
	other := seedUser(t, f.store.Users, "ann", domain.RoleAdmin)
	if _, err := f.svc.ToggleStatus(ctx, f.admin.Principal(), other.ID, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin toggling admin: expected ErrForbidden, got %v", err)
	}

	got, err := f.svc.UpdateUser(ctx, f.admin.Principal(), f.trade.ID, ports.AdminUserUpdate{FullName: &name})
	if err != nil {
		t.Fatalf("admin editing trader: %v", err)
	}
	if got.FullName != name {
		t.Fatalf("expected %q, got %q", name, got.FullName)
	}
}

func TestAdminService_SelfProtection(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	for _, u := range []*domain.User{f.super, f.admin} {
		off := false
		if _, err := f.svc.ToggleStatus(ctx, u.Principal(), u.ID, &off); !errors.Is(err, domain.ErrSelfDeactivation) {
			t.Fatalf("%s deactivating self: expected ErrSelfDeactivation, got %v", u.Role, err)
		}
		if err := f.svc.DeleteUser(ctx, u.Principal(), u.ID); !errors.Is(err, domain.ErrSelfDeletion) {
			t.Fatalf("%s deleting self: expected ErrSelfDeletion, got %v", u.Role, err)
		}
	}

	if _, err := f.svc.UpdateRole(ctx, f.super.Principal(), f.super.ID, domain.RoleAdmin, nil); !errors.Is(err, domain.ErrSelfDemotion) {
		t.Fatalf("expected ErrSelfDemotion, got %v", err)
	}
}

func TestAdminService_ToggleStatusTwice(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	first, err := f.svc.ToggleStatus(ctx, f.admin.Principal(), f.trade.ID, nil)
	if err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if first.IsActive {
		t.Fatalf("expected deactivation")
	}
	second, err := f.svc.ToggleStatus(ctx, f.admin.Principal(), f.trade.ID, nil)
	if err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if !second.IsActive {
		t.Fatalf("expected reactivation")
	}

	entries, _ := f.store.Activities.ListRecent(ctx, 0)
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	actions := map[string]bool{}
	for _, e := range entries {
		actions[e.Action] = true
		if e.RelatedID != f.trade.ID || e.UserID != f.admin.ID {
			t.Fatalf("unexpected audit entry: %+v", e)
		}
	}
	if !actions[domain.AuditUserActivated] || !actions[domain.AuditUserDeactivated] {
		t.Fatalf("expected activated and deactivated entries, got %v", actions)
	}
}

func TestAdminService_DeleteSurvivesAuditFailure(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	f.store.Activities.FailInserts = errors.New("disk full")

	if err := f.svc.DeleteUser(ctx, f.super.Principal(), f.admin.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := f.store.Users.FindByID(ctx, f.admin.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
}

func TestAdminService_UpdateRole(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	if _, err := f.svc.UpdateRole(ctx, f.admin.Principal(), f.trade.ID, domain.RoleAdmin, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin changing role: expected ErrForbidden, got %v", err)
	}

	perms := domain.Permissions{CanApproveDocuments: true}
	got, err := f.svc.UpdateRole(ctx, f.super.Principal(), f.trade.ID, domain.RoleAdmin, &perms)
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if got.Role != domain.RoleAdmin || !got.Permissions.CanApproveDocuments {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := f.svc.UpdateRole(ctx, f.super.Principal(), f.trade.ID, "owner", nil); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAdminService_Statistics(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	docs := []domain.DocumentStatus{domain.DocumentPending, domain.DocumentPending, domain.DocumentCleared}
	for _, st := range docs {
		if _, err := f.store.Documents.Create(ctx, &domain.CustomsDocument{Status: st, UserID: f.trade.ID}); err != nil {
			t.Fatalf("Create document: %v", err)
		}
	}
	for _, ts := range []time.Time{now.Add(-time.Hour), now.AddDate(0, 0, -3), now.AddDate(0, 0, -20)} {
		if _, err := f.store.Activities.Insert(ctx, &domain.ActivityLog{Title: "x", Timestamp: ts}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	st, err := f.svc.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if st.Users.Total != 3 || st.Users.Traders != 1 || st.Users.Admins != 1 || st.Users.SuperAdmins != 1 {
		t.Fatalf("unexpected user counts: %+v", st.Users)
	}
	if st.Data.CustomsDocuments != 3 || st.Customs.Pending != 2 || st.Customs.Cleared != 1 {
		t.Fatalf("unexpected customs counts: %+v %+v", st.Data, st.Customs)
	}
	if st.Activity.Today != 1 || st.Activity.Weekly != 2 {
		t.Fatalf("unexpected activity counts: %+v", st.Activity)
	}
}

func TestAdminService_ListActivitiesJoinsActors(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	if _, err := f.svc.ToggleStatus(ctx, f.admin.Principal(), f.trade.ID, nil); err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if _, err := f.store.Activities.Insert(ctx, &domain.ActivityLog{Title: "orphan", UserID: portstest.NewID(), Timestamp: time.Now()}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := f.svc.ListActivities(ctx, 0)
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	var joined, orphaned int
	for _, e := range got {
		if e.User == nil {
			orphaned++
			continue
		}
		if e.User.Username != "ada" || e.User.Role != domain.RoleAdmin {
			t.Fatalf("unexpected actor: %+v", e.User)
		}
		joined++
	}
	if joined != 1 || orphaned != 1 {
		t.Fatalf("expected one joined and one orphaned entry, got %d/%d", joined, orphaned)
	}

	mine, _ := f.svc.ListUserActivities(ctx, f.admin.ID)
	if len(mine) != 1 {
		t.Fatalf("expected 1 entry for ada, got %d", len(mine))
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports/portstest"
)

func TestActivityService_RecordStampsCaller(t *testing.T) {
	repo := portstest.NewActivityRepository()
	svc := NewActivityService(repo, zerolog.Nop())
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	alice := domain.Principal{UserID: "alice-id", Role: domain.RoleTrader}
	got, err := svc.Record(context.Background(), alice, domain.ActivityLog{
		Title:     "Route checked",
		Type:      domain.ActivityShipping,
		UserID:    "someone-else",
		Timestamp: fixed.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got.UserID != "alice-id" {
		t.Fatalf("expected caller as author, got %q", got.UserID)
	}
	if !got.Timestamp.Equal(fixed) {
		t.Fatalf("expected server timestamp, got %v", got.Timestamp)
	}
}

func TestActivityService_ListForUserIsScoped(t *testing.T) {
	repo := portstest.NewActivityRepository()
	svc := NewActivityService(repo, zerolog.Nop())
	ctx := context.Background()
	alice := domain.Principal{UserID: "alice-id"}
	bob := domain.Principal{UserID: "bob-id"}

	for i := 0; i < 3; i++ {
		if _, err := svc.Record(ctx, alice, domain.ActivityLog{Title: "a"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if _, err := svc.Record(ctx, bob, domain.ActivityLog{Title: "b"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := svc.ListForUser(ctx, alice)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	for _, e := range got {
		if e.UserID != "alice-id" {
			t.Fatalf("leaked entry of %q", e.UserID)
		}
	}
}

func TestActivityService_RecentNewestFirstAndLimited(t *testing.T) {
	repo := portstest.NewActivityRepository()
	svc := NewActivityService(repo, zerolog.Nop())
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return ts }
		if _, err := svc.Record(ctx, domain.Principal{UserID: "u"}, domain.ActivityLog{Title: "x"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := svc.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != DefaultRecentActivities {
		t.Fatalf("expected default limit %d, got %d", DefaultRecentActivities, len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Fatalf("entries not newest first at %d", i)
		}
	}

	got, _ = svc.Recent(ctx, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct{ in, def, want int }{
		{0, 10, 10},
		{-4, 50, 50},
		{7, 10, 7},
		{1000, 10, MaxActivities},
	}
	for _, c := range cases {
		if got := clampLimit(c.in, c.def); got != c.want {
			t.Fatalf("clampLimit(%d, %d) = %d, want %d", c.in, c.def, got, c.want)
		}
	}
}

func TestAuditor_DefaultsAndFailures(t *testing.T) {
	repo := portstest.NewActivityRepository()
	audit := NewAuditor(repo, zerolog.Nop())
	ctx := context.Background()

	audit.Audit(ctx, domain.ActivityLog{Title: "User created", UserID: "admin-id"})
	entries, _ := repo.ListRecent(ctx, 0)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].Type != domain.ActivityAdmin || entries[0].Timestamp.IsZero() {
		t.Fatalf("expected admin type and timestamp, got %+v", entries[0])
	}

	// failures are swallowed
	repo.FailInserts = errors.New("write failed")
	audit.Audit(ctx, domain.ActivityLog{Title: "ignored"})
	if repo.Len() != 1 {
		t.Fatalf("expected failed write not to be stored")
	}
}

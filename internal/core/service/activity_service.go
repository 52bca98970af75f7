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

const (
	DefaultRecentActivities = 10
	MaxActivities           = 100
)

// ActivityService serves the user-facing activity feed.
type ActivityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log, now: time.Now}
}

// ListForUser returns the caller's own entries, newest first.
func (s *ActivityService) ListForUser(ctx context.Context, caller domain.Principal) ([]*domain.ActivityLog, error) {
	return s.repo.ListByUser(ctx, caller.UserID, 0)
}

// Recent returns the newest entries across all users.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	return s.repo.ListRecent(ctx, clampLimit(limit, DefaultRecentActivities))
}

// Record appends an entry stamped with the caller and the current time.
func (s *ActivityService) Record(ctx context.Context, caller domain.Principal, entry domain.ActivityLog) (*domain.ActivityLog, error) {
	entry.UserID = caller.UserID
	entry.Timestamp = s.now().UTC()

	created, err := s.repo.Insert(ctx, &entry)
	if err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}
	metrics.ResourcesCreatedTotal.WithLabelValues("activity").Inc()
	return created, nil
}

// Auditor implements ports.AuditLogger on top of the activity repository.
type Auditor struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewAuditor(repo ports.ActivityRepository, log zerolog.Logger) *Auditor {
	return &Auditor{repo: repo, log: log, now: time.Now}
}

// Audit persists entry. Failures are logged and never returned.
func (a *Auditor) Audit(ctx context.Context, entry domain.ActivityLog) {
	if entry.Type == "" {
		entry.Type = domain.ActivityAdmin
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = a.now().UTC()
	}

	if _, err := a.repo.Insert(ctx, &entry); err != nil {
		metrics.AuditWriteFailuresTotal.Inc()
		a.log.Warn().
			Err(err).
			Str("action", entry.Action).
			Str("user_id", entry.UserID).
			Str("related_id", entry.RelatedID).
			Msg("failed to insert audit entry")
	}
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxActivities {
		return MaxActivities
	}
	return limit
}

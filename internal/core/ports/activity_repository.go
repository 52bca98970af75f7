package ports

import (
	"context"
	"time"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// ActivityRepository persists the append-only activity log.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) (*domain.ActivityLog, error)
	// ListByUser returns the user's entries, newest first. limit <= 0 means
	// no limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ActivityLog, error)
	// ListRecent returns entries of all users, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.ActivityLog, error)
	// CountSince counts entries with a timestamp at or after since.
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

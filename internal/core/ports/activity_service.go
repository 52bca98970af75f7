package ports

import (
	"context"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// ActivityService reads and appends activity entries on behalf of users.
type ActivityService interface {
	ListForUser(ctx context.Context, caller domain.Principal) ([]*domain.ActivityLog, error)
	Recent(ctx context.Context, limit int) ([]*domain.ActivityLog, error)
	Record(ctx context.Context, caller domain.Principal, entry domain.ActivityLog) (*domain.ActivityLog, error)
}

// AuditLogger records admin actions. Implementations never fail the caller;
// write errors are logged and dropped.
type AuditLogger interface {
	Audit(ctx context.Context, entry domain.ActivityLog)
}

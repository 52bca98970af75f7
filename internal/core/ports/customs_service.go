package ports

import (
	"context"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// CustomsService defines use-case operations for customs documents.
type CustomsService interface {
	List(ctx context.Context, caller domain.Principal) ([]*domain.CustomsDocument, error)
	Get(ctx context.Context, caller domain.Principal, id string) (*domain.CustomsDocument, error)
	Create(ctx context.Context, caller domain.Principal, doc domain.CustomsDocument) (*domain.CustomsDocument, error)
	// Update applies an owner edit. Review fields in the patch are ignored.
	Update(ctx context.Context, caller domain.Principal, id string, patch CustomsDocumentPatch) (*domain.CustomsDocument, error)
	Approve(ctx context.Context, reviewer domain.Principal, id, comments string) (*domain.CustomsDocument, error)
	Reject(ctx context.Context, reviewer domain.Principal, id, comments string) (*domain.CustomsDocument, error)
}

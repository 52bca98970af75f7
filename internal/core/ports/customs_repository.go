package ports

import (
	"context"
	"time"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// CustomsDocumentPatch is a partial update of a customs document.
type CustomsDocumentPatch struct {
	ShipmentID    *string
	Title         *string
	Description   *string
	Destination   *string
	Status        *domain.DocumentStatus
	Progress      *int
	ClearanceDate *time.Time
	ApprovedBy    *string
	ApprovedAt    *time.Time
	RejectedBy    *string
	RejectedAt    *time.Time
	Comments      *string
}

// Apply copies the set fields onto d.
func (p CustomsDocumentPatch) Apply(d *domain.CustomsDocument) {
	setIf(&d.ShipmentID, p.ShipmentID)
	setIf(&d.Title, p.Title)
	setIf(&d.Description, p.Description)
	setIf(&d.Destination, p.Destination)
	setIf(&d.Status, p.Status)
	setIf(&d.Progress, p.Progress)
	setIf(&d.ApprovedBy, p.ApprovedBy)
	setIf(&d.RejectedBy, p.RejectedBy)
	setIf(&d.Comments, p.Comments)
	d.ClearanceDate = timeIf(d.ClearanceDate, p.ClearanceDate)
	d.ApprovedAt = timeIf(d.ApprovedAt, p.ApprovedAt)
	d.RejectedAt = timeIf(d.RejectedAt, p.RejectedAt)
}

// CustomsDocumentRepository defines persistence operations for documents.
type CustomsDocumentRepository interface {
	Create(ctx context.Context, doc *domain.CustomsDocument) (*domain.CustomsDocument, error)
	FindByID(ctx context.Context, id string) (*domain.CustomsDocument, error)
	// ListByOwner returns the user's documents, newest first.
	ListByOwner(ctx context.Context, userID string) ([]*domain.CustomsDocument, error)
	Update(ctx context.Context, id string, patch CustomsDocumentPatch) (*domain.CustomsDocument, error)
	// Count counts documents in the given status, or all documents when
	// status is empty.
	Count(ctx context.Context, status domain.DocumentStatus) (int64, error)
}

func timeIf(cur *time.Time, src *time.Time) *time.Time {
	if src == nil {
		return cur
	}
	t := *src
	return &t
}

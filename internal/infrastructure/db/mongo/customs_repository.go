package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

type CustomsDocumentRepository struct {
	col *mongo.Collection
}

func NewCustomsDocumentRepository(db *mongo.Database) *CustomsDocumentRepository {
	return &CustomsDocumentRepository{col: db.Collection(collectionDocuments)}
}

var _ ports.CustomsDocumentRepository = (*CustomsDocumentRepository)(nil)

type customsDocumentDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ShipmentID    string             `bson:"shipmentId"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description,omitempty"`
	Destination   string             `bson:"destination"`
	Status        string             `bson:"status"`
	Progress      int                `bson:"progress"`
	ClearanceDate *time.Time         `bson:"clearanceDate,omitempty"`
	UserID        primitive.ObjectID `bson:"userId"`
	ApprovedBy    primitive.ObjectID `bson:"approvedBy,omitempty"`
	ApprovedAt    *time.Time         `bson:"approvedAt,omitempty"`
	RejectedBy    primitive.ObjectID `bson:"rejectedBy,omitempty"`
	RejectedAt    *time.Time         `bson:"rejectedAt,omitempty"`
	Comments      string             `bson:"comments,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func (d *customsDocumentDoc) toDomain() *domain.CustomsDocument {
	status := domain.DocumentStatus(d.Status)
	if status == "" {
		status = domain.DocumentPending
	}
	return &domain.CustomsDocument{
		ID:            d.ID.Hex(),
		ShipmentID:    d.ShipmentID,
		Title:         d.Title,
		Description:   d.Description,
		Destination:   d.Destination,
		Status:        status,
		Progress:      d.Progress,
		ClearanceDate: d.ClearanceDate,
		UserID:        hexOrEmpty(d.UserID),
		ApprovedBy:    hexOrEmpty(d.ApprovedBy),
		ApprovedAt:    d.ApprovedAt,
		RejectedBy:    hexOrEmpty(d.RejectedBy),
		RejectedAt:    d.RejectedAt,
		Comments:      d.Comments,
		CreatedAt:     d.CreatedAt,
	}
}

func (r *CustomsDocumentRepository) Create(ctx context.Context, doc *domain.CustomsDocument) (*domain.CustomsDocument, error) {
	owner, ok := objectID(doc.UserID)
	if !ok {
		return nil, fmt.Errorf("insert customs document: invalid owner id %q", doc.UserID)
	}
	d := customsDocumentDoc{
		ShipmentID:    doc.ShipmentID,
		Title:         doc.Title,
		Description:   doc.Description,
		Destination:   doc.Destination,
		Status:        string(doc.Status),
		Progress:      doc.Progress,
		ClearanceDate: doc.ClearanceDate,
		UserID:        owner,
		Comments:      doc.Comments,
		CreatedAt:     doc.CreatedAt,
	}
	oid, err := insert(ctx, r.col, d)
	if err != nil {
		return nil, fmt.Errorf("insert customs document: %w", err)
	}
	d.ID = oid
	return d.toDomain(), nil
}

func (r *CustomsDocumentRepository) FindByID(ctx context.Context, id string) (*domain.CustomsDocument, error) {
	doc, err := findByID[customsDocumentDoc](ctx, r.col, id, domain.ErrDocumentNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CustomsDocumentRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.CustomsDocument, error) {
	owner, ok := objectID(userID)
	if !ok {
		return []*domain.CustomsDocument{}, nil
	}
	docs, err := findMany[customsDocumentDoc](ctx, r.col, bson.M{"userId": owner}, "createdAt", 0)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.CustomsDocument, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// Update writes exactly the fields present in patch. Progress is never
// derived from the status.
func (r *CustomsDocumentRepository) Update(ctx context.Context, id string, patch ports.CustomsDocumentPatch) (*domain.CustomsDocument, error) {
	set := setter{}
	put(set, "shipmentId", patch.ShipmentID)
	put(set, "title", patch.Title)
	put(set, "description", patch.Description)
	put(set, "destination", patch.Destination)
	put(set, "progress", patch.Progress)
	put(set, "clearanceDate", patch.ClearanceDate)
	put(set, "approvedAt", patch.ApprovedAt)
	put(set, "rejectedAt", patch.RejectedAt)
	put(set, "comments", patch.Comments)
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	for field, ref := range map[string]*string{"approvedBy": patch.ApprovedBy, "rejectedBy": patch.RejectedBy} {
		if ref == nil {
			continue
		}
		oid, ok := objectID(*ref)
		if !ok {
			return nil, fmt.Errorf("update customs document: invalid %s %q", field, *ref)
		}
		set[field] = oid
	}

	doc, err := updateByID[customsDocumentDoc](ctx, r.col, id, bson.M(set), domain.ErrDocumentNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CustomsDocumentRepository) Count(ctx context.Context, status domain.DocumentStatus) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	return count(ctx, r.col, filter)
}

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

// ActivityRepository implements ports.ActivityRepository on the append-only
// activitylogs collection.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities)}
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

// activityDoc stores relatedId as an ObjectID when it parses as one and as a
// plain string otherwise; older entries hold either form.
type activityDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Action      string             `bson:"action,omitempty"`
	Description string             `bson:"description"`
	Type        string             `bson:"type"`
	Timestamp   time.Time          `bson:"timestamp"`
	UserID      primitive.ObjectID `bson:"userId,omitempty"`
	RelatedID   any                `bson:"relatedId,omitempty"`
	RelatedType string             `bson:"relatedType,omitempty"`
}

func (d *activityDoc) toDomain() *domain.ActivityLog {
	var related string
	switch v := d.RelatedID.(type) {
	case primitive.ObjectID:
		related = v.Hex()
	case string:
		related = v
	}
	return &domain.ActivityLog{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Action:      d.Action,
		Description: d.Description,
		Type:        domain.ActivityType(d.Type),
		Timestamp:   d.Timestamp,
		UserID:      hexOrEmpty(d.UserID),
		RelatedID:   related,
		RelatedType: d.RelatedType,
	}
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.ActivityLog) (*domain.ActivityLog, error) {
	doc := activityDoc{
		Title:       entry.Title,
		Action:      entry.Action,
		Description: entry.Description,
		Type:        string(entry.Type),
		Timestamp:   entry.Timestamp,
		RelatedType: entry.RelatedType,
	}
	if oid, ok := objectID(entry.UserID); ok {
		doc.UserID = oid
	}
	if entry.RelatedID != "" {
		if oid, ok := objectID(entry.RelatedID); ok {
			doc.RelatedID = oid
		} else {
			doc.RelatedID = entry.RelatedID
		}
	}

	oid, err := insert(ctx, r.col, doc)
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ActivityLog, error) {
	owner, ok := objectID(userID)
	if !ok {
		return []*domain.ActivityLog{}, nil
	}
	return r.list(ctx, bson.M{"userId": owner}, limit)
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	return r.list(ctx, bson.M{}, limit)
}

func (r *ActivityRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return count(ctx, r.col, bson.M{"timestamp": bson.M{"$gte": since}})
}

func (r *ActivityRepository) list(ctx context.Context, filter bson.M, limit int) ([]*domain.ActivityLog, error) {
	docs, err := findMany[activityDoc](ctx, r.col, filter, "timestamp", limit)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ActivityLog, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

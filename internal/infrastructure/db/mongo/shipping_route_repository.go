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

type ShippingRouteRepository struct {
	col *mongo.Collection
}

func NewShippingRouteRepository(db *mongo.Database) *ShippingRouteRepository {
	return &ShippingRouteRepository{col: db.Collection(collectionRoutes)}
}

var _ ports.ShippingRouteRepository = (*ShippingRouteRepository)(nil)

type shippingRouteDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Origin          string             `bson:"origin"`
	Destination     string             `bson:"destination"`
	Distance        float64            `bson:"distance"`
	TransportMode   string             `bson:"transportMode"`
	TransitTime     float64            `bson:"transitTime"`
	Cost            float64            `bson:"cost"`
	CarbonFootprint float64            `bson:"carbonFootprint"`
	Efficiency      float64            `bson:"efficiency"`
	Status          string             `bson:"status"`
	UserID          primitive.ObjectID `bson:"userId"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func (d *shippingRouteDoc) toDomain() *domain.ShippingRoute {
	status := domain.RouteStatus(d.Status)
	if status == "" {
		status = domain.RouteActive
	}
	created := d.CreatedAt
	if created.IsZero() {
		created = d.ID.Timestamp().UTC()
	}
	return &domain.ShippingRoute{
		ID:              d.ID.Hex(),
		Origin:          d.Origin,
		Destination:     d.Destination,
		Distance:        d.Distance,
		TransportMode:   d.TransportMode,
		TransitTime:     d.TransitTime,
		Cost:            d.Cost,
		CarbonFootprint: d.CarbonFootprint,
		Efficiency:      d.Efficiency,
		Status:          status,
		UserID:          hexOrEmpty(d.UserID),
		CreatedAt:       created,
	}
}

func (r *ShippingRouteRepository) Create(ctx context.Context, route *domain.ShippingRoute) (*domain.ShippingRoute, error) {
	owner, ok := objectID(route.UserID)
	if !ok {
		return nil, fmt.Errorf("insert route: invalid owner id %q", route.UserID)
	}
	doc := shippingRouteDoc{
		Origin:          route.Origin,
		Destination:     route.Destination,
		Distance:        route.Distance,
		TransportMode:   route.TransportMode,
		TransitTime:     route.TransitTime,
		Cost:            route.Cost,
		CarbonFootprint: route.CarbonFootprint,
		Efficiency:      route.Efficiency,
		Status:          string(route.Status),
		UserID:          owner,
		CreatedAt:       route.CreatedAt,
	}
	oid, err := insert(ctx, r.col, doc)
	if err != nil {
		return nil, fmt.Errorf("insert route: %w", err)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *ShippingRouteRepository) FindByID(ctx context.Context, id string) (*domain.ShippingRoute, error) {
	doc, err := findByID[shippingRouteDoc](ctx, r.col, id, domain.ErrRouteNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ShippingRouteRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.ShippingRoute, error) {
	owner, ok := objectID(userID)
	if !ok {
		return []*domain.ShippingRoute{}, nil
	}
	docs, err := findMany[shippingRouteDoc](ctx, r.col, bson.M{"userId": owner}, "createdAt", 0)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ShippingRoute, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *ShippingRouteRepository) Update(ctx context.Context, id string, patch ports.ShippingRoutePatch) (*domain.ShippingRoute, error) {
	set := setter{}
	put(set, "origin", patch.Origin)
	put(set, "destination", patch.Destination)
	put(set, "distance", patch.Distance)
	put(set, "transportMode", patch.TransportMode)
	put(set, "transitTime", patch.TransitTime)
	put(set, "cost", patch.Cost)
	put(set, "carbonFootprint", patch.CarbonFootprint)
	put(set, "efficiency", patch.Efficiency)
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}

	doc, err := updateByID[shippingRouteDoc](ctx, r.col, id, bson.M(set), domain.ErrRouteNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ShippingRouteRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.col, bson.M{})
}

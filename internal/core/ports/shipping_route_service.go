package ports

import (
	"context"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// RouteGeometry is a GeoJSON LineString.
type RouteGeometry struct {
	Type        string               `json:"type"`
	Coordinates []domain.Coordinates `json:"coordinates"`
}

// RouteProperties are the attributes rendered on the map.
type RouteProperties struct {
	ID          string             `json:"id"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	Mode        string             `json:"mode"`
	Status      domain.RouteStatus `json:"status"`
	Color       string             `json:"color"`
}

// RouteFeature is one route drawn as a line.
type RouteFeature struct {
	Type       string          `json:"type"`
	Geometry   RouteGeometry   `json:"geometry"`
	Properties RouteProperties `json:"properties"`
}

// RouteMap is a GeoJSON FeatureCollection of the caller's routes.
type RouteMap struct {
	Type     string         `json:"type"`
	Features []RouteFeature `json:"features"`
}

// ShippingRouteService defines use-case operations for owner-scoped routes.
type ShippingRouteService interface {
	List(ctx context.Context, caller domain.Principal) ([]*domain.ShippingRoute, error)
	Get(ctx context.Context, caller domain.Principal, id string) (*domain.ShippingRoute, error)
	Create(ctx context.Context, caller domain.Principal, route domain.ShippingRoute) (*domain.ShippingRoute, error)
	Update(ctx context.Context, caller domain.Principal, id string, patch ShippingRoutePatch) (*domain.ShippingRoute, error)
	Map(ctx context.Context, caller domain.Principal) (*RouteMap, error)
}

package ports

import (
	"context"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// ShippingRoutePatch is a partial update of a route. The owner and creation
// time are not patchable.
type ShippingRoutePatch struct {
	Origin          *string
	Destination     *string
	Distance        *float64
	TransportMode   *string
	TransitTime     *float64
	Cost            *float64
	CarbonFootprint *float64
	Efficiency      *float64
	Status          *domain.RouteStatus
}

// Apply copies the set fields onto r.
func (p ShippingRoutePatch) Apply(r *domain.ShippingRoute) {
	setIf(&r.Origin, p.Origin)
	setIf(&r.Destination, p.Destination)
	setIf(&r.Distance, p.Distance)
	setIf(&r.TransportMode, p.TransportMode)
	setIf(&r.TransitTime, p.TransitTime)
	setIf(&r.Cost, p.Cost)
	setIf(&r.CarbonFootprint, p.CarbonFootprint)
	setIf(&r.Efficiency, p.Efficiency)
	setIf(&r.Status, p.Status)
}

// ShippingRouteRepository defines persistence operations for routes.
type ShippingRouteRepository interface {
	Create(ctx context.Context, route *domain.ShippingRoute) (*domain.ShippingRoute, error)
	FindByID(ctx context.Context, id string) (*domain.ShippingRoute, error)
	// ListByOwner returns the user's routes, newest first.
	ListByOwner(ctx context.Context, userID string) ([]*domain.ShippingRoute, error)
	Update(ctx context.Context, id string, patch ShippingRoutePatch) (*domain.ShippingRoute, error)
	Count(ctx context.Context) (int64, error)
}

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

type ShippingRouteService struct {
	repo   ports.ShippingRouteRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewShippingRouteService(repo ports.ShippingRouteRepository, logger zerolog.Logger) *ShippingRouteService {
	return &ShippingRouteService{repo: repo, logger: logger, now: time.Now}
}

// List returns the caller's routes, newest first.
func (s *ShippingRouteService) List(ctx context.Context, caller domain.Principal) ([]*domain.ShippingRoute, error) {
	return s.repo.ListByOwner(ctx, caller.UserID)
}

// Get returns a route owned by the caller.
func (s *ShippingRouteService) Get(ctx context.Context, caller domain.Principal, id string) (*domain.ShippingRoute, error) {
	route, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanPerform(caller, domain.ActionReadOwned, domain.Resource{OwnerID: route.UserID}) {
		return nil, domain.ErrForbidden
	}
	return route, nil
}

// Create stores a new route owned by the caller.
func (s *ShippingRouteService) Create(ctx context.Context, caller domain.Principal, route domain.ShippingRoute) (*domain.ShippingRoute, error) {
	route.UserID = caller.UserID
	route.CreatedAt = s.now().UTC()
	if route.Status == "" {
		route.Status = domain.RouteActive
	}

	created, err := s.repo.Create(ctx, &route)
	if err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}

	metrics.ResourcesCreatedTotal.WithLabelValues(domain.RelatedShippingRoute).Inc()
	s.logger.Info().
		Str("route_id", created.ID).
		Str("user_id", caller.UserID).
		Str("origin", created.Origin).
		Str("destination", created.Destination).
		Msg("shipping route created")
	return created, nil
}

// Update merges patch into a route owned by the caller.
func (s *ShippingRouteService) Update(ctx context.Context, caller domain.Principal, id string, patch ports.ShippingRoutePatch) (*domain.ShippingRoute, error) {
	route, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanPerform(caller, domain.ActionUpdateOwned, domain.Resource{OwnerID: route.UserID}) {
		return nil, domain.ErrForbidden
	}
	return s.repo.Update(ctx, id, patch)
}

// Map renders the caller's routes as GeoJSON line features. Routes whose
// endpoints are not in the city table are left out.
func (s *ShippingRouteService) Map(ctx context.Context, caller domain.Principal) (*ports.RouteMap, error) {
	routes, err := s.repo.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	out := &ports.RouteMap{Type: "FeatureCollection", Features: make([]ports.RouteFeature, 0, len(routes))}
	for _, r := range routes {
		from, ok := domain.LocateCity(r.Origin)
		if !ok {
			s.logger.Debug().Str("route_id", r.ID).Str("city", r.Origin).Msg("unknown origin, skipped on map")
			continue
		}
		to, ok := domain.LocateCity(r.Destination)
		if !ok {
			s.logger.Debug().Str("route_id", r.ID).Str("city", r.Destination).Msg("unknown destination, skipped on map")
			continue
		}

		out.Features = append(out.Features, ports.RouteFeature{
			Type: "Feature",
			Geometry: ports.RouteGeometry{
				Type:        "LineString",
				Coordinates: []domain.Coordinates{from, to},
			},
			Properties: ports.RouteProperties{
				ID:          r.ID,
				Origin:      r.Origin,
				Destination: r.Destination,
				Mode:        r.TransportMode,
				Status:      r.Status,
				Color:       r.Status.Color(),
			},
		})
	}
	return out, nil
}

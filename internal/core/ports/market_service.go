package ports

import (
	"context"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// MarketDataService defines use-case operations for market quotes. Write
// access is gated by the router.
type MarketDataService interface {
	List(ctx context.Context) ([]*domain.MarketData, error)
	ListByProduct(ctx context.Context, productName string) ([]*domain.MarketData, error)
	Get(ctx context.Context, id string) (*domain.MarketData, error)
	Create(ctx context.Context, m domain.MarketData) (*domain.MarketData, error)
	Update(ctx context.Context, id string, patch MarketDataPatch) (*domain.MarketData, error)
}

// CurrencyRateService defines use-case operations for exchange rates.
type CurrencyRateService interface {
	List(ctx context.Context) ([]*domain.CurrencyExchangeRate, error)
	Get(ctx context.Context, id string) (*domain.CurrencyExchangeRate, error)
	Create(ctx context.Context, r domain.CurrencyExchangeRate) (*domain.CurrencyExchangeRate, error)
	Update(ctx context.Context, id string, patch CurrencyRatePatch) (*domain.CurrencyExchangeRate, error)
}

// OpportunityService defines use-case operations for market opportunities.
type OpportunityService interface {
	List(ctx context.Context) ([]*domain.MarketOpportunity, error)
	Get(ctx context.Context, id string) (*domain.MarketOpportunity, error)
	Create(ctx context.Context, o domain.MarketOpportunity) (*domain.MarketOpportunity, error)
	Update(ctx context.Context, id string, patch OpportunityPatch) (*domain.MarketOpportunity, error)
}

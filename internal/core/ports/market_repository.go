package ports

import (
	"context"
	"time"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
)

// MarketDataPatch is a partial update of a market quote.
type MarketDataPatch struct {
	ProductName    *string
	Category       *string
	CurrentPrice   *float64
	PriceChange    *float64
	Currency       *string
	MarketPlace    *string
	HistoricalData *[]domain.PricePoint
	Timestamp      *time.Time
}

// Apply copies the set fields onto m.
func (p MarketDataPatch) Apply(m *domain.MarketData) {
	setIf(&m.ProductName, p.ProductName)
	setIf(&m.Category, p.Category)
	setIf(&m.CurrentPrice, p.CurrentPrice)
	setIf(&m.PriceChange, p.PriceChange)
	setIf(&m.Currency, p.Currency)
	setIf(&m.MarketPlace, p.MarketPlace)
	setIf(&m.HistoricalData, p.HistoricalData)
	setIf(&m.Timestamp, p.Timestamp)
}

// MarketDataRepository defines persistence operations for market quotes.
type MarketDataRepository interface {
	Create(ctx context.Context, m *domain.MarketData) (*domain.MarketData, error)
	FindByID(ctx context.Context, id string) (*domain.MarketData, error)
	// List returns quotes newest first. A non-empty productName restricts the
	// result to that exact product.
	List(ctx context.Context, productName string) ([]*domain.MarketData, error)
	Update(ctx context.Context, id string, patch MarketDataPatch) (*domain.MarketData, error)
	Count(ctx context.Context) (int64, error)
}

// CurrencyRatePatch is a partial update of an exchange rate.
type CurrencyRatePatch struct {
	BaseCurrency   *string
	TargetCurrency *string
	Rate           *float64
	Change         *float64
	LastUpdated    *time.Time
}

// Apply copies the set fields onto r.
func (p CurrencyRatePatch) Apply(r *domain.CurrencyExchangeRate) {
	setIf(&r.BaseCurrency, p.BaseCurrency)
	setIf(&r.TargetCurrency, p.TargetCurrency)
	setIf(&r.Rate, p.Rate)
	setIf(&r.Change, p.Change)
	setIf(&r.LastUpdated, p.LastUpdated)
}

// CurrencyRateRepository defines persistence operations for exchange rates.
type CurrencyRateRepository interface {
	Create(ctx context.Context, r *domain.CurrencyExchangeRate) (*domain.CurrencyExchangeRate, error)
	FindByID(ctx context.Context, id string) (*domain.CurrencyExchangeRate, error)
	// List returns rates, most recently updated first.
	List(ctx context.Context) ([]*domain.CurrencyExchangeRate, error)
	Update(ctx context.Context, id string, patch CurrencyRatePatch) (*domain.CurrencyExchangeRate, error)
}

// OpportunityPatch is a partial update of a market opportunity.
type OpportunityPatch struct {
	Title          *string
	Description    *string
	PotentialLevel *domain.PotentialLevel
	ProfitMargin   *float64
	Market         *string
	Product        *string
	IsBookmarked   *bool
}

// Apply copies the set fields onto o.
func (p OpportunityPatch) Apply(o *domain.MarketOpportunity) {
	setIf(&o.Title, p.Title)
	setIf(&o.Description, p.Description)
	setIf(&o.PotentialLevel, p.PotentialLevel)
	setIf(&o.ProfitMargin, p.ProfitMargin)
	setIf(&o.Market, p.Market)
	setIf(&o.Product, p.Product)
	setIf(&o.IsBookmarked, p.IsBookmarked)
}

// OpportunityRepository defines persistence operations for opportunities.
type OpportunityRepository interface {
	Create(ctx context.Context, o *domain.MarketOpportunity) (*domain.MarketOpportunity, error)
	FindByID(ctx context.Context, id string) (*domain.MarketOpportunity, error)
	// List returns opportunities, newest first.
	List(ctx context.Context) ([]*domain.MarketOpportunity, error)
	Update(ctx context.Context, id string, patch OpportunityPatch) (*domain.MarketOpportunity, error)
}

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

// MarketDataService serves market quotes. Writes are gated before they reach
// the service.
type MarketDataService struct {
	repo ports.MarketDataRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewMarketDataService(repo ports.MarketDataRepository, log zerolog.Logger) *MarketDataService {
	return &MarketDataService{repo: repo, log: log, now: time.Now}
}

func (s *MarketDataService) List(ctx context.Context) ([]*domain.MarketData, error) {
	return s.repo.List(ctx, "")
}

func (s *MarketDataService) ListByProduct(ctx context.Context, productName string) ([]*domain.MarketData, error) {
	return s.repo.List(ctx, productName)
}

func (s *MarketDataService) Get(ctx context.Context, id string) (*domain.MarketData, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MarketDataService) Create(ctx context.Context, m domain.MarketData) (*domain.MarketData, error) {
	if m.Currency == "" {
		m.Currency = domain.DefaultCurrency
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = s.now().UTC()
	}

	created, err := s.repo.Create(ctx, &m)
	if err != nil {
		return nil, fmt.Errorf("create market data: %w", err)
	}
	metrics.ResourcesCreatedTotal.WithLabelValues(domain.RelatedMarketData).Inc()
	return created, nil
}

func (s *MarketDataService) Update(ctx context.Context, id string, patch ports.MarketDataPatch) (*domain.MarketData, error) {
	return s.repo.Update(ctx, id, patch)
}

// CurrencyRateService serves exchange rates.
type CurrencyRateService struct {
	repo ports.CurrencyRateRepository
	now  func() time.Time
}

func NewCurrencyRateService(repo ports.CurrencyRateRepository) *CurrencyRateService {
	return &CurrencyRateService{repo: repo, now: time.Now}
}

func (s *CurrencyRateService) List(ctx context.Context) ([]*domain.CurrencyExchangeRate, error) {
	return s.repo.List(ctx)
}

func (s *CurrencyRateService) Get(ctx context.Context, id string) (*domain.CurrencyExchangeRate, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CurrencyRateService) Create(ctx context.Context, r domain.CurrencyExchangeRate) (*domain.CurrencyExchangeRate, error) {
	r.LastUpdated = s.now().UTC()

	created, err := s.repo.Create(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("create currency rate: %w", err)
	}
	metrics.ResourcesCreatedTotal.WithLabelValues("currency_rate").Inc()
	return created, nil
}

// Update merges patch and restamps lastUpdated.
func (s *CurrencyRateService) Update(ctx context.Context, id string, patch ports.CurrencyRatePatch) (*domain.CurrencyExchangeRate, error) {
	now := s.now().UTC()
	patch.LastUpdated = &now
	return s.repo.Update(ctx, id, patch)
}

// OpportunityService serves market opportunities.
type OpportunityService struct {
	repo ports.OpportunityRepository
	now  func() time.Time
}

func NewOpportunityService(repo ports.OpportunityRepository) *OpportunityService {
	return &OpportunityService{repo: repo, now: time.Now}
}

func (s *OpportunityService) List(ctx context.Context) ([]*domain.MarketOpportunity, error) {
	return s.repo.List(ctx)
}

func (s *OpportunityService) Get(ctx context.Context, id string) (*domain.MarketOpportunity, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OpportunityService) Create(ctx context.Context, o domain.MarketOpportunity) (*domain.MarketOpportunity, error) {
	o.CreatedAt = s.now().UTC()

	created, err := s.repo.Create(ctx, &o)
	if err != nil {
		return nil, fmt.Errorf("create opportunity: %w", err)
	}
	metrics.ResourcesCreatedTotal.WithLabelValues(domain.RelatedMarketOpportunity).Inc()
	return created, nil
}

// Update merges patch. isBookmarked is a single shared flag.
func (s *OpportunityService) Update(ctx context.Context, id string, patch ports.OpportunityPatch) (*domain.MarketOpportunity, error) {
	return s.repo.Update(ctx, id, patch)
}

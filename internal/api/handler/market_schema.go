package handler

import (
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

// --- Market data ---

type pricePointRequest struct {
	Name  string  `json:"name"  validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type createMarketDataRequest struct {
	ProductName    string              `json:"productName"    validate:"required"`
	Category       string              `json:"category"       validate:"required"`
	CurrentPrice   *float64            `json:"currentPrice"   validate:"required,gte=0"`
	PriceChange    float64             `json:"priceChange"`
	Currency       string              `json:"currency"       validate:"omitempty,len=3"`
	MarketPlace    string              `json:"marketPlace"`
	HistoricalData []pricePointRequest `json:"historicalData" validate:"omitempty,dive"`
}

type updateMarketDataRequest struct {
	ProductName    *string              `json:"productName"    validate:"omitempty,min=1"`
	Category       *string              `json:"category"       validate:"omitempty,min=1"`
	CurrentPrice   *float64             `json:"currentPrice"   validate:"omitempty,gte=0"`
	PriceChange    *float64             `json:"priceChange"`
	Currency       *string              `json:"currency"       validate:"omitempty,len=3"`
	MarketPlace    *string              `json:"marketPlace"`
	HistoricalData *[]pricePointRequest `json:"historicalData" validate:"omitempty,dive"`
}

func pricePoints(in []pricePointRequest) []domain.PricePoint {
	if in == nil {
		return nil
	}
	out := make([]domain.PricePoint, len(in))
	for i, p := range in {
		out[i] = domain.PricePoint{Name: p.Name, Price: p.Price}
	}
	return out
}

func (r createMarketDataRequest) toDomain() domain.MarketData {
	return domain.MarketData{
		ProductName:    r.ProductName,
		Category:       r.Category,
		CurrentPrice:   *r.CurrentPrice,
		PriceChange:    r.PriceChange,
		Currency:       r.Currency,
		MarketPlace:    r.MarketPlace,
		HistoricalData: pricePoints(r.HistoricalData),
	}
}

func (r updateMarketDataRequest) toPatch() ports.MarketDataPatch {
	patch := ports.MarketDataPatch{
		ProductName:  r.ProductName,
		Category:     r.Category,
		CurrentPrice: r.CurrentPrice,
		PriceChange:  r.PriceChange,
		Currency:     r.Currency,
		MarketPlace:  r.MarketPlace,
	}
	if r.HistoricalData != nil {
		points := pricePoints(*r.HistoricalData)
		patch.HistoricalData = &points
	}
	return patch
}

// --- Currency exchange rates ---

type createCurrencyRateRequest struct {
	BaseCurrency   string   `json:"baseCurrency"   validate:"required,len=3"`
	TargetCurrency string   `json:"targetCurrency" validate:"required,len=3"`
	Rate           *float64 `json:"rate"           validate:"required,gt=0"`
	Change         float64  `json:"change"`
}

type updateCurrencyRateRequest struct {
	BaseCurrency   *string  `json:"baseCurrency"   validate:"omitempty,len=3"`
	TargetCurrency *string  `json:"targetCurrency" validate:"omitempty,len=3"`
	Rate           *float64 `json:"rate"           validate:"omitempty,gt=0"`
	Change         *float64 `json:"change"`
}

func (r createCurrencyRateRequest) toDomain() domain.CurrencyExchangeRate {
	return domain.CurrencyExchangeRate{
		BaseCurrency:   r.BaseCurrency,
		TargetCurrency: r.TargetCurrency,
		Rate:           *r.Rate,
		Change:         r.Change,
	}
}

func (r updateCurrencyRateRequest) toPatch() ports.CurrencyRatePatch {
	return ports.CurrencyRatePatch{
		BaseCurrency:   r.BaseCurrency,
		TargetCurrency: r.TargetCurrency,
		Rate:           r.Rate,
		Change:         r.Change,
	}
}

// --- Market opportunities ---

type createOpportunityRequest struct {
	Title          string  `json:"title"          validate:"required"`
	Description    string  `json:"description"    validate:"required"`
	PotentialLevel string  `json:"potentialLevel" validate:"required,oneof=High Medium Emerging"`
	ProfitMargin   float64 `json:"profitMargin"`
	Market         string  `json:"market"         validate:"required"`
	Product        string  `json:"product"        validate:"required"`
	IsBookmarked   bool    `json:"isBookmarked"`
}

type updateOpportunityRequest struct {
	Title          *string  `json:"title"          validate:"omitempty,min=1"`
	Description    *string  `json:"description"    validate:"omitempty,min=1"`
	PotentialLevel *string  `json:"potentialLevel" validate:"omitempty,oneof=High Medium Emerging"`
	ProfitMargin   *float64 `json:"profitMargin"`
	Market         *string  `json:"market"         validate:"omitempty,min=1"`
	Product        *string  `json:"product"        validate:"omitempty,min=1"`
	IsBookmarked   *bool    `json:"isBookmarked"`
}

func (r createOpportunityRequest) toDomain() domain.MarketOpportunity {
	return domain.MarketOpportunity{
		Title:          r.Title,
		Description:    r.Description,
		PotentialLevel: domain.PotentialLevel(r.PotentialLevel),
		ProfitMargin:   r.ProfitMargin,
		Market:         r.Market,
		Product:        r.Product,
		IsBookmarked:   r.IsBookmarked,
	}
}

func (r updateOpportunityRequest) toPatch() ports.OpportunityPatch {
	patch := ports.OpportunityPatch{
		Title:        r.Title,
		Description:  r.Description,
		ProfitMargin: r.ProfitMargin,
		Market:       r.Market,
		Product:      r.Product,
		IsBookmarked: r.IsBookmarked,
	}
	if r.PotentialLevel != nil {
		level := domain.PotentialLevel(*r.PotentialLevel)
		patch.PotentialLevel = &level
	}
	return patch
}

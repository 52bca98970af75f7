package domain

import "time"

const DefaultCurrency = "USD"

// PricePoint is one sample of a product's price history.
type PricePoint struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MarketData is the latest quote of a traded product.
type MarketData struct {
	ID             string       `json:"id"`
	ProductName    string       `json:"productName"`
	Category       string       `json:"category"`
	CurrentPrice   float64      `json:"currentPrice"`
	PriceChange    float64      `json:"priceChange"`
	Currency       string       `json:"currency"`
	MarketPlace    string       `json:"marketPlace"`
	HistoricalData []PricePoint `json:"historicalData,omitempty"`
	Timestamp      time.Time    `json:"timestamp"`
}

// CurrencyExchangeRate quotes one currency pair. Rates are global.
type CurrencyExchangeRate struct {
	ID             string    `json:"id"`
	BaseCurrency   string    `json:"baseCurrency"`
	TargetCurrency string    `json:"targetCurrency"`
	Rate           float64   `json:"rate"`
	Change         float64   `json:"change"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// PotentialLevel grades a market opportunity.
type PotentialLevel string

const (
	PotentialHigh     PotentialLevel = "High"
	PotentialMedium   PotentialLevel = "Medium"
	PotentialEmerging PotentialLevel = "Emerging"
)

// MarketOpportunity is a trade lead visible to every user.
//
// IsBookmarked is one flag shared by all users; there is no per-user bookmark.
type MarketOpportunity struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	PotentialLevel PotentialLevel `json:"potentialLevel"`
	ProfitMargin   float64        `json:"profitMargin"`
	Market         string         `json:"market"`
	Product        string         `json:"product"`
	IsBookmarked   bool           `json:"isBookmarked"`
	CreatedAt      time.Time      `json:"createdAt"`
}

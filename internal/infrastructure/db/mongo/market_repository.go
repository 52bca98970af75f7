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

// ----------------------------------------------------------------------------
// Market data
// ----------------------------------------------------------------------------

type MarketDataRepository struct {
	col *mongo.Collection
}

func NewMarketDataRepository(db *mongo.Database) *MarketDataRepository {
	return &MarketDataRepository{col: db.Collection(collectionMarketData)}
}

var _ ports.MarketDataRepository = (*MarketDataRepository)(nil)

type pricePointDoc struct {
	Name  string  `bson:"name"`
	Price float64 `bson:"price"`
}

type marketDataDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ProductName    string             `bson:"productName"`
	Category       string             `bson:"category"`
	CurrentPrice   float64            `bson:"currentPrice"`
	PriceChange    float64            `bson:"priceChange"`
	Currency       string             `bson:"currency"`
	MarketPlace    string             `bson:"marketPlace,omitempty"`
	HistoricalData []pricePointDoc    `bson:"historicalData,omitempty"`
	Timestamp      time.Time          `bson:"timestamp"`
}

func toPricePointDocs(points []domain.PricePoint) []pricePointDoc {
	if points == nil {
		return nil
	}
	out := make([]pricePointDoc, len(points))
	for i, p := range points {
		out[i] = pricePointDoc(p)
	}
	return out
}

func (d *marketDataDoc) toDomain() *domain.MarketData {
	var history []domain.PricePoint
	if d.HistoricalData != nil {
		history = make([]domain.PricePoint, len(d.HistoricalData))
		for i, p := range d.HistoricalData {
			history[i] = domain.PricePoint(p)
		}
	}
	return &domain.MarketData{
		ID:             d.ID.Hex(),
		ProductName:    d.ProductName,
		Category:       d.Category,
		CurrentPrice:   d.CurrentPrice,
		PriceChange:    d.PriceChange,
		Currency:       d.Currency,
		MarketPlace:    d.MarketPlace,
		HistoricalData: history,
		Timestamp:      d.Timestamp,
	}
}

func (r *MarketDataRepository) Create(ctx context.Context, m *domain.MarketData) (*domain.MarketData, error) {
	doc := marketDataDoc{
		ProductName:    m.ProductName,
		Category:       m.Category,
		CurrentPrice:   m.CurrentPrice,
		PriceChange:    m.PriceChange,
		Currency:       m.Currency,
		MarketPlace:    m.MarketPlace,
		HistoricalData: toPricePointDocs(m.HistoricalData),
		Timestamp:      m.Timestamp,
	}
	oid, err := insert(ctx, r.col, doc)
	if err != nil {
		return nil, fmt.Errorf("insert market data: %w", err)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *MarketDataRepository) FindByID(ctx context.Context, id string) (*domain.MarketData, error) {
	doc, err := findByID[marketDataDoc](ctx, r.col, id, domain.ErrMarketDataNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MarketDataRepository) List(ctx context.Context, productName string) ([]*domain.MarketData, error) {
	filter := bson.M{}
	if productName != "" {
		filter["productName"] = productName
	}
	docs, err := findMany[marketDataDoc](ctx, r.col, filter, "timestamp", 0)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.MarketData, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *MarketDataRepository) Update(ctx context.Context, id string, patch ports.MarketDataPatch) (*domain.MarketData, error) {
	set := setter{}
	put(set, "productName", patch.ProductName)
	put(set, "category", patch.Category)
	put(set, "currentPrice", patch.CurrentPrice)
	put(set, "priceChange", patch.PriceChange)
	put(set, "currency", patch.Currency)
	put(set, "marketPlace", patch.MarketPlace)
	put(set, "timestamp", patch.Timestamp)
	if patch.HistoricalData != nil {
		set["historicalData"] = toPricePointDocs(*patch.HistoricalData)
	}

	doc, err := updateByID[marketDataDoc](ctx, r.col, id, bson.M(set), domain.ErrMarketDataNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MarketDataRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.col, bson.M{})
}

// ----------------------------------------------------------------------------
// Currency exchange rates
// ----------------------------------------------------------------------------

type CurrencyRateRepository struct {
	col *mongo.Collection
}

func NewCurrencyRateRepository(db *mongo.Database) *CurrencyRateRepository {
	return &CurrencyRateRepository{col: db.Collection(collectionRates)}
}

var _ ports.CurrencyRateRepository = (*CurrencyRateRepository)(nil)

type currencyRateDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	BaseCurrency   string             `bson:"baseCurrency"`
	TargetCurrency string             `bson:"targetCurrency"`
	Rate           float64            `bson:"rate"`
	Change         float64            `bson:"change"`
	LastUpdated    time.Time          `bson:"lastUpdated"`
}

func (d *currencyRateDoc) toDomain() *domain.CurrencyExchangeRate {
	return &domain.CurrencyExchangeRate{
		ID:             d.ID.Hex(),
		BaseCurrency:   d.BaseCurrency,
		TargetCurrency: d.TargetCurrency,
		Rate:           d.Rate,
		Change:         d.Change,
		LastUpdated:    d.LastUpdated,
	}
}

func (r *CurrencyRateRepository) Create(ctx context.Context, rate *domain.CurrencyExchangeRate) (*domain.CurrencyExchangeRate, error) {
	doc := currencyRateDoc{
		BaseCurrency:   rate.BaseCurrency,
		TargetCurrency: rate.TargetCurrency,
		Rate:           rate.Rate,
		Change:         rate.Change,
		LastUpdated:    rate.LastUpdated,
	}
	oid, err := insert(ctx, r.col, doc)
	if err != nil {
		return nil, fmt.Errorf("insert currency rate: %w", err)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *CurrencyRateRepository) FindByID(ctx context.Context, id string) (*domain.CurrencyExchangeRate, error) {
	doc, err := findByID[currencyRateDoc](ctx, r.col, id, domain.ErrRateNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CurrencyRateRepository) List(ctx context.Context) ([]*domain.CurrencyExchangeRate, error) {
	docs, err := findMany[currencyRateDoc](ctx, r.col, bson.M{}, "lastUpdated", 0)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.CurrencyExchangeRate, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *CurrencyRateRepository) Update(ctx context.Context, id string, patch ports.CurrencyRatePatch) (*domain.CurrencyExchangeRate, error) {
	set := setter{}
	put(set, "baseCurrency", patch.BaseCurrency)
	put(set, "targetCurrency", patch.TargetCurrency)
	put(set, "rate", patch.Rate)
	put(set, "change", patch.Change)
	put(set, "lastUpdated", patch.LastUpdated)

	doc, err := updateByID[currencyRateDoc](ctx, r.col, id, bson.M(set), domain.ErrRateNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// ----------------------------------------------------------------------------
// Market opportunities
// ----------------------------------------------------------------------------

type OpportunityRepository struct {
	col *mongo.Collection
}

func NewOpportunityRepository(db *mongo.Database) *OpportunityRepository {
	return &OpportunityRepository{col: db.Collection(collectionOpportunities)}
}

var _ ports.OpportunityRepository = (*OpportunityRepository)(nil)

type opportunityDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description"`
	PotentialLevel string             `bson:"potentialLevel"`
	ProfitMargin   float64            `bson:"profitMargin"`
	Market         string             `bson:"market"`
	Product        string             `bson:"product"`
	IsBookmarked   bool               `bson:"isBookmarked"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

func (d *opportunityDoc) toDomain() *domain.MarketOpportunity {
	return &domain.MarketOpportunity{
		ID:             d.ID.Hex(),
		Title:          d.Title,
		Description:    d.Description,
		PotentialLevel: domain.PotentialLevel(d.PotentialLevel),
		ProfitMargin:   d.ProfitMargin,
		Market:         d.Market,
		Product:        d.Product,
		IsBookmarked:   d.IsBookmarked,
		CreatedAt:      d.CreatedAt,
	}
}

func (r *OpportunityRepository) Create(ctx context.Context, o *domain.MarketOpportunity) (*domain.MarketOpportunity, error) {
	doc := opportunityDoc{
		Title:          o.Title,
		Description:    o.Description,
		PotentialLevel: string(o.PotentialLevel),
		ProfitMargin:   o.ProfitMargin,
		Market:         o.Market,
		Product:        o.Product,
		IsBookmarked:   o.IsBookmarked,
		CreatedAt:      o.CreatedAt,
	}
	oid, err := insert(ctx, r.col, doc)
	if err != nil {
		return nil, fmt.Errorf("insert opportunity: %w", err)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *OpportunityRepository) FindByID(ctx context.Context, id string) (*domain.MarketOpportunity, error) {
	doc, err := findByID[opportunityDoc](ctx, r.col, id, domain.ErrOpportunityNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *OpportunityRepository) List(ctx context.Context) ([]*domain.MarketOpportunity, error) {
	docs, err := findMany[opportunityDoc](ctx, r.col, bson.M{}, "createdAt", 0)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.MarketOpportunity, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *OpportunityRepository) Update(ctx context.Context, id string, patch ports.OpportunityPatch) (*domain.MarketOpportunity, error) {
	set := setter{}
	put(set, "title", patch.Title)
	put(set, "description", patch.Description)
	put(set, "profitMargin", patch.ProfitMargin)
	put(set, "market", patch.Market)
	put(set, "product", patch.Product)
	put(set, "isBookmarked", patch.IsBookmarked)
	if patch.PotentialLevel != nil {
		set["potentialLevel"] = string(*patch.PotentialLevel)
	}

	doc, err := updateByID[opportunityDoc](ctx, r.col, id, bson.M(set), domain.ErrOpportunityNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

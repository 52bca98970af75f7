package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

const demoPassword = "password"

// SeedRepositories holds every collection touched by the seeder.
type SeedRepositories struct {
	Users         ports.UserRepository
	MarketData    ports.MarketDataRepository
	Routes        ports.ShippingRouteRepository
	Documents     ports.CustomsDocumentRepository
	Rates         ports.CurrencyRateRepository
	Opportunities ports.OpportunityRepository
	Activities    ports.ActivityRepository
}

// BootstrapAdmin describes the superadmin created at startup when configured.
type BootstrapAdmin struct {
	Username string
	Password string
	Email    string
}

// Seeder populates an empty database with the demo dataset.
type Seeder struct {
	repos SeedRepositories
	log   zerolog.Logger
	now   func() time.Time
}

func NewSeeder(repos SeedRepositories, log zerolog.Logger) *Seeder {
	return &Seeder{repos: repos, log: log, now: time.Now}
}

// EnsureSuperAdmin creates the bootstrap superadmin unless the username is
// already taken. It is a no-op when username or password is empty.
func (s *Seeder) EnsureSuperAdmin(ctx context.Context, admin BootstrapAdmin) error {
	if admin.Username == "" || admin.Password == "" {
		return nil
	}

	_, err := s.repos.Users.FindByUsername(ctx, admin.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("lookup bootstrap superadmin: %w", err)
	}

	hash, err := hashPassword(admin.Password)
	if err != nil {
		return err
	}
	email := admin.Email
	if email == "" {
		email = admin.Username + "@localhost"
	}

	_, err = s.repos.Users.Create(ctx, &domain.User{
		Username:      admin.Username,
		Email:         email,
		PasswordHash:  hash,
		FullName:      "Super Administrator",
		Role:          domain.RoleSuperAdmin,
		IsActive:      true,
		Notifications: domain.DefaultNotificationSettings(),
		CreatedAt:     s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("create bootstrap superadmin: %w", err)
	}
	s.log.Info().Str("username", admin.Username).Msg("bootstrap superadmin created")
	return nil
}

// SeedDemo inserts the demo dataset when no user exists yet. It reports
// whether anything was written.
func (s *Seeder) SeedDemo(ctx context.Context) (bool, error) {
	n, err := s.repos.Users.Count(ctx, ports.UserCountFilter{})
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		s.log.Debug().Int64("users", n).Msg("database not empty, demo seed skipped")
		return false, nil
	}

	now := s.now().UTC()

	david, err := s.demoUser(ctx, "david", "david@example.com", "David Muhire", "DDD Logistics", now)
	if err != nil {
		return false, err
	}
	kagi, err := s.demoUser(ctx, "kagi", "kagi@example.com", "Isaac Kagenza", "IMC Trading", now)
	if err != nil {
		return false, err
	}

	var coffeeID string
	for _, m := range demoMarketData() {
		m.Timestamp = now
		created, err := s.repos.MarketData.Create(ctx, &m)
		if err != nil {
			return false, fmt.Errorf("seed market data: %w", err)
		}
		if created.ProductName == "Coffee Arabica" {
			coffeeID = created.ID
		}
	}

	routes := make(map[string]string)
	for _, r := range demoRoutes(david.ID, kagi.ID) {
		r.CreatedAt = now
		created, err := s.repos.Routes.Create(ctx, &r)
		if err != nil {
			return false, fmt.Errorf("seed shipping route: %w", err)
		}
		routes[created.Destination] = created.ID
	}

	docs := make(map[string]string)
	for _, d := range demoDocuments(david.ID, kagi.ID, now) {
		d.CreatedAt = now
		created, err := s.repos.Documents.Create(ctx, &d)
		if err != nil {
			return false, fmt.Errorf("seed customs document: %w", err)
		}
		docs[created.Title] = created.ID
	}

	for _, r := range demoRates() {
		r.LastUpdated = now
		if _, err := s.repos.Rates.Create(ctx, &r); err != nil {
			return false, fmt.Errorf("seed currency rate: %w", err)
		}
	}

	var euCoffeeID string
	for _, o := range demoOpportunities() {
		o.CreatedAt = now
		created, err := s.repos.Opportunities.Create(ctx, &o)
		if err != nil {
			return false, fmt.Errorf("seed opportunity: %w", err)
		}
		if created.Title == "Premium Coffee Export to EU" {
			euCoffeeID = created.ID
		}
	}

	activities := []domain.ActivityLog{
		{Title: "New Shipping Route Added", Description: "Route from Kigali to Dubai has been added to your shipping options.",
			Type: domain.ActivityShipping, UserID: david.ID, RelatedID: routes["Dubai"], RelatedType: domain.RelatedShippingRoute},
		{Title: "Weather Alert: Port of Mombasa", Description: "Heavy rainfall forecasted at Port of Mombasa may cause delays.",
			Type: domain.ActivityWeather, UserID: david.ID, RelatedID: routes["Mombasa"], RelatedType: domain.RelatedShippingRoute},
		{Title: "Market Price Alert", Description: "Coffee prices have increased by 3.5% in the last 24 hours.",
			Type: domain.ActivityMarket, UserID: david.ID, RelatedID: coffeeID, RelatedType: domain.RelatedMarketData},
		{Title: "Document Processed", Description: "Your Coffee Export Certificate has been cleared by customs.",
			Type: domain.ActivityDocument, UserID: david.ID, RelatedID: docs["Coffee Export Certificate"], RelatedType: domain.RelatedCustomsDocument},
		{Title: "New Market Opportunity", Description: "New opportunity identified in European specialty coffee market.",
			Type: domain.ActivityMarket, UserID: kagi.ID, RelatedID: euCoffeeID, RelatedType: domain.RelatedMarketOpportunity},
		{Title: "Shipping Cost Reduction", Description: "Your shipping costs have been optimized, saving 12%.",
			Type: domain.ActivityShipping, UserID: kagi.ID, RelatedID: routes["Dar es Salaam"], RelatedType: domain.RelatedShippingRoute},
		{Title: "Customs Documentation Update", Description: "Tea Export Certificate is awaiting final approval.",
			Type: domain.ActivityDocument, UserID: kagi.ID, RelatedID: docs["Tea Export Certificate"], RelatedType: domain.RelatedCustomsDocument},
	}
	for i, a := range activities {
		// keep insertion order visible in newest-first listings
		a.Timestamp = now.Add(time.Duration(i) * time.Second)
		if _, err := s.repos.Activities.Insert(ctx, &a); err != nil {
			return false, fmt.Errorf("seed activity: %w", err)
		}
	}

	s.log.Info().Msg("demo dataset seeded")
	return true, nil
}

func (s *Seeder) demoUser(ctx context.Context, username, email, fullName, company string, now time.Time) (*domain.User, error) {
	hash, err := hashPassword(demoPassword)
	if err != nil {
		return nil, err
	}
	u, err := s.repos.Users.Create(ctx, &domain.User{
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		FullName:      fullName,
		Company:       company,
		Role:          domain.RoleTrader,
		IsActive:      true,
		Notifications: domain.DefaultNotificationSettings(),
		CreatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("seed user %s: %w", username, err)
	}
	return u, nil
}

func demoMarketData() []domain.MarketData {
	return []domain.MarketData{
		{ProductName: "Coffee Arabica", Category: "Agriculture", CurrentPrice: 4.25, PriceChange: 0.15, Currency: "USD", MarketPlace: "Rwanda Commodities Exchange"},
		{ProductName: "Tea Premium", Category: "Agriculture", CurrentPrice: 2.85, PriceChange: -0.05, Currency: "USD", MarketPlace: "Mombasa Tea Auction"},
		{ProductName: "Electronics Components", Category: "Technology", CurrentPrice: 120.50, PriceChange: 3.75, Currency: "USD", MarketPlace: "China Import Market"},
		{ProductName: "Textiles Cotton", Category: "Textiles", CurrentPrice: 3.65, PriceChange: 0.20, Currency: "USD", MarketPlace: "East Africa Trade Hub"},
		{ProductName: "Minerals Coltan", Category: "Mining", CurrentPrice: 65.30, PriceChange: 5.20, Currency: "USD", MarketPlace: "Rwanda Mining Board"},
	}
}

func demoRoutes(david, kagi string) []domain.ShippingRoute {
	return []domain.ShippingRoute{
		{Origin: "Kigali", Destination: "Nairobi", Distance: 840, TransportMode: "Road", TransitTime: 2.5, Cost: 1200, CarbonFootprint: 45, Efficiency: 82, Status: domain.RouteActive, UserID: david},
		{Origin: "Kigali", Destination: "Mombasa", Distance: 1400, TransportMode: "Road", TransitTime: 4.2, Cost: 2100, CarbonFootprint: 75, Efficiency: 68, Status: domain.RouteActive, UserID: david},
		{Origin: "Kigali", Destination: "Dubai", Distance: 3600, TransportMode: "Air", TransitTime: 0.5, Cost: 4500, CarbonFootprint: 85, Efficiency: 92, Status: domain.RouteActive, UserID: david},
		{Origin: "Mombasa", Destination: "Shanghai", Distance: 7800, TransportMode: "Sea", TransitTime: 18.5, Cost: 3200, CarbonFootprint: 35, Efficiency: 88, Status: domain.RouteActive, UserID: david},
		{Origin: "Kigali", Destination: "Amsterdam", Distance: 6500, TransportMode: "Air", TransitTime: 1.2, Cost: 5800, CarbonFootprint: 90, Efficiency: 75, Status: domain.RoutePending, UserID: david},
		{Origin: "Kigali", Destination: "Dar es Salaam", Distance: 1200, TransportMode: "Road", TransitTime: 3.5, Cost: 1800, CarbonFootprint: 55, Efficiency: 78, Status: domain.RouteActive, UserID: kagi},
		{Origin: "Nairobi", Destination: "London", Distance: 6800, TransportMode: "Air", TransitTime: 1.0, Cost: 6200, CarbonFootprint: 88, Efficiency: 80, Status: domain.RouteActive, UserID: kagi},
		{Origin: "Mombasa", Destination: "New York", Distance: 12500, TransportMode: "Sea", TransitTime: 28.0, Cost: 4800, CarbonFootprint: 30, Efficiency: 95, Status: domain.RouteActive, UserID: kagi},
	}
}

func demoDocuments(david, kagi string, now time.Time) []domain.CustomsDocument {
	cleared := now
	return []domain.CustomsDocument{
		{ShipmentID: "SHP-2023-001", Title: "Coffee Export Certificate", Description: "Export documentation for premium coffee shipment", Destination: "Nairobi", Status: domain.DocumentCleared, ClearanceDate: &cleared, Progress: 100, UserID: david},
		{ShipmentID: "SHP-2023-002", Title: "Electronics Import Documents", Description: "Import forms for consumer electronics", Destination: "Kigali", Status: domain.DocumentInProgress, Progress: 65, UserID: david},
		{ShipmentID: "SHP-2023-003", Title: "Textile Export Permit", Description: "Export permit for cotton textiles", Destination: "Dubai", Status: domain.DocumentPending, Progress: 30, UserID: david},
		{ShipmentID: "SHP-2023-004", Title: "Mining Equipment Import", Description: "Import documentation for mining equipment", Destination: "Kigali", Status: domain.DocumentCleared, ClearanceDate: &cleared, Progress: 100, UserID: kagi},
		{ShipmentID: "SHP-2023-005", Title: "Tea Export Certificate", Description: "Export permit for premium tea", Destination: "London", Status: domain.DocumentInProgress, Progress: 75, UserID: kagi},
	}
}

func demoRates() []domain.CurrencyExchangeRate {
	return []domain.CurrencyExchangeRate{
		{BaseCurrency: "RWF", TargetCurrency: "USD", Rate: 0.00078, Change: 0.4},
		{BaseCurrency: "RWF", TargetCurrency: "EUR", Rate: 0.00071, Change: 0.2},
		{BaseCurrency: "RWF", TargetCurrency: "GBP", Rate: 0.00061, Change: -0.3},
		{BaseCurrency: "RWF", TargetCurrency: "CNY", Rate: 0.0055, Change: -0.5},
		{BaseCurrency: "RWF", TargetCurrency: "KES", Rate: 0.106, Change: 0.1},
	}
}

func demoOpportunities() []domain.MarketOpportunity {
	return []domain.MarketOpportunity{
		{Title: "Premium Coffee Export to EU", Description: "Increasing demand for Rwandan specialty coffee in European markets with favorable trade terms.",
			PotentialLevel: domain.PotentialHigh, ProfitMargin: 28.5, Market: "European Union", Product: "Specialty Coffee"},
		{Title: "Organic Tea Processing", Description: "Growing market for organic certified tea products in North America and Europe.",
			PotentialLevel: domain.PotentialMedium, ProfitMargin: 22.0, Market: "North America", Product: "Organic Tea", IsBookmarked: true},
		{Title: "Textile Manufacturing for East Africa", Description: "Regional demand for locally produced textiles is growing with AfCFTA implementation.",
			PotentialLevel: domain.PotentialHigh, ProfitMargin: 18.5, Market: "East African Community", Product: "Cotton Textiles"},
		{Title: "Technology Hardware Distribution", Description: "Emerging market for affordable smartphones and computing devices across East Africa.",
			PotentialLevel: domain.PotentialMedium, ProfitMargin: 15.0, Market: "Rwanda", Product: "Consumer Electronics", IsBookmarked: true},
		{Title: "Mining Sector Equipment Supply", Description: "Increasing investment in mining sectors requires specialized equipment supply and maintenance.",
			PotentialLevel: domain.PotentialEmerging, ProfitMargin: 12.0, Market: "Rwanda", Product: "Mining Equipment"},
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports/portstest"
)

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestMarketDataService_CreateDefaults(t *testing.T) {
	svc := NewMarketDataService(portstest.NewMarketDataRepository(), zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }

	got, err := svc.Create(context.Background(), domain.MarketData{ProductName: "Coffee", CurrentPrice: 4.2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Currency != domain.DefaultCurrency {
		t.Fatalf("expected default currency, got %q", got.Currency)
	}
	if !got.Timestamp.Equal(fixedNow) {
		t.Fatalf("expected timestamp %v, got %v", fixedNow, got.Timestamp)
	}

	stamped := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err = svc.Create(context.Background(), domain.MarketData{ProductName: "Tea", Currency: "RWF", Timestamp: stamped})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Currency != "RWF" || !got.Timestamp.Equal(stamped) {
		t.Fatalf("explicit values overwritten: %+v", got)
	}
}

func TestMarketDataService_ListByProduct(t *testing.T) {
	svc := NewMarketDataService(portstest.NewMarketDataRepository(), zerolog.Nop())
	ctx := context.Background()

	for _, name := range []string{"Coffee", "Tea", "Coffee"} {
		if _, err := svc.Create(ctx, domain.MarketData{ProductName: name}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	coffee, err := svc.ListByProduct(ctx, "Coffee")
	if err != nil {
		t.Fatalf("ListByProduct: %v", err)
	}
	if len(coffee) != 2 {
		t.Fatalf("expected 2 coffee quotes, got %d", len(coffee))
	}
	all, _ := svc.List(ctx)
	if len(all) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(all))
	}
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, domain.ErrMarketDataNotFound) {
		t.Fatalf("expected ErrMarketDataNotFound, got %v", err)
	}
}

func TestCurrencyRateService_UpdateRestamps(t *testing.T) {
	svc := NewCurrencyRateService(portstest.NewCurrencyRateRepository())
	ctx := context.Background()

	svc.now = func() time.Time { return fixedNow }
	rate, err := svc.Create(ctx, domain.CurrencyExchangeRate{BaseCurrency: "USD", TargetCurrency: "RWF", Rate: 1300})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !rate.LastUpdated.Equal(fixedNow) {
		t.Fatalf("expected lastUpdated %v, got %v", fixedNow, rate.LastUpdated)
	}

	later := fixedNow.Add(time.Hour)
	svc.now = func() time.Time { return later }
	newRate := 1310.5
	got, err := svc.Update(ctx, rate.ID, ports.CurrencyRatePatch{Rate: &newRate})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Rate != newRate || got.BaseCurrency != "USD" {
		t.Fatalf("unexpected rate after update: %+v", got)
	}
	if !got.LastUpdated.Equal(later) {
		t.Fatalf("expected lastUpdated %v, got %v", later, got.LastUpdated)
	}

	if _, err := svc.Update(ctx, "missing", ports.CurrencyRatePatch{}); !errors.Is(err, domain.ErrRateNotFound) {
		t.Fatalf("expected ErrRateNotFound, got %v", err)
	}
}

func TestOpportunityService_BookmarkIsShared(t *testing.T) {
	svc := NewOpportunityService(portstest.NewOpportunityRepository())
	ctx := context.Background()

	opp, err := svc.Create(ctx, domain.MarketOpportunity{Title: "Avocado exports", PotentialLevel: domain.PotentialHigh})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if opp.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be stamped")
	}

	bookmarked := true
	if _, err := svc.Update(ctx, opp.ID, ports.OpportunityPatch{IsBookmarked: &bookmarked}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.Get(ctx, opp.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.IsBookmarked || got.Title != "Avocado exports" {
		t.Fatalf("unexpected opportunity: %+v", got)
	}
}

// Command server runs the trade-ops HTTP API.
//
//	@title                      Trade-Ops API
//	@version                    1.0
//	@description                Trade operations dashboard backend.
//	@BasePath                   /
//	@securityDefinitions.apikey BearerAuth
//	@in                         header
//	@name                       Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/api"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/api/handler"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/service"
	mongodb "github.com/intelligent-supply-chain/trade-ops-api/internal/infrastructure/db/mongo"
	redisdb "github.com/intelligent-supply-chain/trade-ops-api/internal/infrastructure/db/redis"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/pkg/config"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/pkg/token"
	"github.com/intelligent-supply-chain/trade-ops-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	var (
		rdb     *goredis.Client
		limiter service.LoginLimiter = service.NoopLimiter{}
	)
	redisCfg := redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if redisCfg.Enabled() {
		rdb, err = redisdb.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.LockoutWindow)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	marketData := mongodb.NewMarketDataRepository(db)
	rates := mongodb.NewCurrencyRateRepository(db)
	opportunities := mongodb.NewOpportunityRepository(db)
	routes := mongodb.NewShippingRouteRepository(db)
	documents := mongodb.NewCustomsDocumentRepository(db)
	activities := mongodb.NewActivityRepository(db)

	// --- Seed data ---
	seeder := service.NewSeeder(service.SeedRepositories{
		Users:         users,
		MarketData:    marketData,
		Routes:        routes,
		Documents:     documents,
		Rates:         rates,
		Opportunities: opportunities,
		Activities:    activities,
	}, log)
	// Demo data only lands in an empty database, so it goes before the
	// bootstrap account.
	if cfg.Seed.DemoData {
		if _, err := seeder.SeedDemo(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}
	if err := seeder.EnsureSuperAdmin(ctx, service.BootstrapAdmin{
		Username: cfg.Bootstrap.Username,
		Password: cfg.Bootstrap.Password,
		Email:    cfg.Bootstrap.Email,
	}); err != nil {
		return err
	}

	// --- Services ---
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	auditor := service.NewAuditor(activities, log)

	readiness := map[string]handler.DependencyCheck{"mongo": handler.MongoCheck(db)}
	if rdb != nil {
		readiness["redis"] = handler.RedisCheck(rdb)
	}

	e := api.NewRouter(api.Dependencies{
		Log:           log,
		Tokens:        tokens,
		Users:         users,
		Auth:          service.NewAuthService(users, tokens, limiter, log),
		Profile:       service.NewProfileService(users, log),
		MarketData:    service.NewMarketDataService(marketData, log),
		Rates:         service.NewCurrencyRateService(rates),
		Opportunities: service.NewOpportunityService(opportunities),
		Routes:        service.NewShippingRouteService(routes, log),
		Customs:       service.NewCustomsService(documents, auditor, log),
		Activities:    service.NewActivityService(activities, log),
		Admin: service.NewAdminService(service.AdminRepositories{
			Users:      users,
			MarketData: marketData,
			Routes:     routes,
			Documents:  documents,
			Activities: activities,
		}, auditor, log),
		Readiness:    readiness,
		AllowOrigins: cfg.AllowOrigins(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped cleanly")
	return nil
}

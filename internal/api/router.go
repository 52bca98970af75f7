package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/intelligent-supply-chain/trade-ops-api/docs"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/api/handler"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/api/middleware"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/pkg/token"
)

const metricsSubsystem = "http"

// Dependencies is everything the HTTP layer needs. Services are built by the
// caller so tests can run the full router over in-memory repositories.
type Dependencies struct {
	Log    zerolog.Logger
	Tokens *token.Manager
	// Users reloads callers for permission-gated routes.
	Users middleware.UserLoader

	Auth          ports.AuthService
	Profile       ports.ProfileService
	MarketData    ports.MarketDataService
	Rates         ports.CurrencyRateService
	Opportunities ports.OpportunityService
	Routes        ports.ShippingRouteService
	Customs       ports.CustomsService
	Activities    ports.ActivityService
	Admin         ports.AdminService

	// Readiness checks reported by /health/ready, keyed by dependency name.
	Readiness map[string]handler.DependencyCheck

	AllowOrigins []string

	// Metrics overrides the Prometheus registry. The default registry is used
	// when nil.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Metrics != nil {
		registerer, gatherer = deps.Metrics, deps.Metrics
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	profileHandler := handler.NewProfileHandler(deps.Profile)
	marketHandler := handler.NewMarketDataHandler(deps.MarketData)
	rateHandler := handler.NewCurrencyRateHandler(deps.Rates)
	opportunityHandler := handler.NewOpportunityHandler(deps.Opportunities)
	routeHandler := handler.NewShippingRouteHandler(deps.Routes)
	customsHandler := handler.NewCustomsHandler(deps.Customs)
	activityHandler := handler.NewActivityHandler(deps.Activities)
	adminHandler := handler.NewAdminHandler(deps.Admin)

	authMiddleware := middleware.Auth(deps.Tokens)
	canManageMarketData := middleware.RequirePermission(deps.Users, domain.ActionManageMarketData)
	canApproveDocuments := middleware.RequirePermission(deps.Users, domain.ActionApproveDocument)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public API ---
	public := e.Group("/api")
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.GET("/currency-exchange-rates", rateHandler.List)
	public.GET("/currency-exchange-rates/:id", rateHandler.Get)

	// --- Authenticated API ---
	api := e.Group("/api", authMiddleware)

	api.POST("/logout", authHandler.Logout)
	api.GET("/user", authHandler.CurrentUser)
	api.PUT("/user/profile", profileHandler.UpdateProfile)
	api.PUT("/user/password", profileHandler.ChangePassword)
	api.PUT("/user/notifications", profileHandler.UpdateNotifications)

	api.GET("/market-data", marketHandler.List)
	api.GET("/market-data/product/:name", marketHandler.ListByProduct)
	api.GET("/market-data/:id", marketHandler.Get)
	api.POST("/market-data", marketHandler.Create, canManageMarketData)
	api.PUT("/market-data/:id", marketHandler.Update, canManageMarketData)

	api.GET("/shipping-routes", routeHandler.List)
	api.GET("/shipping-routes/map", routeHandler.Map)
	api.GET("/shipping-routes/:id", routeHandler.Get)
	api.POST("/shipping-routes", routeHandler.Create)
	api.PUT("/shipping-routes/:id", routeHandler.Update)

	api.GET("/customs-documents", customsHandler.List)
	api.GET("/customs-documents/:id", customsHandler.Get)
	api.POST("/customs-documents", customsHandler.Create)
	api.PUT("/customs-documents/:id", customsHandler.Update)

	api.POST("/currency-exchange-rates", rateHandler.Create)
	api.PUT("/currency-exchange-rates/:id", rateHandler.Update)

	api.GET("/market-opportunities", opportunityHandler.List)
	api.GET("/market-opportunities/:id", opportunityHandler.Get)
	api.POST("/market-opportunities", opportunityHandler.Create)
	api.PUT("/market-opportunities/:id", opportunityHandler.Update)

	api.GET("/activities", activityHandler.List)
	api.GET("/activities/recent", activityHandler.Recent)
	api.POST("/activities", activityHandler.Create)

	// --- Admin API ---
	// The token role is checked first; the caller is then reloaded so a
	// demoted or deactivated admin is refused before the token expires.
	admin := e.Group("/api/admin",
		authMiddleware,
		middleware.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin),
		middleware.RequirePermission(deps.Users, domain.ActionViewAdmin),
	)

	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.POST("/users", adminHandler.CreateUser)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.PATCH("/users/:id/toggle-status", adminHandler.ToggleStatus)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PUT("/users/:id/role", adminHandler.UpdateRole, middleware.RequireRole(domain.RoleSuperAdmin))

	admin.GET("/statistics", adminHandler.Statistics)
	admin.GET("/activities", adminHandler.ListActivities)
	admin.GET("/activities/user/:userId", adminHandler.ListUserActivities)

	admin.PUT("/customs-documents/:id/approve", customsHandler.Approve, canApproveDocuments)
	admin.PUT("/customs-documents/:id/reject", customsHandler.Reject, canApproveDocuments)

	return e
}

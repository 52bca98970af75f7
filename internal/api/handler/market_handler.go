package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

// MarketDataHandler serves product quotes. Writes are gated by the router.
type MarketDataHandler struct {
	service ports.MarketDataService
}

func NewMarketDataHandler(service ports.MarketDataService) *MarketDataHandler {
	return &MarketDataHandler{service: service}
}

// List handles GET /api/market-data.
//
// @Summary      List market data
// @Tags         market-data
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.MarketData
// @Failure      401  {object}  messageResponse
// @Router       /api/market-data [get]
func (h *MarketDataHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListByProduct handles GET /api/market-data/product/:name.
//
// @Summary      Market data of one product
// @Tags         market-data
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Product name"
// @Success      200   {array}   domain.MarketData
// @Failure      401   {object}  messageResponse
// @Router       /api/market-data/product/{name} [get]
func (h *MarketDataHandler) ListByProduct(c echo.Context) error {
	items, err := h.service.ListByProduct(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/market-data/:id.
//
// @Summary      Get market data
// @Tags         market-data
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Market data id"
// @Success      200  {object}  domain.MarketData
// @Failure      404  {object}  messageResponse
// @Router       /api/market-data/{id} [get]
func (h *MarketDataHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /api/market-data.
//
// @Summary      Create market data
// @Tags         market-data
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMarketDataRequest  true  "Quote"
// @Success      201   {object}  domain.MarketData
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/market-data [post]
func (h *MarketDataHandler) Create(c echo.Context) error {
	var req createMarketDataRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.service.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/market-data/:id.
//
// @Summary      Update market data
// @Tags         market-data
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Market data id"
// @Param        body  body      updateMarketDataRequest  true  "Fields to change"
// @Success      200   {object}  domain.MarketData
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/market-data/{id} [put]
func (h *MarketDataHandler) Update(c echo.Context) error {
	var req updateMarketDataRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// CurrencyRateHandler serves exchange rates. Reads are public.
type CurrencyRateHandler struct {
	service ports.CurrencyRateService
}

func NewCurrencyRateHandler(service ports.CurrencyRateService) *CurrencyRateHandler {
	return &CurrencyRateHandler{service: service}
}

// List handles GET /api/currency-exchange-rates.
//
// @Summary      List exchange rates
// @Tags         currency-exchange-rates
// @Produce      json
// @Success      200  {array}  domain.CurrencyExchangeRate
// @Router       /api/currency-exchange-rates [get]
func (h *CurrencyRateHandler) List(c echo.Context) error {
	rates, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rates)
}

// Get handles GET /api/currency-exchange-rates/:id.
//
// @Summary      Get an exchange rate
// @Tags         currency-exchange-rates
// @Produce      json
// @Param        id   path      string  true  "Rate id"
// @Success      200  {object}  domain.CurrencyExchangeRate
// @Failure      404  {object}  messageResponse
// @Router       /api/currency-exchange-rates/{id} [get]
func (h *CurrencyRateHandler) Get(c echo.Context) error {
	rate, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rate)
}

// Create handles POST /api/currency-exchange-rates.
//
// @Summary      Create an exchange rate
// @Tags         currency-exchange-rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCurrencyRateRequest  true  "Rate"
// @Success      201   {object}  domain.CurrencyExchangeRate
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/currency-exchange-rates [post]
func (h *CurrencyRateHandler) Create(c echo.Context) error {
	var req createCurrencyRateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	rate, err := h.service.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rate)
}

// Update handles PUT /api/currency-exchange-rates/:id.
//
// @Summary      Update an exchange rate
// @Tags         currency-exchange-rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Rate id"
// @Param        body  body      updateCurrencyRateRequest  true  "Fields to change"
// @Success      200   {object}  domain.CurrencyExchangeRate
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/currency-exchange-rates/{id} [put]
func (h *CurrencyRateHandler) Update(c echo.Context) error {
	var req updateCurrencyRateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	rate, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rate)
}

// OpportunityHandler serves trade leads.
type OpportunityHandler struct {
	service ports.OpportunityService
}

func NewOpportunityHandler(service ports.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{service: service}
}

// List handles GET /api/market-opportunities.
//
// @Summary      List market opportunities
// @Tags         market-opportunities
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.MarketOpportunity
// @Failure      401  {object}  messageResponse
// @Router       /api/market-opportunities [get]
func (h *OpportunityHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/market-opportunities/:id.
//
// @Summary      Get a market opportunity
// @Tags         market-opportunities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Opportunity id"
// @Success      200  {object}  domain.MarketOpportunity
// @Failure      404  {object}  messageResponse
// @Router       /api/market-opportunities/{id} [get]
func (h *OpportunityHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /api/market-opportunities.
//
// @Summary      Create a market opportunity
// @Tags         market-opportunities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOpportunityRequest  true  "Opportunity"
// @Success      201   {object}  domain.MarketOpportunity
// @Failure      400   {object}  messageResponse
// @Router       /api/market-opportunities [post]
func (h *OpportunityHandler) Create(c echo.Context) error {
	var req createOpportunityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.service.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/market-opportunities/:id. The bookmark flag is
// shared by every user.
//
// @Summary      Update a market opportunity
// @Tags         market-opportunities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Opportunity id"
// @Param        body  body      updateOpportunityRequest  true  "Fields to change"
// @Success      200   {object}  domain.MarketOpportunity
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/market-opportunities/{id} [put]
func (h *OpportunityHandler) Update(c echo.Context) error {
	var req updateOpportunityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

// ShippingRouteHandler handles HTTP requests for the caller's shipping routes.
type ShippingRouteHandler struct {
	service ports.ShippingRouteService
}

func NewShippingRouteHandler(service ports.ShippingRouteService) *ShippingRouteHandler {
	return &ShippingRouteHandler{service: service}
}

// List handles GET /api/shipping-routes.
//
// @Summary      List own shipping routes
// @Tags         shipping-routes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ShippingRoute
// @Failure      401  {object}  messageResponse
// @Router       /api/shipping-routes [get]
func (h *ShippingRouteHandler) List(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	routes, err := h.service.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, routes)
}

// Map handles GET /api/shipping-routes/map.
//
// @Summary      Own shipping routes as GeoJSON
// @Tags         shipping-routes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.RouteMap
// @Failure      401  {object}  messageResponse
// @Router       /api/shipping-routes/map [get]
func (h *ShippingRouteHandler) Map(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	fc, err := h.service.Map(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fc)
}

// Get handles GET /api/shipping-routes/:id.
//
// @Summary      Get a shipping route
// @Tags         shipping-routes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Route id"
// @Success      200  {object}  domain.ShippingRoute
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/shipping-routes/{id} [get]
func (h *ShippingRouteHandler) Get(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	route, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, route)
}

// Create handles POST /api/shipping-routes.
//
// @Summary      Create a shipping route
// @Tags         shipping-routes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShippingRouteRequest  true  "Route"
// @Success      201   {object}  domain.ShippingRoute
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/shipping-routes [post]
func (h *ShippingRouteHandler) Create(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req createShippingRouteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	route, err := h.service.Create(c.Request().Context(), p, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, route)
}

// Update handles PUT /api/shipping-routes/:id.
//
// @Summary      Update a shipping route
// @Tags         shipping-routes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Route id"
// @Param        body  body      updateShippingRouteRequest  true  "Fields to change"
// @Success      200   {object}  domain.ShippingRoute
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/shipping-routes/{id} [put]
func (h *ShippingRouteHandler) Update(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req updateShippingRouteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	route, err := h.service.Update(c.Request().Context(), p, c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, route)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

// ActivityHandler serves the activity feed.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /api/activities.
//
// @Summary      List own activities
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ActivityLog
// @Failure      401  {object}  messageResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	entries, err := h.service.ListForUser(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Recent handles GET /api/activities/recent.
//
// @Summary      Most recent activities
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 10, max 100)"
// @Success      200    {array}   domain.ActivityLog
// @Failure      400    {object}  messageResponse
// @Router       /api/activities/recent [get]
func (h *ActivityHandler) Recent(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	entries, err := h.service.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Create handles POST /api/activities.
//
// @Summary      Record an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createActivityRequest  true  "Activity"
// @Success      201   {object}  domain.ActivityLog
// @Failure      400   {object}  messageResponse
// @Router       /api/activities [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req createActivityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	entry, err := h.service.Record(c.Request().Context(), p, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

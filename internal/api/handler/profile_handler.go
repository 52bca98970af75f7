package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

// ProfileHandler serves the caller's own account settings.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	FullName string `json:"fullName" validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Company  string `json:"company"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8"`
}

type notificationsRequest struct {
	EmailNotifications bool `json:"emailNotifications"`
	MarketAlerts       bool `json:"marketAlerts"`
	CustomsUpdates     bool `json:"customsUpdates"`
	RouteOptimizations bool `json:"routeOptimizations"`
}

// UpdateProfile handles PUT /api/user/profile.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/user/profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), p.UserID, ports.ProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
		Company:  req.Company,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword handles PUT /api/user/password.
//
// @Summary      Change own password
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/user/password [put]
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.ChangePassword(c.Request().Context(), p.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

// UpdateNotifications handles PUT /api/user/notifications.
//
// @Summary      Update notification preferences
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      notificationsRequest  true  "Notification flags"
// @Success      200   {object}  domain.NotificationSettings
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/user/notifications [put]
func (h *ProfileHandler) UpdateNotifications(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req notificationsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	settings, err := h.service.UpdateNotifications(c.Request().Context(), p.UserID, domain.NotificationSettings(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

// AdminHandler serves /api/admin. The router restricts the whole group to
// admins; role hierarchy and self-protection are enforced by the service.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type permissionsRequest struct {
	CanManageUsers      bool `json:"canManageUsers"`
	CanViewAnalytics    bool `json:"canViewAnalytics"`
	CanManageMarketData bool `json:"canManageMarketData"`
	CanApproveDocuments bool `json:"canApproveDocuments"`
}

type createUserRequest struct {
	Username    string              `json:"username"    validate:"required,min=3,max=64"`
	Password    string              `json:"password"    validate:"required,min=6"`
	Email       string              `json:"email"       validate:"required,email"`
	FullName    string              `json:"fullName"    validate:"required,min=2"`
	Company     string              `json:"company"`
	Role        string              `json:"role"`
	Permissions *permissionsRequest `json:"permissions"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	FullName *string `json:"fullName" validate:"omitempty,min=2"`
	Company  *string `json:"company"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type toggleStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

type updateRoleRequest struct {
	Role        string              `json:"role" validate:"required"`
	Permissions *permissionsRequest `json:"permissions"`
}

func (p *permissionsRequest) toDomain() *domain.Permissions {
	if p == nil {
		return nil
	}
	perms := domain.Permissions(*p)
	return &perms
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  messageResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/admin/users/:id.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  messageResponse
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /api/admin/users.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
		Company:  req.Company,
		Role:     domain.Role(req.Role),
	}
	if perms := req.Permissions.toDomain(); perms != nil {
		in.Permissions = *perms
	}

	user, err := h.service.CreateUser(c.Request().Context(), p, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /api/admin/users/:id.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.Request().Context(), p, c.Param("id"), ports.AdminUserUpdate{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Company:  req.Company,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ToggleStatus handles PATCH /api/admin/users/:id/toggle-status. Without a
// body the current flag is flipped.
//
// @Summary      Activate or deactivate a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true   "User id"
// @Param        body  body      toggleStatusRequest  false  "Target state"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/admin/users/{id}/toggle-status [patch]
func (h *AdminHandler) ToggleStatus(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req toggleStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.ToggleStatus(c.Request().Context(), p, c.Param("id"), req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/:id.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteUser(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// UpdateRole handles PUT /api/admin/users/:id/role.
//
// @Summary      Change a user's role and permissions
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateRoleRequest  true  "Role and permission flags"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/admin/users/{id}/role [put]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req updateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateRole(c.Request().Context(), p, c.Param("id"), domain.Role(req.Role), req.Permissions.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Statistics handles GET /api/admin/statistics.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Statistics
// @Failure      403  {object}  messageResponse
// @Router       /api/admin/statistics [get]
func (h *AdminHandler) Statistics(c echo.Context) error {
	stats, err := h.service.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ListActivities handles GET /api/admin/activities.
//
// @Summary      Activity feed with actors
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 50, max 100)"
// @Success      200    {array}   domain.ActivityWithActor
// @Failure      403    {object}  messageResponse
// @Router       /api/admin/activities [get]
func (h *AdminHandler) ListActivities(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	entries, err := h.service.ListActivities(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// ListUserActivities handles GET /api/admin/activities/user/:userId.
//
// @Summary      Activities of one user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {array}   domain.ActivityLog
// @Failure      403     {object}  messageResponse
// @Router       /api/admin/activities/user/{userId} [get]
func (h *AdminHandler) ListUserActivities(c echo.Context) error {
	entries, err := h.service.ListUserActivities(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

// CustomsHandler handles the owner-facing customs routes and the admin review
// routes.
type CustomsHandler struct {
	service ports.CustomsService
}

func NewCustomsHandler(service ports.CustomsService) *CustomsHandler {
	return &CustomsHandler{service: service}
}

// List handles GET /api/customs-documents.
//
// @Summary      List own customs documents
// @Tags         customs-documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.CustomsDocument
// @Failure      401  {object}  messageResponse
// @Router       /api/customs-documents [get]
func (h *CustomsHandler) List(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	docs, err := h.service.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

// Get handles GET /api/customs-documents/:id.
//
// @Summary      Get a customs document
// @Tags         customs-documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document id"
// @Success      200  {object}  domain.CustomsDocument
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/customs-documents/{id} [get]
func (h *CustomsHandler) Get(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	doc, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// Create handles POST /api/customs-documents.
//
// @Summary      Create a customs document
// @Tags         customs-documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomsDocumentRequest  true  "Document"
// @Success      201   {object}  domain.CustomsDocument
// @Failure      400   {object}  messageResponse
// @Router       /api/customs-documents [post]
func (h *CustomsHandler) Create(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req createCustomsDocumentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.service.Create(c.Request().Context(), p, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// Update handles PUT /api/customs-documents/:id. Only the submitted fields
// are stored; progress is never derived from status.
//
// @Summary      Update a customs document
// @Tags         customs-documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "Document id"
// @Param        body  body      updateCustomsDocumentRequest  true  "Fields to change"
// @Success      200   {object}  domain.CustomsDocument
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /api/customs-documents/{id} [put]
func (h *CustomsHandler) Update(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req updateCustomsDocumentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.service.Update(c.Request().Context(), p, c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// Approve handles PUT /api/admin/customs-documents/:id/approve.
//
// @Summary      Approve a customs document
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true   "Document id"
// @Param        body  body      reviewDocumentRequest  false  "Reviewer comments"
// @Success      200   {object}  domain.CustomsDocument
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /api/admin/customs-documents/{id}/approve [put]
func (h *CustomsHandler) Approve(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req reviewDocumentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.service.Approve(c.Request().Context(), p, c.Param("id"), req.Comments)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// Reject handles PUT /api/admin/customs-documents/:id/reject.
//
// @Summary      Reject a customs document
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true   "Document id"
// @Param        body  body      reviewDocumentRequest  false  "Reviewer comments"
// @Success      200   {object}  domain.CustomsDocument
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /api/admin/customs-documents/{id}/reject [put]
func (h *CustomsHandler) Reject(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req reviewDocumentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.service.Reject(c.Request().Context(), p, c.Param("id"), req.Comments)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

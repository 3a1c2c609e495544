package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"communityhub/internal/model"
	"communityhub/internal/service"
)

// ContactHandler handles emergency contact endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest is the create/update payload for an emergency contact.
type ContactRequest struct {
	Name        string `json:"name" validate:"required"`
	Designation string `json:"designation"`
	Phone       string `json:"phone" validate:"required"`
	Category    string `json:"category"`
}

func (r *ContactRequest) toModel() *model.EmergencyContact {
	return &model.EmergencyContact{
		Name:        r.Name,
		Designation: r.Designation,
		Phone:       r.Phone,
		Category:    r.Category,
	}
}

// List godoc
// @Summary List emergency contacts
// @Tags contacts
// @Produce json
// @Success 200 {array} model.EmergencyContact
// @Router /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	contacts, err := h.contactService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// Get godoc
// @Summary Get an emergency contact
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} model.EmergencyContact
// @Failure 404 {object} httperr.Response
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	contact, err := h.contactService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contact)
}

// Create godoc
// @Summary Create an emergency contact (admin)
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ContactRequest true "Contact data"
// @Success 201 {object} model.EmergencyContact
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Router /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req ContactRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	contact, err := h.contactService.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, contact)
}

// Update godoc
// @Summary Update an emergency contact (admin)
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Param request body ContactRequest true "Contact data"
// @Success 200 {object} model.EmergencyContact
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	var req ContactRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	contact, err := h.contactService.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contact)
}

// Delete godoc
// @Summary Delete an emergency contact (admin)
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	if err := h.contactService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"msg": "contact deleted"})
}

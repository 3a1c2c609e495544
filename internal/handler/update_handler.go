package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"communityhub/internal/model"
	"communityhub/internal/service"
)

// UpdateHandler handles published update endpoints.
type UpdateHandler struct {
	updateService service.UpdateService
}

// NewUpdateHandler creates a new update handler.
func NewUpdateHandler(updateService service.UpdateService) *UpdateHandler {
	return &UpdateHandler{updateService: updateService}
}

// UpdateRequest is the create/update payload for a published update.
// RedirectURL is only honored for the blogs type.
type UpdateRequest struct {
	Type        string `json:"type" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content"`
	ImageURL    string `json:"image_url"`
	RedirectURL string `json:"redirect_url"`
}

func (r *UpdateRequest) toModel() *model.Update {
	return &model.Update{
		Type:        model.UpdateType(r.Type),
		Title:       r.Title,
		Content:     r.Content,
		ImageURL:    r.ImageURL,
		RedirectURL: r.RedirectURL,
	}
}

// List godoc
// @Summary List updates, newest first
// @Tags updates
// @Produce json
// @Param type query string false "Filter by type"
// @Success 200 {array} model.Update
// @Failure 400 {object} httperr.Response
// @Router /updates [get]
func (h *UpdateHandler) List(c echo.Context) error {
	updateType := model.UpdateType(c.QueryParam("type"))
	updates, err := h.updateService.List(c.Request().Context(), updateType)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updates)
}

// Get godoc
// @Summary Get an update
// @Tags updates
// @Produce json
// @Param id path string true "Update ID"
// @Success 200 {object} model.Update
// @Failure 404 {object} httperr.Response
// @Router /updates/{id} [get]
func (h *UpdateHandler) Get(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	update, err := h.updateService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, update)
}

// Create godoc
// @Summary Create an update (admin)
// @Tags updates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateRequest true "Update data"
// @Success 201 {object} model.Update
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Router /updates [post]
func (h *UpdateHandler) Create(c echo.Context) error {
	var req UpdateRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	update, err := h.updateService.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, update)
}

// Update godoc
// @Summary Update an update (admin)
// @Tags updates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Update ID"
// @Param request body UpdateRequest true "Update data"
// @Success 200 {object} model.Update
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /updates/{id} [put]
func (h *UpdateHandler) Update(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	var req UpdateRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	update, err := h.updateService.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, update)
}

// Delete godoc
// @Summary Delete an update (admin)
// @Tags updates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Update ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /updates/{id} [delete]
func (h *UpdateHandler) Delete(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	if err := h.updateService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"msg": "update deleted"})
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"communityhub/internal/auth"
	"communityhub/internal/model"
	"communityhub/internal/service"
)

// WorkshopHandler handles workshop endpoints.
type WorkshopHandler struct {
	workshopService service.WorkshopService
}

// NewWorkshopHandler creates a new workshop handler.
func NewWorkshopHandler(workshopService service.WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{workshopService: workshopService}
}

// WorkshopRequest is the create/update payload for a workshop. Capacity is a
// pointer so zero survives the required rule.
type WorkshopRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	Date        time.Time `json:"date" validate:"required"`
	Capacity    *int      `json:"capacity" validate:"required,min=0"`
	ImageURL    string    `json:"image_url"`
}

func (r *WorkshopRequest) toModel() *model.Workshop {
	return &model.Workshop{
		Title:       r.Title,
		Description: r.Description,
		Venue:       r.Venue,
		Date:        r.Date,
		Capacity:    *r.Capacity,
		ImageURL:    r.ImageURL,
	}
}

// List godoc
// @Summary List workshops with registration counts
// @Tags workshops
// @Produce json
// @Success 200 {array} service.WorkshopView
// @Router /workshops [get]
func (h *WorkshopHandler) List(c echo.Context) error {
	workshops, err := h.workshopService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, workshops)
}

// Get godoc
// @Summary Get a workshop with its registration count
// @Tags workshops
// @Produce json
// @Param id path string true "Workshop ID"
// @Success 200 {object} service.WorkshopView
// @Failure 404 {object} httperr.Response
// @Router /workshops/{id} [get]
func (h *WorkshopHandler) Get(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	workshop, err := h.workshopService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, workshop)
}

// Create godoc
// @Summary Create a workshop (admin)
// @Tags workshops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WorkshopRequest true "Workshop data"
// @Success 201 {object} model.Workshop
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Router /workshops [post]
func (h *WorkshopHandler) Create(c echo.Context) error {
	var req WorkshopRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	workshop, err := h.workshopService.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, workshop)
}

// Update godoc
// @Summary Update a workshop (admin)
// @Tags workshops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Param request body WorkshopRequest true "Workshop data"
// @Success 200 {object} model.Workshop
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /workshops/{id} [put]
func (h *WorkshopHandler) Update(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	var req WorkshopRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	workshop, err := h.workshopService.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, workshop)
}

// Delete godoc
// @Summary Delete a workshop (admin)
// @Tags workshops
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /workshops/{id} [delete]
func (h *WorkshopHandler) Delete(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	if err := h.workshopService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"msg": "workshop deleted"})
}

// Register godoc
// @Summary Register the caller for a workshop
// @Tags workshops
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /workshops/{id}/register [post]
func (h *WorkshopHandler) Register(c echo.Context) error {
	ident, err := auth.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}

	if err := h.workshopService.Register(c.Request().Context(), ident, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"msg": "registered successfully"})
}

// Unregister godoc
// @Summary Cancel the caller's registration
// @Tags workshops
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /workshops/{id}/register [delete]
func (h *WorkshopHandler) Unregister(c echo.Context) error {
	ident, err := auth.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}

	if err := h.workshopService.Unregister(c.Request().Context(), ident, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"msg": "registration cancelled"})
}

// Attendees godoc
// @Summary List registered users (admin)
// @Tags workshops
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Success 200 {array} model.UserRef
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /workshops/{id}/attendees [get]
func (h *WorkshopHandler) Attendees(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	attendees, err := h.workshopService.Attendees(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, attendees)
}

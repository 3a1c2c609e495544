package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"communityhub/internal/model"
	"communityhub/internal/service"
)

// UserHandler handles admin user management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// SetStatusRequest activates or deactivates a membership. ExpiryDate is
// required in practice when reactivating a lapsed account.
type SetStatusRequest struct {
	Status     string     `json:"status" validate:"required,oneof=active inactive"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// List godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// SetStatus godoc
// @Summary Activate or deactivate a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body SetStatusRequest true "New status"
// @Success 200 {object} model.User
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{id}/status [put]
func (h *UserHandler) SetStatus(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	var req SetStatusRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	user, err := h.userService.SetStatus(c.Request().Context(), id, model.Status(req.Status), req.ExpiryDate)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

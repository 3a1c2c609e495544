package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"communityhub/internal/auth"
	"communityhub/internal/service"
)

// PollHandler handles poll endpoints.
type PollHandler struct {
	pollService service.PollService
}

// NewPollHandler creates a new poll handler.
func NewPollHandler(pollService service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// CreatePollRequest is the payload for a new poll.
type CreatePollRequest struct {
	Question  string    `json:"question" validate:"required"`
	Options   []string  `json:"options" validate:"required,min=2,dive,required"`
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}

// UpdatePollRequest edits question and expiry; options are immutable.
type UpdatePollRequest struct {
	Question  string    `json:"question" validate:"required"`
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}

// VoteRequest casts a vote by 0-based option index. A pointer keeps index 0
// from tripping the required rule.
type VoteRequest struct {
	OptionIndex *int `json:"optionIndex" validate:"required,min=0"`
}

// List godoc
// @Summary List polls
// @Tags polls
// @Produce json
// @Success 200 {array} model.Poll
// @Router /polls [get]
func (h *PollHandler) List(c echo.Context) error {
	polls, err := h.pollService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, polls)
}

// Get godoc
// @Summary Get a poll
// @Tags polls
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} model.Poll
// @Failure 404 {object} httperr.Response
// @Router /polls/{id} [get]
func (h *PollHandler) Get(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	poll, err := h.pollService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, poll)
}

// Create godoc
// @Summary Create a poll (admin)
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePollRequest true "Poll data"
// @Success 201 {object} model.Poll
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Router /polls [post]
func (h *PollHandler) Create(c echo.Context) error {
	ident, err := auth.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var req CreatePollRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	poll, err := h.pollService.Create(c.Request().Context(), ident, req.Question, req.Options, req.ExpiresAt)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, poll)
}

// Update godoc
// @Summary Update poll question/expiry (admin)
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Param request body UpdatePollRequest true "Poll data"
// @Success 200 {object} model.Poll
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /polls/{id} [put]
func (h *PollHandler) Update(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	var req UpdatePollRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	poll, err := h.pollService.UpdateMeta(c.Request().Context(), id, req.Question, req.ExpiresAt)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, poll)
}

// Delete godoc
// @Summary Delete a poll (admin)
// @Tags polls
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /polls/{id} [delete]
func (h *PollHandler) Delete(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	if err := h.pollService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"msg": "poll deleted"})
}

// Vote godoc
// @Summary Cast a vote on a poll
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Param request body VoteRequest true "Option index"
// @Success 200 {object} model.Poll
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /polls/{id}/vote [put]
func (h *PollHandler) Vote(c echo.Context) error {
	ident, err := auth.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	var req VoteRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	poll, err := h.pollService.Vote(c.Request().Context(), ident, id, *req.OptionIndex)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, poll)
}

// Results godoc
// @Summary Poll results; admins also see voters
// @Tags polls
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Success 200 {object} service.PollResults
// @Failure 404 {object} httperr.Response
// @Router /polls/{id}/results [get]
func (h *PollHandler) Results(c echo.Context) error {
	ident, err := auth.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}

	results, err := h.pollService.Results(c.Request().Context(), ident, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"communityhub/internal/auth"
	"communityhub/internal/httperr"
	"communityhub/internal/model"
	"communityhub/internal/service"
)

// FeedbackHandler handles feedback question and response endpoints.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// QuestionRequest is the create/update payload for a feedback question.
type QuestionRequest struct {
	Question  string     `json:"question" validate:"required"`
	Category  string     `json:"category" validate:"required"`
	IsActive  *bool      `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (r *QuestionRequest) toModel() *model.FeedbackQuestion {
	q := &model.FeedbackQuestion{
		Question:  r.Question,
		Category:  model.FeedbackCategory(r.Category),
		IsActive:  true,
		ExpiresAt: r.ExpiresAt,
	}
	if r.IsActive != nil {
		q.IsActive = *r.IsActive
	}
	return q
}

// ResponseRequest submits an answer to a question.
type ResponseRequest struct {
	QuestionID string `json:"question_id" validate:"required,uuid4"`
	Answer     string `json:"answer" validate:"required"`
}

// ResponseStatusRequest moves a response through admin review.
type ResponseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed resolved"`
}

// ListQuestions godoc
// @Summary List active feedback questions
// @Tags feedback
// @Produce json
// @Success 200 {array} model.FeedbackQuestion
// @Router /feedback/questions [get]
func (h *FeedbackHandler) ListQuestions(c echo.Context) error {
	questions, err := h.feedbackService.ListQuestions(c.Request().Context(), true)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, questions)
}

// ListAllQuestions godoc
// @Summary List all feedback questions including inactive (admin)
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.FeedbackQuestion
// @Failure 403 {object} httperr.Response
// @Router /feedback/questions/all [get]
func (h *FeedbackHandler) ListAllQuestions(c echo.Context) error {
	questions, err := h.feedbackService.ListQuestions(c.Request().Context(), false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, questions)
}

// GetQuestion godoc
// @Summary Get a feedback question
// @Tags feedback
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} model.FeedbackQuestion
// @Failure 404 {object} httperr.Response
// @Router /feedback/questions/{id} [get]
func (h *FeedbackHandler) GetQuestion(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	question, err := h.feedbackService.GetQuestion(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, question)
}

// CreateQuestion godoc
// @Summary Create a feedback question (admin)
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body QuestionRequest true "Question data"
// @Success 201 {object} model.FeedbackQuestion
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Router /feedback/questions [post]
func (h *FeedbackHandler) CreateQuestion(c echo.Context) error {
	var req QuestionRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	question, err := h.feedbackService.CreateQuestion(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary Update a feedback question (admin)
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param request body QuestionRequest true "Question data"
// @Success 200 {object} model.FeedbackQuestion
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /feedback/questions/{id} [put]
func (h *FeedbackHandler) UpdateQuestion(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	var req QuestionRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	question, err := h.feedbackService.UpdateQuestion(c.Request().Context(), id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary Delete a feedback question (admin); deactivates when responses exist
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /feedback/questions/{id} [delete]
func (h *FeedbackHandler) DeleteQuestion(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	outcome, err := h.feedbackService.DeleteQuestion(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"msg": outcome.Message})
}

// SubmitResponse godoc
// @Summary Submit a feedback response (one per question per user)
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ResponseRequest true "Response data"
// @Success 201 {object} model.FeedbackResponse
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /feedback/responses [post]
func (h *FeedbackHandler) SubmitResponse(c echo.Context) error {
	ident, err := auth.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var req ResponseRequest
	if !bindAndValidate(c, &req) {
		return nil
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httperr.Response{Msg: "invalid question_id"})
	}

	response, err := h.feedbackService.SubmitResponse(c.Request().Context(), ident, questionID, req.Answer)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, response)
}

// ListResponses godoc
// @Summary List feedback responses (admin)
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param question_id query string false "Filter by question"
// @Success 200 {array} service.ResponseView
// @Failure 403 {object} httperr.Response
// @Router /feedback/responses [get]
func (h *FeedbackHandler) ListResponses(c echo.Context) error {
	questionID := uuid.Nil
	if raw := c.QueryParam("question_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, httperr.Response{Msg: "invalid question_id"})
		}
		questionID = parsed
	}

	responses, err := h.feedbackService.ListResponses(c.Request().Context(), questionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, responses)
}

// SetResponseStatus godoc
// @Summary Update review status of a response (admin)
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Response ID"
// @Param request body ResponseStatusRequest true "New status"
// @Success 200 {object} model.FeedbackResponse
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /feedback/responses/{id}/status [put]
func (h *FeedbackHandler) SetResponseStatus(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	var req ResponseStatusRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	response, err := h.feedbackService.SetResponseStatus(c.Request().Context(), id, model.ResponseStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

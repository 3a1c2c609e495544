package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"communityhub/internal/auth"
	"communityhub/internal/httperr"
	"communityhub/internal/model"
	"communityhub/internal/repository"
)

// DeleteQuestionOutcome distinguishes a hard delete from a deactivation.
type DeleteQuestionOutcome struct {
	SoftDeleted bool
	Message     string
}

// ResponseView is a response with its author expansion.
type ResponseView struct {
	model.FeedbackResponse
	User *model.UserRef `json:"user,omitempty"`
}

// FeedbackService handles feedback questions and responses. Question CRUD and
// response review are admin-only at the route level; submitting a response is
// open to authenticated members, one per question.
type FeedbackService interface {
	ListQuestions(ctx context.Context, activeOnly bool) ([]model.FeedbackQuestion, error)
	GetQuestion(ctx context.Context, id uuid.UUID) (*model.FeedbackQuestion, error)
	CreateQuestion(ctx context.Context, q *model.FeedbackQuestion) (*model.FeedbackQuestion, error)
	UpdateQuestion(ctx context.Context, id uuid.UUID, q *model.FeedbackQuestion) (*model.FeedbackQuestion, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) (*DeleteQuestionOutcome, error)
	SubmitResponse(ctx context.Context, caller auth.Identity, questionID uuid.UUID, answer string) (*model.FeedbackResponse, error)
	ListResponses(ctx context.Context, questionID uuid.UUID) ([]ResponseView, error)
	SetResponseStatus(ctx context.Context, id uuid.UUID, status model.ResponseStatus) (*model.FeedbackResponse, error)
}

type feedbackService struct {
	repo repository.FeedbackRepository
}

// NewFeedbackService builds a FeedbackService.
func NewFeedbackService(repo repository.FeedbackRepository) FeedbackService {
	return &feedbackService{repo: repo}
}

func (s *feedbackService) ListQuestions(ctx context.Context, activeOnly bool) ([]model.FeedbackQuestion, error) {
	return s.repo.ListQuestions(ctx, activeOnly)
}

func (s *feedbackService) GetQuestion(ctx context.Context, id uuid.UUID) (*model.FeedbackQuestion, error) {
	q, err := s.repo.FindQuestionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *feedbackService) CreateQuestion(ctx context.Context, q *model.FeedbackQuestion) (*model.FeedbackQuestion, error) {
	if !model.ValidFeedbackCategory(q.Category) {
		return nil, httperr.ErrInvalidCategory
	}
	q.IsActive = true
	if err := s.repo.CreateQuestion(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

func (s *feedbackService) UpdateQuestion(ctx context.Context, id uuid.UUID, in *model.FeedbackQuestion) (*model.FeedbackQuestion, error) {
	existing, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.ValidFeedbackCategory(in.Category) {
		return nil, httperr.ErrInvalidCategory
	}

	existing.Question = in.Question
	existing.Category = in.Category
	existing.IsActive = in.IsActive
	existing.ExpiresAt = in.ExpiresAt

	if err := s.repo.SaveQuestion(ctx, existing); err != nil {
		return nil, fmt.Errorf("save question: %w", err)
	}
	return existing, nil
}

// DeleteQuestion hard-deletes a question nobody has answered, and deactivates
// one that has responses so those responses keep a valid reference. The
// question row is locked for the duration of the transaction, so a response
// submitted concurrently cannot slip in between the count and the delete.
func (s *feedbackService) DeleteQuestion(ctx context.Context, id uuid.UUID) (*DeleteQuestionOutcome, error) {
	var outcome *DeleteQuestionOutcome
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.FeedbackRepository) error {
		q, err := txRepo.FindQuestionByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound
			}
			return err
		}

		count, err := txRepo.CountResponses(ctx, id)
		if err != nil {
			return err
		}

		if count == 0 {
			if err := txRepo.DeleteQuestion(ctx, id); err != nil {
				return err
			}
			outcome = &DeleteQuestionOutcome{SoftDeleted: false, Message: "question deleted"}
			return nil
		}

		q.IsActive = false
		if err := txRepo.SaveQuestion(ctx, q); err != nil {
			return err
		}
		outcome = &DeleteQuestionOutcome{SoftDeleted: true, Message: "question deactivated, responses exist"}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// SubmitResponse records the caller's answer. The question row is locked while
// the response is inserted, so a concurrent DeleteQuestion always sees either
// no response yet (hard delete) or the committed response (deactivation). The
// composite unique index on (question_id, user_id) makes the one-response rule
// atomic under concurrent submissions.
func (s *feedbackService) SubmitResponse(ctx context.Context, caller auth.Identity, questionID uuid.UUID, answer string) (*model.FeedbackResponse, error) {
	var resp *model.FeedbackResponse
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.FeedbackRepository) error {
		q, err := txRepo.FindQuestionByIDForUpdate(ctx, questionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound
			}
			return err
		}
		if !q.Open() {
			return httperr.ErrFeedbackClosed
		}

		created := &model.FeedbackResponse{
			QuestionID: questionID,
			UserID:     caller.UserID,
			Answer:     answer,
			Status:     model.ResponseStatusPending,
		}
		if err := txRepo.CreateResponse(ctx, created); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return httperr.ErrAlreadyResponded
			}
			return fmt.Errorf("create response: %w", err)
		}
		resp = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *feedbackService) ListResponses(ctx context.Context, questionID uuid.UUID) ([]ResponseView, error) {
	if questionID != uuid.Nil {
		if _, err := s.GetQuestion(ctx, questionID); err != nil {
			return nil, err
		}
	}
	responses, err := s.repo.ListResponses(ctx, questionID)
	if err != nil {
		return nil, err
	}
	views := make([]ResponseView, 0, len(responses))
	for _, r := range responses {
		view := ResponseView{FeedbackResponse: r}
		if r.User != nil {
			ref := r.User.Ref()
			view.User = &ref
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *feedbackService) SetResponseStatus(ctx context.Context, id uuid.UUID, status model.ResponseStatus) (*model.FeedbackResponse, error) {
	resp, err := s.repo.FindResponseByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	if !model.ValidResponseStatus(status) {
		return nil, httperr.ErrInvalidStatus
	}

	resp.Status = status
	if err := s.repo.SaveResponse(ctx, resp); err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}
	return resp, nil
}

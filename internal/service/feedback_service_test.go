package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"communityhub/internal/httperr"
	"communityhub/internal/model"
	"communityhub/internal/repository"
)

// MockFeedbackRepository is a mock implementation of FeedbackRepository.
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) CreateQuestion(ctx context.Context, q *model.FeedbackQuestion) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockFeedbackRepository) SaveQuestion(ctx context.Context, q *model.FeedbackQuestion) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockFeedbackRepository) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFeedbackRepository) FindQuestionByID(ctx context.Context, id uuid.UUID) (*model.FeedbackQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeedbackQuestion), args.Error(1)
}

func (m *MockFeedbackRepository) FindQuestionByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.FeedbackQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeedbackQuestion), args.Error(1)
}

func (m *MockFeedbackRepository) ListQuestions(ctx context.Context, activeOnly bool) ([]model.FeedbackQuestion, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FeedbackQuestion), args.Error(1)
}

func (m *MockFeedbackRepository) CountResponses(ctx context.Context, questionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, questionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedbackRepository) CreateResponse(ctx context.Context, resp *model.FeedbackResponse) error {
	args := m.Called(ctx, resp)
	return args.Error(0)
}

func (m *MockFeedbackRepository) SaveResponse(ctx context.Context, resp *model.FeedbackResponse) error {
	args := m.Called(ctx, resp)
	return args.Error(0)
}

func (m *MockFeedbackRepository) FindResponseByID(ctx context.Context, id uuid.UUID) (*model.FeedbackResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeedbackResponse), args.Error(1)
}

func (m *MockFeedbackRepository) ListResponses(ctx context.Context, questionID uuid.UUID) ([]model.FeedbackResponse, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FeedbackResponse), args.Error(1)
}

func (m *MockFeedbackRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.FeedbackRepository) error) error {
	m.Called(ctx, fn)
	return fn(ctx, m)
}

func activeQuestion() *model.FeedbackQuestion {
	return &model.FeedbackQuestion{
		ID:       uuid.New(),
		Question: "How was the summer fair?",
		Category: model.FeedbackCategoryEvents,
		IsActive: true,
	}
}

func TestDeleteQuestion_HardDeleteWhenNoResponses(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	q := activeQuestion()
	repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindQuestionByIDForUpdate", mock.Anything, q.ID).Return(q, nil)
	repo.On("CountResponses", mock.Anything, q.ID).Return(int64(0), nil)
	repo.On("DeleteQuestion", mock.Anything, q.ID).Return(nil)

	outcome, err := svc.DeleteQuestion(context.Background(), q.ID)

	assert.NoError(t, err)
	assert.False(t, outcome.SoftDeleted)
	assert.Equal(t, "question deleted", outcome.Message)
	repo.AssertNotCalled(t, "SaveQuestion")
}

func TestDeleteQuestion_DeactivatesWhenResponsesExist(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	q := activeQuestion()
	repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindQuestionByIDForUpdate", mock.Anything, q.ID).Return(q, nil)
	repo.On("CountResponses", mock.Anything, q.ID).Return(int64(7), nil)
	repo.On("SaveQuestion", mock.Anything, mock.MatchedBy(func(saved *model.FeedbackQuestion) bool {
		return saved.ID == q.ID && !saved.IsActive
	})).Return(nil)

	outcome, err := svc.DeleteQuestion(context.Background(), q.ID)

	assert.NoError(t, err)
	assert.True(t, outcome.SoftDeleted)
	assert.Equal(t, "question deactivated, responses exist", outcome.Message)
	repo.AssertNotCalled(t, "DeleteQuestion")
}

func TestDeleteQuestion_NotFound(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	id := uuid.New()
	repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindQuestionByIDForUpdate", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.DeleteQuestion(context.Background(), id)

	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

func TestSubmitResponse_Success(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	q := activeQuestion()
	caller := member()
	repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindQuestionByIDForUpdate", mock.Anything, q.ID).Return(q, nil)
	repo.On("CreateResponse", mock.Anything, mock.MatchedBy(func(r *model.FeedbackResponse) bool {
		return r.QuestionID == q.ID && r.UserID == caller.UserID && r.Status == model.ResponseStatusPending
	})).Return(nil)

	resp, err := svc.SubmitResponse(context.Background(), caller, q.ID, "Loved the food stalls")

	assert.NoError(t, err)
	assert.Equal(t, "Loved the food stalls", resp.Answer)
	repo.AssertExpectations(t)
}

func TestSubmitResponse_Duplicate(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	q := activeQuestion()
	repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindQuestionByIDForUpdate", mock.Anything, q.ID).Return(q, nil)
	repo.On("CreateResponse", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.SubmitResponse(context.Background(), member(), q.ID, "again")

	assert.ErrorIs(t, err, httperr.ErrAlreadyResponded)
}

func TestSubmitResponse_InactiveQuestion(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	q := activeQuestion()
	q.IsActive = false
	repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindQuestionByIDForUpdate", mock.Anything, q.ID).Return(q, nil)

	_, err := svc.SubmitResponse(context.Background(), member(), q.ID, "too late")

	assert.ErrorIs(t, err, httperr.ErrFeedbackClosed)
	repo.AssertNotCalled(t, "CreateResponse")
}

func TestSubmitResponse_ExpiredQuestion(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	q := activeQuestion()
	past := time.Now().Add(-time.Hour)
	q.ExpiresAt = &past
	repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindQuestionByIDForUpdate", mock.Anything, q.ID).Return(q, nil)

	_, err := svc.SubmitResponse(context.Background(), member(), q.ID, "too late")

	assert.ErrorIs(t, err, httperr.ErrFeedbackClosed)
}

func TestCreateQuestion_InvalidCategory(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	_, err := svc.CreateQuestion(context.Background(), &model.FeedbackQuestion{
		Question: "Thoughts?",
		Category: "gossip",
	})

	assert.ErrorIs(t, err, httperr.ErrInvalidCategory)
	repo.AssertNotCalled(t, "CreateQuestion")
}

func TestSetResponseStatus_Invalid(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	resp := &model.FeedbackResponse{ID: uuid.New(), Status: model.ResponseStatusPending}
	repo.On("FindResponseByID", mock.Anything, resp.ID).Return(resp, nil)

	_, err := svc.SetResponseStatus(context.Background(), resp.ID, "archived")

	assert.ErrorIs(t, err, httperr.ErrInvalidStatus)
	repo.AssertNotCalled(t, "SaveResponse")
}

func TestSetResponseStatus_Success(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	resp := &model.FeedbackResponse{ID: uuid.New(), Status: model.ResponseStatusPending}
	repo.On("FindResponseByID", mock.Anything, resp.ID).Return(resp, nil)
	repo.On("SaveResponse", mock.Anything, resp).Return(nil)

	got, err := svc.SetResponseStatus(context.Background(), resp.ID, model.ResponseStatusResolved)

	assert.NoError(t, err)
	assert.Equal(t, model.ResponseStatusResolved, got.Status)
}

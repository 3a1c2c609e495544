package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"communityhub/internal/model"
)

// FeedbackRepository defines persistence operations for feedback questions
// and responses. Question deletion composes FindQuestionByIDForUpdate and
// CountResponses with either DeleteQuestion or SaveQuestion inside
// WithTransaction; response submission locks the question row the same way so
// the two paths serialize instead of racing.
type FeedbackRepository interface {
	CreateQuestion(ctx context.Context, q *model.FeedbackQuestion) error
	SaveQuestion(ctx context.Context, q *model.FeedbackQuestion) error
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
	FindQuestionByID(ctx context.Context, id uuid.UUID) (*model.FeedbackQuestion, error)
	FindQuestionByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.FeedbackQuestion, error)
	ListQuestions(ctx context.Context, activeOnly bool) ([]model.FeedbackQuestion, error)
	CountResponses(ctx context.Context, questionID uuid.UUID) (int64, error)
	CreateResponse(ctx context.Context, resp *model.FeedbackResponse) error
	SaveResponse(ctx context.Context, resp *model.FeedbackResponse) error
	FindResponseByID(ctx context.Context, id uuid.UUID) (*model.FeedbackResponse, error)
	ListResponses(ctx context.Context, questionID uuid.UUID) ([]model.FeedbackResponse, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo FeedbackRepository) error) error
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository builds a GORM-backed repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) CreateQuestion(ctx context.Context, q *model.FeedbackQuestion) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *feedbackRepository) SaveQuestion(ctx context.Context, q *model.FeedbackQuestion) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *feedbackRepository) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.FeedbackQuestion{}, "id = ?", id).Error
}

func (r *feedbackRepository) FindQuestionByID(ctx context.Context, id uuid.UUID) (*model.FeedbackQuestion, error) {
	var q model.FeedbackQuestion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// FindQuestionByIDForUpdate finds a question with a FOR UPDATE row lock so the
// response count read afterwards in the same transaction stays accurate.
func (r *feedbackRepository) FindQuestionByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.FeedbackQuestion, error) {
	var q model.FeedbackQuestion
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *feedbackRepository) ListQuestions(ctx context.Context, activeOnly bool) ([]model.FeedbackQuestion, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var questions []model.FeedbackQuestion
	if err := q.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *feedbackRepository) CountResponses(ctx context.Context, questionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FeedbackResponse{}).
		Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}

// CreateResponse inserts the response row. The composite unique index on
// (question_id, user_id) turns a duplicate into gorm.ErrDuplicatedKey.
func (r *feedbackRepository) CreateResponse(ctx context.Context, resp *model.FeedbackResponse) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *feedbackRepository) SaveResponse(ctx context.Context, resp *model.FeedbackResponse) error {
	return r.db.WithContext(ctx).Save(resp).Error
}

func (r *feedbackRepository) FindResponseByID(ctx context.Context, id uuid.UUID) (*model.FeedbackResponse, error) {
	var resp model.FeedbackResponse
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&resp).Error; err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListResponses returns responses for one question, or all responses when
// questionID is uuid.Nil.
func (r *feedbackRepository) ListResponses(ctx context.Context, questionID uuid.UUID) ([]model.FeedbackResponse, error) {
	q := r.db.WithContext(ctx).Preload("User").Order("created_at DESC")
	if questionID != uuid.Nil {
		q = q.Where("question_id = ?", questionID)
	}
	var responses []model.FeedbackResponse
	if err := q.Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

// WithTransaction executes a function within a database transaction.
func (r *feedbackRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo FeedbackRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &feedbackRepository{db: tx})
	})
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"communityhub/internal/model"
)

// PollRepository defines poll persistence operations. CreateVote and
// IncrementOptionVotes are meant to run together inside WithTransaction so a
// recorded voter and the counter bump commit or fail as one unit.
type PollRepository interface {
	Create(ctx context.Context, poll *model.Poll) error
	Save(ctx context.Context, poll *model.Poll) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Poll, error)
	List(ctx context.Context) ([]model.Poll, error)
	CreateVote(ctx context.Context, vote *model.PollVote) error
	IncrementOptionVotes(ctx context.Context, optionID uuid.UUID) error
	ListVotes(ctx context.Context, pollID uuid.UUID) ([]model.PollVote, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo PollRepository) error) error
}

type pollRepository struct {
	db *gorm.DB
}

// NewPollRepository builds a GORM-backed repository.
func NewPollRepository(db *gorm.DB) PollRepository {
	return &pollRepository{db: db}
}

func (r *pollRepository) Create(ctx context.Context, poll *model.Poll) error {
	return r.db.WithContext(ctx).Create(poll).Error
}

func (r *pollRepository) Save(ctx context.Context, poll *model.Poll) error {
	return r.db.WithContext(ctx).Omit("Options", "CreatedBy").Save(poll).Error
}

func (r *pollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", id).Delete(&model.PollVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", id).Delete(&model.PollOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Poll{}, "id = ?", id).Error
	})
}

func (r *pollRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Poll, error) {
	var poll model.Poll
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("CreatedBy").
		Where("id = ?", id).
		First(&poll).Error
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *pollRepository) List(ctx context.Context) ([]model.Poll, error) {
	var polls []model.Poll
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("CreatedBy").
		Order("created_at DESC").
		Find(&polls).Error
	if err != nil {
		return nil, err
	}
	return polls, nil
}

// CreateVote inserts the voter row. The composite unique index on
// (poll_id, user_id) turns a duplicate into gorm.ErrDuplicatedKey.
func (r *pollRepository) CreateVote(ctx context.Context, vote *model.PollVote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

// IncrementOptionVotes bumps the counter with a SQL expression rather than a
// read-modify-write, so concurrent votes never lose increments.
func (r *pollRepository) IncrementOptionVotes(ctx context.Context, optionID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.PollOption{}).
		Where("id = ?", optionID).
		Update("votes", gorm.Expr("votes + 1")).Error
}

func (r *pollRepository) ListVotes(ctx context.Context, pollID uuid.UUID) ([]model.PollVote, error) {
	var votes []model.PollVote
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("poll_id = ?", pollID).
		Order("created_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// WithTransaction executes a function within a database transaction.
func (r *pollRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo PollRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &pollRepository{db: tx})
	})
}

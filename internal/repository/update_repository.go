package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"communityhub/internal/model"
)

// UpdateRepository defines persistence operations for published updates.
type UpdateRepository interface {
	Create(ctx context.Context, update *model.Update) error
	Save(ctx context.Context, update *model.Update) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Update, error)
	List(ctx context.Context, updateType model.UpdateType) ([]model.Update, error)
}

type updateRepository struct {
	db *gorm.DB
}

// NewUpdateRepository builds a GORM-backed repository.
func NewUpdateRepository(db *gorm.DB) UpdateRepository {
	return &updateRepository{db: db}
}

func (r *updateRepository) Create(ctx context.Context, update *model.Update) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *updateRepository) Save(ctx context.Context, update *model.Update) error {
	return r.db.WithContext(ctx).Save(update).Error
}

func (r *updateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Update{}, "id = ?", id).Error
}

func (r *updateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Update, error) {
	var update model.Update
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&update).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

// List returns updates newest first, optionally filtered by type.
func (r *updateRepository) List(ctx context.Context, updateType model.UpdateType) ([]model.Update, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if updateType != "" {
		q = q.Where("type = ?", updateType)
	}
	var updates []model.Update
	if err := q.Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

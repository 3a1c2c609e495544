package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"communityhub/internal/model"
)

// WorkshopRepository defines workshop persistence operations. The capacity
// check composes FindByIDForUpdate + CountRegistrations + CreateRegistration
// inside WithTransaction, holding the workshop row lock for the duration.
type WorkshopRepository interface {
	Create(ctx context.Context, workshop *model.Workshop) error
	Save(ctx context.Context, workshop *model.Workshop) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Workshop, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Workshop, error)
	List(ctx context.Context) ([]model.Workshop, error)
	CountRegistrations(ctx context.Context, workshopID uuid.UUID) (int64, error)
	HasRegistration(ctx context.Context, workshopID, userID uuid.UUID) (bool, error)
	CreateRegistration(ctx context.Context, reg *model.WorkshopRegistration) error
	DeleteRegistration(ctx context.Context, workshopID, userID uuid.UUID) (int64, error)
	ListRegistrations(ctx context.Context, workshopID uuid.UUID) ([]model.WorkshopRegistration, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo WorkshopRepository) error) error
}

type workshopRepository struct {
	db *gorm.DB
}

// NewWorkshopRepository builds a GORM-backed repository.
func NewWorkshopRepository(db *gorm.DB) WorkshopRepository {
	return &workshopRepository{db: db}
}

func (r *workshopRepository) Create(ctx context.Context, workshop *model.Workshop) error {
	return r.db.WithContext(ctx).Create(workshop).Error
}

func (r *workshopRepository) Save(ctx context.Context, workshop *model.Workshop) error {
	return r.db.WithContext(ctx).Save(workshop).Error
}

func (r *workshopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Workshop{}, "id = ?", id).Error
}

func (r *workshopRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Workshop, error) {
	var workshop model.Workshop
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&workshop).Error; err != nil {
		return nil, err
	}
	return &workshop, nil
}

// FindByIDForUpdate finds a workshop by ID with a FOR UPDATE row lock, so a
// capacity check in the same transaction cannot interleave with a concurrent
// registration.
func (r *workshopRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Workshop, error) {
	var workshop model.Workshop
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&workshop).Error; err != nil {
		return nil, err
	}
	return &workshop, nil
}

func (r *workshopRepository) List(ctx context.Context) ([]model.Workshop, error) {
	var workshops []model.Workshop
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&workshops).Error; err != nil {
		return nil, err
	}
	return workshops, nil
}

func (r *workshopRepository) CountRegistrations(ctx context.Context, workshopID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WorkshopRegistration{}).
		Where("workshop_id = ?", workshopID).Count(&count).Error
	return count, err
}

func (r *workshopRepository) HasRegistration(ctx context.Context, workshopID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WorkshopRegistration{}).
		Where("workshop_id = ? AND user_id = ?", workshopID, userID).
		Count(&count).Error
	return count > 0, err
}

// CreateRegistration inserts the attendee row. The composite unique index on
// (workshop_id, user_id) turns a duplicate into gorm.ErrDuplicatedKey.
func (r *workshopRepository) CreateRegistration(ctx context.Context, reg *model.WorkshopRegistration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

// DeleteRegistration removes the attendee row and reports rows affected.
func (r *workshopRepository) DeleteRegistration(ctx context.Context, workshopID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("workshop_id = ? AND user_id = ?", workshopID, userID).
		Delete(&model.WorkshopRegistration{})
	return res.RowsAffected, res.Error
}

func (r *workshopRepository) ListRegistrations(ctx context.Context, workshopID uuid.UUID) ([]model.WorkshopRegistration, error) {
	var regs []model.WorkshopRegistration
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("workshop_id = ?", workshopID).
		Order("created_at ASC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// WithTransaction executes a function within a database transaction.
func (r *workshopRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo WorkshopRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &workshopRepository{db: tx})
	})
}

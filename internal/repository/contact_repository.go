package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"communityhub/internal/model"
)

// ContactRepository defines persistence operations for emergency contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.EmergencyContact) error
	Save(ctx context.Context, contact *model.EmergencyContact) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EmergencyContact, error)
	List(ctx context.Context) ([]model.EmergencyContact, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository builds a GORM-backed repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.EmergencyContact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) Save(ctx context.Context, contact *model.EmergencyContact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EmergencyContact{}, "id = ?", id).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.EmergencyContact, error) {
	var contact model.EmergencyContact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) List(ctx context.Context) ([]model.EmergencyContact, error) {
	var contacts []model.EmergencyContact
	if err := r.db.WithContext(ctx).Order("category ASC, name ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"communityhub/internal/httperr"
	"communityhub/internal/model"
	"communityhub/internal/repository"
)

// ContactService handles admin-managed emergency contacts. Reads are public,
// mutations are admin-only at the route level.
type ContactService interface {
	List(ctx context.Context) ([]model.EmergencyContact, error)
	Get(ctx context.Context, id uuid.UUID) (*model.EmergencyContact, error)
	Create(ctx context.Context, contact *model.EmergencyContact) (*model.EmergencyContact, error)
	Update(ctx context.Context, id uuid.UUID, contact *model.EmergencyContact) (*model.EmergencyContact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactService struct {
	repo repository.ContactRepository
}

// NewContactService builds a ContactService.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) List(ctx context.Context) ([]model.EmergencyContact, error) {
	return s.repo.List(ctx)
}

func (s *contactService) Get(ctx context.Context, id uuid.UUID) (*model.EmergencyContact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (s *contactService) Create(ctx context.Context, contact *model.EmergencyContact) (*model.EmergencyContact, error) {
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) Update(ctx context.Context, id uuid.UUID, in *model.EmergencyContact) (*model.EmergencyContact, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Designation = in.Designation
	existing.Phone = in.Phone
	existing.Category = in.Category

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("save contact: %w", err)
	}
	return existing, nil
}

func (s *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

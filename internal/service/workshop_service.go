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

// WorkshopView is a workshop with its current registration count.
type WorkshopView struct {
	model.Workshop
	RegisteredCount int64 `json:"registered_count"`
}

// WorkshopService handles workshops and registrations. Workshop CRUD is
// admin-only at the route level; registration is open to authenticated
// members subject to the capacity and one-per-user rules.
type WorkshopService interface {
	List(ctx context.Context) ([]WorkshopView, error)
	Get(ctx context.Context, id uuid.UUID) (*WorkshopView, error)
	Create(ctx context.Context, workshop *model.Workshop) (*model.Workshop, error)
	Update(ctx context.Context, id uuid.UUID, workshop *model.Workshop) (*model.Workshop, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Register(ctx context.Context, caller auth.Identity, workshopID uuid.UUID) error
	Unregister(ctx context.Context, caller auth.Identity, workshopID uuid.UUID) error
	Attendees(ctx context.Context, workshopID uuid.UUID) ([]model.UserRef, error)
}

type workshopService struct {
	repo repository.WorkshopRepository
}

// NewWorkshopService builds a WorkshopService.
func NewWorkshopService(repo repository.WorkshopRepository) WorkshopService {
	return &workshopService{repo: repo}
}

func (s *workshopService) List(ctx context.Context) ([]WorkshopView, error) {
	workshops, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]WorkshopView, 0, len(workshops))
	for _, w := range workshops {
		count, err := s.repo.CountRegistrations(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, WorkshopView{Workshop: w, RegisteredCount: count})
	}
	return views, nil
}

func (s *workshopService) Get(ctx context.Context, id uuid.UUID) (*WorkshopView, error) {
	workshop, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountRegistrations(ctx, id)
	if err != nil {
		return nil, err
	}
	return &WorkshopView{Workshop: *workshop, RegisteredCount: count}, nil
}

func (s *workshopService) Create(ctx context.Context, workshop *model.Workshop) (*model.Workshop, error) {
	if workshop.Capacity < 0 {
		return nil, httperr.ErrInvalidStatus
	}
	if err := s.repo.Create(ctx, workshop); err != nil {
		return nil, fmt.Errorf("create workshop: %w", err)
	}
	return workshop, nil
}

func (s *workshopService) Update(ctx context.Context, id uuid.UUID, in *model.Workshop) (*model.Workshop, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Capacity < 0 {
		return nil, httperr.ErrInvalidStatus
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.Venue = in.Venue
	existing.Date = in.Date
	existing.Capacity = in.Capacity
	existing.ImageURL = in.ImageURL

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("save workshop: %w", err)
	}
	return existing, nil
}

func (s *workshopService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Register adds the caller as an attendee. The workshop row is locked for the
// duration of the transaction so the capacity check and the insert cannot be
// interleaved by a concurrent registration; the composite unique index
// backstops duplicates.
func (s *workshopService) Register(ctx context.Context, caller auth.Identity, workshopID uuid.UUID) error {
	return s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.WorkshopRepository) error {
		workshop, err := txRepo.FindByIDForUpdate(ctx, workshopID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound
			}
			return err
		}

		registered, err := txRepo.HasRegistration(ctx, workshopID, caller.UserID)
		if err != nil {
			return err
		}
		if registered {
			return httperr.ErrAlreadyRegistered
		}

		count, err := txRepo.CountRegistrations(ctx, workshopID)
		if err != nil {
			return err
		}
		if count >= int64(workshop.Capacity) {
			return httperr.ErrWorkshopFull
		}

		reg := &model.WorkshopRegistration{
			WorkshopID: workshopID,
			UserID:     caller.UserID,
		}
		if err := txRepo.CreateRegistration(ctx, reg); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return httperr.ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
}

// Unregister cancels the caller's own registration.
func (s *workshopService) Unregister(ctx context.Context, caller auth.Identity, workshopID uuid.UUID) error {
	if _, err := s.find(ctx, workshopID); err != nil {
		return err
	}
	affected, err := s.repo.DeleteRegistration(ctx, workshopID, caller.UserID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return httperr.ErrNotRegistered
	}
	return nil
}

// Attendees lists registered users; exposed to admins only at the route level.
func (s *workshopService) Attendees(ctx context.Context, workshopID uuid.UUID) ([]model.UserRef, error) {
	if _, err := s.find(ctx, workshopID); err != nil {
		return nil, err
	}
	regs, err := s.repo.ListRegistrations(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	refs := make([]model.UserRef, 0, len(regs))
	for _, reg := range regs {
		if reg.User != nil {
			refs = append(refs, reg.User.Ref())
		}
	}
	return refs, nil
}

func (s *workshopService) find(ctx context.Context, id uuid.UUID) (*model.Workshop, error) {
	workshop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return workshop, nil
}

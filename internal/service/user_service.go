package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"communityhub/internal/httperr"
	"communityhub/internal/model"
	"communityhub/internal/repository"
)

// UserService exposes admin user management. Route-level middleware already
// guarantees the caller is an admin.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.Status, newExpiry *time.Time) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// SetStatus deactivates a user, or reactivates one with a fresh expiry.
// Reactivation without a future expiry is rejected: the save hook would flip
// the account straight back to inactive.
func (s *userService) SetStatus(ctx context.Context, id uuid.UUID, status model.Status, newExpiry *time.Time) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}

	if status == model.StatusActive {
		if newExpiry != nil {
			user.ExpiryDate = *newExpiry
		}
		if user.Expired() {
			return nil, httperr.ErrInvalidStatus
		}
	}
	user.Status = status

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

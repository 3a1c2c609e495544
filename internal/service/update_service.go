package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"communityhub/internal/cache"
	"communityhub/internal/httperr"
	"communityhub/internal/model"
	"communityhub/internal/repository"
)

const updatesCacheTTL = 5 * time.Minute

// UpdateService handles published updates. Mutations are admin-only at the
// route level; the redirect URL rule is enforced here on both create and
// update so no path can store a stray redirect.
type UpdateService interface {
	List(ctx context.Context, updateType model.UpdateType) ([]model.Update, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Update, error)
	Create(ctx context.Context, update *model.Update) (*model.Update, error)
	Update(ctx context.Context, id uuid.UUID, update *model.Update) (*model.Update, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type updateService struct {
	repo  repository.UpdateRepository
	cache *cache.Client
}

// NewUpdateService builds an UpdateService with repository and cache.
func NewUpdateService(repo repository.UpdateRepository, cache *cache.Client) UpdateService {
	return &updateService{repo: repo, cache: cache}
}

func (s *updateService) cacheKey(t model.UpdateType) string {
	return fmt.Sprintf("updates:%s", t)
}

func (s *updateService) List(ctx context.Context, updateType model.UpdateType) ([]model.Update, error) {
	if updateType != "" && !model.ValidUpdateType(updateType) {
		return nil, httperr.ErrInvalidUpdateType
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(updateType)); data != nil {
		var cached []model.Update
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	updates, err := s.repo.List(ctx, updateType)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(updates); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(updateType), payload, updatesCacheTTL)
	}
	return updates, nil
}

func (s *updateService) Get(ctx context.Context, id uuid.UUID) (*model.Update, error) {
	update, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return update, nil
}

func (s *updateService) Create(ctx context.Context, update *model.Update) (*model.Update, error) {
	if !model.ValidUpdateType(update.Type) {
		return nil, httperr.ErrInvalidUpdateType
	}
	if err := normalizeRedirect(update); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, update); err != nil {
		return nil, fmt.Errorf("create update: %w", err)
	}
	s.invalidate(ctx, update.Type)
	return update, nil
}

func (s *updateService) Update(ctx context.Context, id uuid.UUID, in *model.Update) (*model.Update, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.ValidUpdateType(in.Type) {
		return nil, httperr.ErrInvalidUpdateType
	}

	oldType := existing.Type
	existing.Type = in.Type
	existing.Title = in.Title
	existing.Content = in.Content
	existing.ImageURL = in.ImageURL
	existing.RedirectURL = in.RedirectURL

	// Same rule as on create: a type change away from blogs clears the
	// redirect even when the caller supplied one.
	if err := normalizeRedirect(existing); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("save update: %w", err)
	}
	s.invalidate(ctx, oldType)
	if existing.Type != oldType {
		s.invalidate(ctx, existing.Type)
	}
	return existing, nil
}

func (s *updateService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, existing.Type)
	return nil
}

func (s *updateService) invalidate(ctx context.Context, t model.UpdateType) {
	_ = s.cache.Delete(ctx, s.cacheKey(t))
	_ = s.cache.Delete(ctx, s.cacheKey(""))
}

// normalizeRedirect enforces the redirect-url-iff-blogs invariant in the one
// place both mutation paths share.
func normalizeRedirect(u *model.Update) error {
	if u.Type == model.UpdateTypeBlogs {
		if u.RedirectURL == "" {
			return httperr.ErrRedirectURLRequired
		}
		return nil
	}
	u.RedirectURL = ""
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"communityhub/internal/auth"
	"communityhub/internal/httperr"
	"communityhub/internal/media"
	"communityhub/internal/model"
	"communityhub/internal/repository"
)

// IndustryService handles member business listings. Mutations follow the
// shared order: resource must exist, then the caller must be the owner or an
// admin, then input is applied.
type IndustryService interface {
	List(ctx context.Context) ([]model.Industry, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Industry, error)
	Create(ctx context.Context, caller auth.Identity, industry *model.Industry) (*model.Industry, error)
	Update(ctx context.Context, caller auth.Identity, id uuid.UUID, industry *model.Industry) (*model.Industry, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
	AddProductImage(ctx context.Context, caller auth.Identity, industryID, productID uuid.UUID, filename string, r io.Reader) (string, error)
}

type industryService struct {
	repo     repository.IndustryRepository
	uploader media.Uploader
}

// NewIndustryService builds an IndustryService.
func NewIndustryService(repo repository.IndustryRepository, uploader media.Uploader) IndustryService {
	return &industryService{repo: repo, uploader: uploader}
}

func (s *industryService) List(ctx context.Context) ([]model.Industry, error) {
	return s.repo.List(ctx)
}

func (s *industryService) Get(ctx context.Context, id uuid.UUID) (*model.Industry, error) {
	industry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return industry, nil
}

// Create stores a new listing owned by the caller.
func (s *industryService) Create(ctx context.Context, caller auth.Identity, industry *model.Industry) (*model.Industry, error) {
	industry.ID = uuid.New()
	industry.OwnerID = caller.UserID
	if err := s.repo.Create(ctx, industry); err != nil {
		return nil, fmt.Errorf("create industry: %w", err)
	}
	return s.Get(ctx, industry.ID)
}

// Update applies new fields and replaces the product list wholesale.
func (s *industryService) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in *model.Industry) (*model.Industry, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(caller, existing.OwnerID) {
		return nil, httperr.ErrForbidden
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.Address = in.Address
	existing.Phone = in.Phone
	existing.Website = in.Website
	existing.Vacancy = in.Vacancy

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("save industry: %w", err)
	}
	if err := s.repo.ReplaceProducts(ctx, id, in.Products); err != nil {
		return nil, fmt.Errorf("replace products: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *industryService) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanModify(caller, existing.OwnerID) {
		return httperr.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// AddProductImage uploads an image through the media collaborator and appends
// the returned URL to the product. Only the URL string is persisted.
func (s *industryService) AddProductImage(ctx context.Context, caller auth.Identity, industryID, productID uuid.UUID, filename string, r io.Reader) (string, error) {
	industry, err := s.Get(ctx, industryID)
	if err != nil {
		return "", err
	}
	if !auth.CanModify(caller, industry.OwnerID) {
		return "", httperr.ErrForbidden
	}

	var product *model.Product
	for i := range industry.Products {
		if industry.Products[i].ID == productID {
			product = &industry.Products[i]
			break
		}
	}
	if product == nil {
		return "", httperr.ErrNotFound
	}

	url, err := s.uploader.Upload(ctx, filename, r)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	product.Images = append(product.Images, url)
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return "", fmt.Errorf("save product: %w", err)
	}
	return url, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"communityhub/internal/model"
)

// IndustryRepository defines industry persistence operations.
type IndustryRepository interface {
	Create(ctx context.Context, industry *model.Industry) error
	Save(ctx context.Context, industry *model.Industry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Industry, error)
	List(ctx context.Context) ([]model.Industry, error)
	ReplaceProducts(ctx context.Context, industryID uuid.UUID, products []model.Product) error
	SaveProduct(ctx context.Context, product *model.Product) error
}

type industryRepository struct {
	db *gorm.DB
}

// NewIndustryRepository builds a GORM-backed repository.
func NewIndustryRepository(db *gorm.DB) IndustryRepository {
	return &industryRepository{db: db}
}

func (r *industryRepository) Create(ctx context.Context, industry *model.Industry) error {
	return r.db.WithContext(ctx).Create(industry).Error
}

func (r *industryRepository) Save(ctx context.Context, industry *model.Industry) error {
	return r.db.WithContext(ctx).Omit("Products", "Owner").Save(industry).Error
}

func (r *industryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Industry{}, "id = ?", id).Error
}

func (r *industryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Industry, error) {
	var industry model.Industry
	err := r.db.WithContext(ctx).
		Preload("Products").
		Preload("Owner").
		Where("id = ?", id).
		First(&industry).Error
	if err != nil {
		return nil, err
	}
	return &industry, nil
}

func (r *industryRepository) List(ctx context.Context) ([]model.Industry, error) {
	var industries []model.Industry
	err := r.db.WithContext(ctx).
		Preload("Products").
		Preload("Owner").
		Order("name ASC").
		Find(&industries).Error
	if err != nil {
		return nil, err
	}
	return industries, nil
}

// ReplaceProducts swaps the full product list of an industry in one transaction.
func (r *industryRepository) ReplaceProducts(ctx context.Context, industryID uuid.UUID, products []model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("industry_id = ?", industryID).Delete(&model.Product{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		for i := range products {
			products[i].IndustryID = industryID
		}
		return tx.Create(&products).Error
	})
}

func (r *industryRepository) SaveProduct(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

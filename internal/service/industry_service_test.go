package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"communityhub/internal/auth"
	"communityhub/internal/httperr"
	"communityhub/internal/model"
)

// MockIndustryRepository is a mock implementation of IndustryRepository.
type MockIndustryRepository struct {
	mock.Mock
}

func (m *MockIndustryRepository) Create(ctx context.Context, industry *model.Industry) error {
	args := m.Called(ctx, industry)
	return args.Error(0)
}

func (m *MockIndustryRepository) Save(ctx context.Context, industry *model.Industry) error {
	args := m.Called(ctx, industry)
	return args.Error(0)
}

func (m *MockIndustryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIndustryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Industry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Industry), args.Error(1)
}

func (m *MockIndustryRepository) List(ctx context.Context) ([]model.Industry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Industry), args.Error(1)
}

func (m *MockIndustryRepository) ReplaceProducts(ctx context.Context, industryID uuid.UUID, products []model.Product) error {
	args := m.Called(ctx, industryID, products)
	return args.Error(0)
}

func (m *MockIndustryRepository) SaveProduct(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockUploader is a mock implementation of media.Uploader.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, r)
	return args.String(0), args.Error(1)
}

func sampleIndustry(ownerID uuid.UUID) *model.Industry {
	return &model.Industry{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    "Hillside Pottery",
		Phone:   "555-0101",
	}
}

func TestIndustryUpdate_OwnerAllowed(t *testing.T) {
	repo := new(MockIndustryRepository)
	svc := NewIndustryService(repo, new(MockUploader))

	owner := member()
	industry := sampleIndustry(owner.UserID)
	repo.On("FindByID", mock.Anything, industry.ID).Return(industry, nil)
	repo.On("Save", mock.Anything, industry).Return(nil)
	repo.On("ReplaceProducts", mock.Anything, industry.ID, mock.Anything).Return(nil)

	_, err := svc.Update(context.Background(), owner, industry.ID, &model.Industry{Name: "Hillside Ceramics"})

	assert.NoError(t, err)
	assert.Equal(t, "Hillside Ceramics", industry.Name)
}

func TestIndustryUpdate_StrangerForbidden(t *testing.T) {
	repo := new(MockIndustryRepository)
	svc := NewIndustryService(repo, new(MockUploader))

	industry := sampleIndustry(uuid.New())
	repo.On("FindByID", mock.Anything, industry.ID).Return(industry, nil)

	_, err := svc.Update(context.Background(), member(), industry.ID, &model.Industry{Name: "Hijacked"})

	assert.ErrorIs(t, err, httperr.ErrForbidden)
	repo.AssertNotCalled(t, "Save")
}

func TestIndustryUpdate_AdminAllowed(t *testing.T) {
	repo := new(MockIndustryRepository)
	svc := NewIndustryService(repo, new(MockUploader))

	industry := sampleIndustry(uuid.New())
	admin := auth.Identity{UserID: uuid.New(), Username: "root", Role: model.RoleAdmin}
	repo.On("FindByID", mock.Anything, industry.ID).Return(industry, nil)
	repo.On("Save", mock.Anything, industry).Return(nil)
	repo.On("ReplaceProducts", mock.Anything, industry.ID, mock.Anything).Return(nil)

	_, err := svc.Update(context.Background(), admin, industry.ID, &model.Industry{Name: "Renamed"})

	assert.NoError(t, err)
}

func TestIndustryDelete_NotFoundBeforeForbidden(t *testing.T) {
	repo := new(MockIndustryRepository)
	svc := NewIndustryService(repo, new(MockUploader))

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), member(), id)

	assert.ErrorIs(t, err, httperr.ErrNotFound)
	repo.AssertNotCalled(t, "Delete")
}

func TestIndustryDelete_StrangerForbidden(t *testing.T) {
	repo := new(MockIndustryRepository)
	svc := NewIndustryService(repo, new(MockUploader))

	industry := sampleIndustry(uuid.New())
	repo.On("FindByID", mock.Anything, industry.ID).Return(industry, nil)

	err := svc.Delete(context.Background(), member(), industry.ID)

	assert.ErrorIs(t, err, httperr.ErrForbidden)
	repo.AssertNotCalled(t, "Delete")
}

func TestIndustryCreate_SetsOwner(t *testing.T) {
	repo := new(MockIndustryRepository)
	svc := NewIndustryService(repo, new(MockUploader))

	caller := member()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(i *model.Industry) bool {
		return i.OwnerID == caller.UserID
	})).Return(nil)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(sampleIndustry(caller.UserID), nil)

	_, err := svc.Create(context.Background(), caller, &model.Industry{Name: "Hillside Pottery"})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAddProductImage_AppendsURL(t *testing.T) {
	repo := new(MockIndustryRepository)
	uploader := new(MockUploader)
	svc := NewIndustryService(repo, uploader)

	owner := member()
	industry := sampleIndustry(owner.UserID)
	product := model.Product{ID: uuid.New(), IndustryID: industry.ID, Name: "Glazed bowl"}
	industry.Products = []model.Product{product}

	repo.On("FindByID", mock.Anything, industry.ID).Return(industry, nil)
	uploader.On("Upload", mock.Anything, "bowl.jpg", mock.Anything).Return("/uploads/abc.jpg", nil)
	repo.On("SaveProduct", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return len(p.Images) == 1 && p.Images[0] == "/uploads/abc.jpg"
	})).Return(nil)

	url, err := svc.AddProductImage(context.Background(), owner, industry.ID, product.ID, "bowl.jpg", strings.NewReader("img"))

	assert.NoError(t, err)
	assert.Equal(t, "/uploads/abc.jpg", url)
}

func TestAddProductImage_UnknownProduct(t *testing.T) {
	repo := new(MockIndustryRepository)
	uploader := new(MockUploader)
	svc := NewIndustryService(repo, uploader)

	owner := member()
	industry := sampleIndustry(owner.UserID)
	repo.On("FindByID", mock.Anything, industry.ID).Return(industry, nil)

	_, err := svc.AddProductImage(context.Background(), owner, industry.ID, uuid.New(), "bowl.jpg", strings.NewReader("img"))

	assert.ErrorIs(t, err, httperr.ErrNotFound)
	uploader.AssertNotCalled(t, "Upload")
}

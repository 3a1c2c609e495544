package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"communityhub/internal/httperr"
	"communityhub/internal/model"
)

// MockUpdateRepository is a mock implementation of UpdateRepository.
type MockUpdateRepository struct {
	mock.Mock
}

func (m *MockUpdateRepository) Create(ctx context.Context, update *model.Update) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockUpdateRepository) Save(ctx context.Context, update *model.Update) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockUpdateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUpdateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Update, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Update), args.Error(1)
}

func (m *MockUpdateRepository) List(ctx context.Context, updateType model.UpdateType) ([]model.Update, error) {
	args := m.Called(ctx, updateType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Update), args.Error(1)
}

func TestCreateUpdate_BlogsRequiresRedirect(t *testing.T) {
	repo := new(MockUpdateRepository)
	svc := NewUpdateService(repo, nil)

	_, err := svc.Create(context.Background(), &model.Update{
		Type:  model.UpdateTypeBlogs,
		Title: "Harvest recap",
	})

	assert.ErrorIs(t, err, httperr.ErrRedirectURLRequired)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateUpdate_BlogsKeepsRedirect(t *testing.T) {
	repo := new(MockUpdateRepository)
	svc := NewUpdateService(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	got, err := svc.Create(context.Background(), &model.Update{
		Type:        model.UpdateTypeBlogs,
		Title:       "Harvest recap",
		RedirectURL: "https://blog.example.com/harvest",
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://blog.example.com/harvest", got.RedirectURL)
}

func TestCreateUpdate_NonBlogsClearsRedirect(t *testing.T) {
	repo := new(MockUpdateRepository)
	svc := NewUpdateService(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	got, err := svc.Create(context.Background(), &model.Update{
		Type:        model.UpdateTypeNews,
		Title:       "Road closure",
		RedirectURL: "https://sneaky.example.com",
	})

	assert.NoError(t, err)
	assert.Empty(t, got.RedirectURL)
}

func TestCreateUpdate_UnknownType(t *testing.T) {
	repo := new(MockUpdateRepository)
	svc := NewUpdateService(repo, nil)

	_, err := svc.Create(context.Background(), &model.Update{Type: "press", Title: "x"})

	assert.ErrorIs(t, err, httperr.ErrInvalidUpdateType)
}

func TestUpdateUpdate_TypeChangeAwayFromBlogsClearsRedirect(t *testing.T) {
	repo := new(MockUpdateRepository)
	svc := NewUpdateService(repo, nil)

	existing := &model.Update{
		ID:          uuid.New(),
		Type:        model.UpdateTypeBlogs,
		Title:       "Harvest recap",
		RedirectURL: "https://blog.example.com/harvest",
	}
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	got, err := svc.Update(context.Background(), existing.ID, &model.Update{
		Type:        model.UpdateTypeNews,
		Title:       "Harvest recap",
		RedirectURL: "https://blog.example.com/harvest",
	})

	assert.NoError(t, err)
	assert.Empty(t, got.RedirectURL)
}

func TestUpdateUpdate_ChangeToBlogsNeedsRedirect(t *testing.T) {
	repo := new(MockUpdateRepository)
	svc := NewUpdateService(repo, nil)

	existing := &model.Update{ID: uuid.New(), Type: model.UpdateTypeNews, Title: "Road closure"}
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

	_, err := svc.Update(context.Background(), existing.ID, &model.Update{
		Type:  model.UpdateTypeBlogs,
		Title: "Road closure",
	})

	assert.ErrorIs(t, err, httperr.ErrRedirectURLRequired)
	repo.AssertNotCalled(t, "Save")
}

func TestUpdateUpdate_NotFound(t *testing.T) {
	repo := new(MockUpdateRepository)
	svc := NewUpdateService(repo, nil)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), id, &model.Update{Type: model.UpdateTypeNews})

	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

func TestListUpdates_InvalidTypeFilter(t *testing.T) {
	repo := new(MockUpdateRepository)
	svc := NewUpdateService(repo, nil)

	_, err := svc.List(context.Background(), "press")

	assert.ErrorIs(t, err, httperr.ErrInvalidUpdateType)
	repo.AssertNotCalled(t, "List")
}

func TestListUpdates_FiltersByType(t *testing.T) {
	repo := new(MockUpdateRepository)
	svc := NewUpdateService(repo, nil)

	repo.On("List", mock.Anything, model.UpdateTypeNotices).Return([]model.Update{
		{ID: uuid.New(), Type: model.UpdateTypeNotices, Title: "Water outage"},
	}, nil)

	got, err := svc.List(context.Background(), model.UpdateTypeNotices)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, model.UpdateTypeNotices, got[0].Type)
}

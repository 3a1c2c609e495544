package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"communityhub/internal/httperr"
	"communityhub/internal/model"
)

func TestSetStatus_Deactivate(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	user := activeUser("pw")
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	got, err := svc.SetStatus(context.Background(), user.ID, model.StatusInactive, nil)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusInactive, got.Status)
}

func TestSetStatus_ReactivateWithFreshExpiry(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	user := activeUser("pw")
	user.Status = model.StatusInactive
	user.ExpiryDate = time.Now().Add(-time.Hour)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	fresh := time.Now().Add(365 * 24 * time.Hour)
	got, err := svc.SetStatus(context.Background(), user.ID, model.StatusActive, &fresh)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusActive, got.Status)
	assert.Equal(t, fresh, got.ExpiryDate)
}

func TestSetStatus_ReactivateWithPastExpiryRejected(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	user := activeUser("pw")
	user.Status = model.StatusInactive
	user.ExpiryDate = time.Now().Add(-time.Hour)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	_, err := svc.SetStatus(context.Background(), user.ID, model.StatusActive, nil)

	assert.ErrorIs(t, err, httperr.ErrInvalidStatus)
	repo.AssertNotCalled(t, "Save")
}

func TestSetStatus_UnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SetStatus(context.Background(), id, model.StatusInactive, nil)

	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"communityhub/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       uuid.New(),
		Username: "jdoe",
		Role:     model.RoleMember,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, model.RoleMember, claims.Role)
}

func TestRefreshTokenCarriesID(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(testUser())
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := svc.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(testUser())
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenID_AccessTokenHasNone(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(testUser())
	assert.NoError(t, err)

	_, err = svc.ExtractTokenID(token)
	assert.Error(t, err)
}

func TestCanModify(t *testing.T) {
	ownerID := uuid.New()

	owner := Identity{UserID: ownerID, Role: model.RoleMember}
	stranger := Identity{UserID: uuid.New(), Role: model.RoleMember}
	admin := Identity{UserID: uuid.New(), Role: model.RoleAdmin}

	assert.True(t, CanModify(owner, ownerID))
	assert.False(t, CanModify(stranger, ownerID))
	assert.True(t, CanModify(admin, ownerID))
}

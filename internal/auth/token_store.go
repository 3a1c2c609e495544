package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"communityhub/internal/cache"
	"communityhub/internal/model"
)

const refreshTokenKeyPrefix = "refresh_token:"

// StoredToken is the payload persisted per refresh token.
type StoredToken struct {
	UserID   string     `json:"user_id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, data StoredToken, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (StoredToken, error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore handles storage and retrieval of refresh tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, data StoredToken, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}
	return s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl)
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (StoredToken, error) {
	raw, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil || raw == nil {
		return StoredToken{}, fmt.Errorf("refresh token not found")
	}

	var data StoredToken
	if err := json.Unmarshal(raw, &data); err != nil {
		return StoredToken{}, fmt.Errorf("unmarshal token data: %w", err)
	}
	return data, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}

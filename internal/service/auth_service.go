package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"communityhub/internal/auth"
	"communityhub/internal/httperr"
	"communityhub/internal/model"
	"communityhub/internal/repository"
)

const bcryptCost = 10

// membershipDuration is how long a self-registered membership stays active
// before an admin has to renew it.
const membershipDuration = 365 * 24 * time.Hour

// AuthService handles registration, login and the refresh-token flow.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a member account with a hashed password. Admins are never
// created through self-registration.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, httperr.ErrUserExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleMember,
		Status:       model.StatusActive,
		ExpiryDate:   time.Now().Add(membershipDuration),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Unique email index backstops the race between check and insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, httperr.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens. Expired
// memberships are flipped to inactive here in addition to the save hook, so a
// lapsed account can never obtain tokens.
func (s *authService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", "", nil, httperr.ErrInvalidCredentials
	}

	if user.Expired() && user.Status == model.StatusActive {
		// Persisting triggers the BeforeSave flip.
		if saveErr := s.userRepo.Save(ctx, user); saveErr != nil {
			return "", "", nil, fmt.Errorf("deactivate expired user: %w", saveErr)
		}
	}
	if user.Status != model.StatusActive {
		return "", "", nil, httperr.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, httperr.ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	stored := auth.StoredToken{UserID: user.ID.String(), Username: user.Username, Role: user.Role}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, stored, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", httperr.ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", httperr.ErrInvalidRefreshToken
	}

	stored, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", httperr.ErrInvalidRefreshToken
	}
	if stored.UserID != claims.UserID || stored.Username != claims.Username {
		return "", httperr.ErrInvalidRefreshToken
	}

	// Re-load the user so a fresh access token picks up role and status
	// changes made since login.
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", httperr.ErrInvalidRefreshToken
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", httperr.ErrInvalidRefreshToken
	}
	if user.Status != model.StatusActive || user.Expired() {
		return "", httperr.ErrAccountInactive
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return httperr.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// CurrentUser loads the caller's fresh record from the store.
func (s *authService) CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	"github.com/noah-isme/ldbb-analytics-api/pkg/config"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

// UserStore abstracts credential and refresh-token persistence.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	CreateRefreshToken(ctx context.Context, token models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
}

// AuthService issues and validates access tokens.
type AuthService struct {
	store    UserStore
	jwtCfg   config.JWTConfig
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewAuthService constructs an auth service.
func NewAuthService(store UserStore, jwtCfg config.JWTConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		store:    store,
		jwtCfg:   jwtCfg,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Login verifies credentials and issues an access and refresh token pair.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.Wrapf(err, "username and password are required")
	}

	user, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		// same answer for unknown user and bad password
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("failed login attempt", zap.String("username", req.Username), zap.String("ip", req.IP))
		return nil, appErrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.ErrInternal.Wrapf(err, "sign access token")
	}

	now := s.now()
	refresh := models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.jwtCfg.RefreshExpiration),
		CreatedAt: now,
		IPAddress: req.IP,
		UserAgent: req.UserAgent,
	}
	if err := s.store.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, appErrors.ErrInternal.Wrapf(err, "persist refresh token")
	}

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		ExpiresIn:    int64(s.jwtCfg.Expiration.Seconds()),
		IssuedAt:     now,
		User: models.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, nil
}

// Refresh exchanges a stored refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, token string) (*models.LoginResponse, error) {
	stored, err := s.store.FindRefreshToken(ctx, token)
	if err != nil {
		return nil, appErrors.ErrUnauthorized
	}
	if s.now().After(stored.ExpiresAt) {
		return nil, appErrors.ErrUnauthorized.Wrapf(nil, "refresh token expired")
	}
	user, err := s.store.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, appErrors.ErrUnauthorized
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.ErrInternal.Wrapf(err, "sign access token")
	}
	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: token,
		ExpiresIn:    int64(s.jwtCfg.Expiration.Seconds()),
		IssuedAt:     s.now(),
		User: models.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, nil
}

// CurrentUser resolves the authenticated user's profile.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*models.UserInfo, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, appErrors.ErrNotFound.Wrapf(err, "user %d", userID)
	}
	return &models.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}, nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized.Wrapf(nil, "unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.ErrUnauthorized
	}
	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := models.JWTClaims{
		UserID:   user.ID,
		Role:     user.Role,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.Expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

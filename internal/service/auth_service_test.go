package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	"github.com/noah-isme/ldbb-analytics-api/internal/source"
	"github.com/noah-isme/ldbb-analytics-api/pkg/config"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

func newTestAuth() *AuthService {
	return NewAuthService(source.NewUserDirectory(), config.JWTConfig{
		Secret:            "test-secret",
		Expiration:        time.Hour,
		RefreshExpiration: 24 * time.Hour,
	}, nil)
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := newTestAuth()

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginWrongPasswordRejected(t *testing.T) {
	svc := newTestAuth()

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "nope"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestLoginUnknownUserRejected(t *testing.T) {
	svc := newTestAuth()

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestLoginMissingFieldsRejected(t *testing.T) {
	svc := newTestAuth()

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	issuer := newTestAuth()
	resp, err := issuer.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	verifier := NewAuthService(source.NewUserDirectory(), config.JWTConfig{
		Secret:     "different-secret",
		Expiration: time.Hour,
	}, nil)
	_, err = verifier.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestRefreshExchangesToken(t *testing.T) {
	svc := newTestAuth()
	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	renewed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)

	_, err = svc.Refresh(context.Background(), "unknown-token")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

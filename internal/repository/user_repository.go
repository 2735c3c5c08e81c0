package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

// UserRepository reads and writes application users and refresh tokens.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns an active user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const q = `SELECT id, username, email, password_hash, full_name, role, active, last_login, created_at, updated_at
		FROM users WHERE username = $1 AND active = true`
	var user models.User
	if err := r.db.GetContext(ctx, &user, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID returns an active user by id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	const q = `SELECT id, username, email, password_hash, full_name, role, active, last_login, created_at, updated_at
		FROM users WHERE id = $1 AND active = true`
	var user models.User
	if err := r.db.GetContext(ctx, &user, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateRefreshToken stores an issued refresh token.
func (r *UserRepository) CreateRefreshToken(ctx context.Context, token models.RefreshToken) error {
	const q = `INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at, revoked, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, q,
		token.ID, token.UserID, token.Token, token.ExpiresAt, token.CreatedAt, token.Revoked, token.IPAddress, token.UserAgent)
	return err
}

// FindRefreshToken returns a stored, unrevoked refresh token.
func (r *UserRepository) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	const q = `SELECT id, user_id, token, expires_at, created_at, revoked, ip_address, user_agent
		FROM refresh_tokens WHERE token = $1 AND revoked = false`
	var t models.RefreshToken
	if err := r.db.GetContext(ctx, &t, q, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

package source

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

// UserDirectory is the in-memory credential store used when no database is
// configured. The user list is fixed at construction; only the refresh
// token map mutates and is guarded by the mutex.
type UserDirectory struct {
	users []models.User

	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

// NewUserDirectory seeds the directory with a default admin account.
// Password hashes are precomputed so construction stays cheap.
func NewUserDirectory() *UserDirectory {
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	now := time.Now()
	return &UserDirectory{
		users: []models.User{
			{
				ID:           1,
				Username:     "admin",
				Email:        "admin@example.com",
				PasswordHash: string(hash),
				FullName:     "Site Administrator",
				Role:         models.RoleAdmin,
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
		},
		tokens: make(map[string]models.RefreshToken),
	}
}

// FindByUsername returns the user with the given username.
func (d *UserDirectory) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for i := range d.users {
		if d.users[i].Username == username {
			u := d.users[i]
			return &u, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

// FindByID returns the user with the given id.
func (d *UserDirectory) FindByID(_ context.Context, id int64) (*models.User, error) {
	for i := range d.users {
		if d.users[i].ID == id {
			u := d.users[i]
			return &u, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

// CreateRefreshToken stores an issued refresh token.
func (d *UserDirectory) CreateRefreshToken(_ context.Context, token models.RefreshToken) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tokens[token.Token] = token
	return nil
}

// FindRefreshToken returns a stored, unrevoked refresh token.
func (d *UserDirectory) FindRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tokens[token]
	if !ok || t.Revoked {
		return nil, appErrors.ErrNotFound
	}
	return &t, nil
}

package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sharehub/internal/models"
)

// Users is the in-memory user repository.
type Users struct {
	db *DB
}

// FindByEmail returns the user with email, or nil.
func (r *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.emails[email]
	if !ok {
		return nil, nil
	}
	return r.copyLocked(r.db.users[id]), nil
}

// FindByID returns the user with its liked set, or nil.
func (r *Users) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return r.copyLocked(u), nil
}

// Create stores a new user. Emails are unique.
func (r *Users) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, taken := r.db.emails[u.Email]; taken {
		return nil, models.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	stored := &models.User{
		ID:           uuid.New(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
		Username:     u.Username,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.db.users[stored.ID] = stored
	r.db.emails[stored.Email] = stored.ID
	return r.copyLocked(stored), nil
}

// UpdateProfile sets username and avatar.
func (r *Users) UpdateProfile(_ context.Context, id uuid.UUID, username, avatar string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	u.Username = username
	u.Avatar = avatar
	u.UpdatedAt = time.Now().UTC()
	return r.copyLocked(u), nil
}

func (r *Users) copyLocked(u *models.User) *models.User {
	c := *u
	c.Likes = r.db.likedLocked(u.ID)
	return &c
}

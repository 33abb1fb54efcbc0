// Package store provides database access methods for all sharehub
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"sharehub/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, password_hash, avatar, username, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := scanner.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Avatar, &u.Username,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByEmail retrieves a user by their email address. Returns nil if not found.
// The liked set is not loaded.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user and their liked post IDs. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	u.Likes, err = s.LikedPostIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// LikedPostIDs returns the IDs of the posts a user has liked, oldest like first.
func (s *UserStore) LikedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT post_id FROM post_likes WHERE user_id = $1 ORDER BY created_at, post_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list liked posts: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan liked post: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create inserts a new user. PasswordHash must already be hashed. Returns
// models.ErrDuplicateEmail when the email is taken.
func (s *UserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, avatar, username)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		u.Email, u.PasswordHash, u.Avatar, u.Username,
	)
	created, err := scanUser(row)
	if isUniqueViolation(err, "users_email_key") {
		return nil, models.ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	created.Likes = []uuid.UUID{}
	return created, nil
}

// UpdateProfile sets a user's username and avatar URL and returns the
// updated user with their liked set. Returns models.ErrUserNotFound when
// the user does not exist.
func (s *UserStore) UpdateProfile(ctx context.Context, id uuid.UUID, username, avatar string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users SET username = $1, avatar = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+userColumns,
		username, avatar, id,
	)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	u.Likes, err = s.LikedPostIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

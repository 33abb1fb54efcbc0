// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service holds the application rules: input validation, ownership
// checks, and coordination between the repositories and object storage.
// Services return *models.Error values for expected failures so handlers can
// map them to status codes without knowing the rules.
package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"sharehub/internal/models"
)

// UserRepository persists user accounts and their liked sets.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, u *models.User) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, username, avatar string) (*models.User, error)
}

// PostRepository persists posts and the like relation. Like and Dislike
// must update the liked set and the counter atomically.
type PostRepository interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindView(ctx context.Context, id uuid.UUID) (*models.PostView, error)
	List(ctx context.Context) ([]models.PostView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PostView, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.PostView, error)
	SearchKeywords(ctx context.Context, q string) ([]models.PostView, error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, postID, userID uuid.UUID) (int, error)
	Dislike(ctx context.Context, postID, userID uuid.UUID) (int, error)
}

// CategoryRepository reads categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindFirstByName(ctx context.Context, q string) (*models.Category, error)
}

// ObjectStore stores uploaded files and resolves their public URLs.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
	// ExtractKey maps a URL produced by FileURL back to its key. ok is
	// false for URLs the store does not own.
	ExtractKey(rawURL string) (key string, ok bool)
}

// CategoryCache caches the category list. Implementations treat their own
// failures as misses.
type CategoryCache interface {
	Get(ctx context.Context) ([]models.Category, bool)
	Set(ctx context.Context, categories []models.Category)
	Invalidate(ctx context.Context)
}

// Upload is an uploaded file held in memory.
type Upload struct {
	Filename string
	Data     []byte
}

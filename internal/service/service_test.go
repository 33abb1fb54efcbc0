// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"

	"sharehub/internal/memstore"
	"sharehub/internal/models"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

// testEnv wires every service to one in-memory database and object store.
type testEnv struct {
	db         *memstore.DB
	objects    *memstore.Objects
	auth       *AuthService
	posts      *PostService
	profiles   *ProfileService
	categories *CategoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := memstore.New()
	objects := memstore.NewObjects("https://cdn.test")

	// Use cost 4 for fast tests.
	return &testEnv{
		db:         db,
		objects:    objects,
		auth:       NewAuthService(db.Users(), objects, testJWTSecret, time.Hour, 4),
		posts:      NewPostService(db.Posts(), db.Categories(), db.Users(), objects),
		profiles:   NewProfileService(db.Users(), objects),
		categories: NewCategoryService(db.Categories(), nil),
	}
}

// register creates a user through AuthService.
func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), RegisterInput{
		Email:    username + "@example.com",
		Password: "secret123",
		Username: username,
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	return u
}

// createPost creates a post with two valid images.
func (e *testEnv) createPost(t *testing.T, owner uuid.UUID, category models.Category, name string, keywords ...string) *models.Post {
	t.Helper()
	if len(keywords) == 0 {
		keywords = []string{"misc"}
	}
	p, err := e.posts.CreatePost(context.Background(), owner, CreatePostInput{
		Name:        name,
		Description: name + " description",
		Keywords:    keywords,
		Category:    category.ID.String(),
		Images:      twoImages(t),
	})
	if err != nil {
		t.Fatalf("CreatePost(%s): %v", name, err)
	}
	return p
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func twoImages(t *testing.T) []Upload {
	return []Upload{
		{Filename: "front.png", Data: pngBytes(t)},
		{Filename: "back.png", Data: pngBytes(t)},
	}
}

// assertKind fails unless err is a *models.Error of kind (and message, when
// non-empty).
func assertKind(t *testing.T, err error, kind models.ErrorKind, message string) {
	t.Helper()
	var appErr *models.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *models.Error of kind %v, got %v", kind, err)
	}
	if appErr.Kind != kind {
		t.Fatalf("kind = %v, want %v (err: %v)", appErr.Kind, kind, err)
	}
	if message != "" && appErr.Message != message {
		t.Fatalf("message = %q, want %q", appErr.Message, message)
	}
}

func strPtr(s string) *string { return &s }

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"sharehub/internal/models"
)

func TestUserStoreCreate(t *testing.T) {
	db := testDB(t)
	u := createTestUser(t, db, "creator")

	if u.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if u.Username != "creator" {
		t.Errorf("username: got %q, want %q", u.Username, "creator")
	}
	if u.PasswordHash != "not-a-real-hash" {
		t.Errorf("password hash not stored as given: %q", u.PasswordHash)
	}
	if u.Likes == nil || len(u.Likes) != 0 {
		t.Errorf("expected empty likes, got %v", u.Likes)
	}
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	u := createTestUser(t, db, "first")

	_, err := s.Create(ctx, &models.User{Email: u.Email, PasswordHash: "x", Username: "second"})
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserStoreFindByEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	// Not found case.
	user, err := s.FindByEmail(ctx, "missing-"+uuid.NewString()+"@store-test.local")
	if err != nil {
		t.Fatalf("FindByEmail (not found): %v", err)
	}
	if user != nil {
		t.Error("expected nil for non-existent user")
	}

	created := createTestUser(t, db, "find-me")
	user, err = s.FindByEmail(ctx, created.Email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", user.ID, created.ID)
	}
}

func TestUserStoreFindByIDLoadsLikes(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	user, err := s.FindByID(ctx, uuid.New())
	if err != nil {
		t.Fatalf("FindByID (not found): %v", err)
	}
	if user != nil {
		t.Error("expected nil for random UUID")
	}

	cat := createTestCategory(t, db, "store-likes-"+uuid.NewString())
	owner := createTestUser(t, db, "owner")
	fan := createTestUser(t, db, "fan")
	post := createTestPost(t, db, owner, cat, "Liked post")

	if _, err := NewPostStore(db).Like(ctx, post.ID, fan.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}

	user, err = s.FindByID(ctx, fan.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if !user.HasLiked(post.ID) || len(user.Likes) != 1 {
		t.Errorf("likes = %v, want [%s]", user.Likes, post.ID)
	}
}

func TestUserStoreUpdateProfile(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	u := createTestUser(t, db, "before")

	updated, err := s.UpdateProfile(ctx, u.ID, "after", "https://cdn.test/avatar.png")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Username != "after" || updated.Avatar != "https://cdn.test/avatar.png" {
		t.Errorf("profile not updated: %+v", updated)
	}
	if !updated.UpdatedAt.After(u.UpdatedAt) && !updated.UpdatedAt.Equal(u.UpdatedAt) {
		t.Error("updated_at went backwards")
	}

	_, err = s.UpdateProfile(ctx, uuid.New(), "x", "")
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

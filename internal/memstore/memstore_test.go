package memstore

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"sharehub/internal/models"
)

func TestPostsLikeCascadeOnDelete(t *testing.T) {
	db := New()
	ctx := context.Background()
	cat := db.AddCategory("Books")

	u, err := db.Users().Create(ctx, &models.User{Email: "a@example.com", Username: "a"})
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	p, err := db.Posts().Create(ctx, &models.Post{Name: "p", CategoryID: cat.ID, CreatedBy: u.ID})
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}

	if n, err := db.Posts().Like(ctx, p.ID, u.ID); err != nil || n != 1 {
		t.Fatalf("Like = %d, %v", n, err)
	}
	if _, err := db.Posts().Like(ctx, p.ID, u.ID); !errors.Is(err, models.ErrAlreadyLiked) {
		t.Fatalf("second Like: %v", err)
	}
	if err := db.Posts().Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, _ := db.Users().FindByID(ctx, u.ID)
	if len(got.Likes) != 0 {
		t.Errorf("likes should be removed with the post, got %v", got.Likes)
	}
}

func TestCategoriesFindFirstByNameOldestWins(t *testing.T) {
	db := New()
	first := db.AddCategory("Home & Garden")
	db.AddCategory("Garden tools")

	got, err := db.Categories().FindFirstByName(context.Background(), "GARDEN")
	if err != nil {
		t.Fatalf("FindFirstByName: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Errorf("got %+v, want %q", got, first.Name)
	}
}

func TestObjects(t *testing.T) {
	o := NewObjects("https://cdn.test")
	ctx := context.Background()

	if err := o.Upload(ctx, "posts/a.png", "image/png", bytes.NewReader([]byte("abc")), 3); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if obj, ok := o.Get("posts/a.png"); !ok || obj.ContentType != "image/png" {
		t.Errorf("Get = %+v, %v", obj, ok)
	}
	if url := o.FileURL("posts/a.png"); url != "https://cdn.test/posts/a.png" {
		t.Errorf("FileURL = %q", url)
	}

	o.FailUpload = func(string) error { return errors.New("boom") }
	if err := o.Upload(ctx, "posts/b.png", "image/png", bytes.NewReader(nil), 0); err == nil {
		t.Error("expected injected failure")
	}

	o.Delete(ctx, "posts/a.png")
	if len(o.Keys()) != 0 || len(o.Deleted()) != 1 {
		t.Errorf("keys=%v deleted=%v", o.Keys(), o.Deleted())
	}

	if key, ok := o.ExtractKey(o.FileURL("avatars/x.png")); !ok || key != "avatars/x.png" {
		t.Errorf("ExtractKey round trip = %q, %v", key, ok)
	}
	if _, ok := o.ExtractKey("https://other.test/avatars/x.png"); ok {
		t.Error("ExtractKey should reject foreign URLs")
	}
}

func TestUsersDuplicateEmail(t *testing.T) {
	users := New().Users()
	ctx := context.Background()
	if _, err := users.Create(ctx, &models.User{Email: "dup@example.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := users.Create(ctx, &models.User{Email: "dup@example.com"}); !errors.Is(err, models.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
	if _, err := users.UpdateProfile(ctx, uuid.New(), "x", ""); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

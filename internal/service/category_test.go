package service

import (
	"context"
	"testing"

	"sharehub/internal/models"
)

// fakeCategoryCache records calls and serves whatever was last Set.
type fakeCategoryCache struct {
	cached      []models.Category
	hit         bool
	gets, sets  int
	invalidated int
}

func (c *fakeCategoryCache) Get(context.Context) ([]models.Category, bool) {
	c.gets++
	return c.cached, c.hit
}

func (c *fakeCategoryCache) Set(_ context.Context, categories []models.Category) {
	c.sets++
	c.cached, c.hit = categories, true
}

func (c *fakeCategoryCache) Invalidate(context.Context) {
	c.invalidated++
	c.cached, c.hit = nil, false
}

func TestCategoryService_ListCategories(t *testing.T) {
	env := newTestEnv(t)
	env.db.AddCategory("Toys")
	env.db.AddCategory("Books")

	got, err := env.categories.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Books" || got[1].Name != "Toys" {
		t.Errorf("categories should be ordered by name, got %+v", got)
	}
}

func TestCategoryService_ReadThroughCache(t *testing.T) {
	env := newTestEnv(t)
	env.db.AddCategory("Books")
	cache := &fakeCategoryCache{}
	svc := NewCategoryService(env.db.Categories(), cache)
	ctx := context.Background()

	if _, err := svc.ListCategories(ctx); err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("miss should populate the cache, sets = %d", cache.sets)
	}

	// A category added behind the cache is not visible until invalidation.
	env.db.AddCategory("Toys")
	got, _ := svc.ListCategories(ctx)
	if len(got) != 1 || cache.sets != 1 {
		t.Errorf("expected cached list of 1, got %d (sets = %d)", len(got), cache.sets)
	}

	svc.Invalidate(ctx)
	got, _ = svc.ListCategories(ctx)
	if len(got) != 2 || cache.invalidated != 1 {
		t.Errorf("after invalidation expected 2 categories, got %d", len(got))
	}
}

package service

import (
	"context"

	"sharehub/internal/models"
)

// CategoryService lists categories through an optional cache.
type CategoryService struct {
	categories CategoryRepository
	cache      CategoryCache // nil disables caching
}

// NewCategoryService creates a CategoryService. cache may be nil.
func NewCategoryService(categories CategoryRepository, cache CategoryCache) *CategoryService {
	return &CategoryService{categories: categories, cache: cache}
}

// ListCategories returns every category ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if s.cache != nil {
		if categories, ok := s.cache.Get(ctx); ok {
			return categories, nil
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, categories)
	}
	return categories, nil
}

// Invalidate drops the cached list so the next read hits the repository.
func (s *CategoryService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

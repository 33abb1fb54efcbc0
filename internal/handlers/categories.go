package handlers

import (
	"net/http"

	"sharehub/internal/service"
)

// Categories serves the category list.
type Categories struct {
	categories *service.CategoryService
}

// NewCategories creates a new Categories handler.
func NewCategories(categories *service.CategoryService) *Categories {
	return &Categories{categories: categories}
}

// List returns {"categories": [...]}.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

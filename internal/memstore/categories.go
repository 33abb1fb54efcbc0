package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"sharehub/internal/models"
)

// Categories is the in-memory category repository.
type Categories struct {
	db *DB
}

// List returns all categories ordered by name.
func (r *Categories) List(_ context.Context) ([]models.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]models.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// FindByID returns the category, or nil.
func (r *Categories) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// FindFirstByName returns the oldest category whose name contains q,
// ignoring case, or nil.
func (r *Categories) FindFirstByName(_ context.Context, q string) (*models.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var found *models.Category
	for id, c := range r.db.categories {
		if !containsFold(c.Name, q) {
			continue
		}
		if found == nil || r.db.catSeq[id] < r.db.catSeq[found.ID] {
			found = c
		}
	}
	if found == nil {
		return nil, nil
	}
	cp := *found
	return &cp, nil
}

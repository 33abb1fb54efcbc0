package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sharehub/internal/models"
)

// Posts is the in-memory post repository.
type Posts struct {
	db *DB
}

// Create stores a new post with zero likes.
func (r *Posts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[p.CreatedBy]; !ok {
		return nil, models.ErrUserNotFound
	}
	if _, ok := r.db.categories[p.CategoryID]; !ok {
		return nil, models.ErrCategoryNotFound
	}

	now := time.Now().UTC()
	stored := copyPost(p)
	stored.ID = uuid.New()
	stored.Likes = 0
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.db.posts[stored.ID] = stored
	r.db.postSeq[stored.ID] = r.db.next()
	return copyPost(stored), nil
}

// FindByID returns the raw post, or nil.
func (r *Posts) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.posts[id]
	if !ok {
		return nil, nil
	}
	return copyPost(p), nil
}

// FindView returns the resolved post, or nil.
func (r *Posts) FindView(_ context.Context, id uuid.UUID) (*models.PostView, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.posts[id]
	if !ok {
		return nil, nil
	}
	v := r.db.viewLocked(p)
	return &v, nil
}

// List returns every post, newest first.
func (r *Posts) List(_ context.Context) ([]models.PostView, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.viewsLocked(func(*models.Post) bool { return true }), nil
}

// ListByOwner returns the posts created by ownerID.
func (r *Posts) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]models.PostView, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.viewsLocked(func(p *models.Post) bool { return p.CreatedBy == ownerID }), nil
}

// ListByCategory returns the posts in categoryID.
func (r *Posts) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]models.PostView, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.viewsLocked(func(p *models.Post) bool { return p.CategoryID == categoryID }), nil
}

// SearchKeywords returns posts with a keyword containing q, ignoring case.
func (r *Posts) SearchKeywords(_ context.Context, q string) ([]models.PostView, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.viewsLocked(func(p *models.Post) bool {
		for _, k := range p.Keywords {
			if containsFold(k, q) {
				return true
			}
		}
		return false
	}), nil
}

// Update writes the editable fields. The owner is never changed.
func (r *Posts) Update(_ context.Context, p *models.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.posts[p.ID]
	if !ok {
		return models.ErrPostNotFound
	}
	if _, ok := r.db.categories[p.CategoryID]; !ok {
		return models.ErrCategoryNotFound
	}
	stored.Name = p.Name
	stored.Description = p.Description
	stored.Keywords = append([]string{}, p.Keywords...)
	stored.CategoryID = p.CategoryID
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes a post and every like that references it.
func (r *Posts) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.posts[id]; !ok {
		return models.ErrPostNotFound
	}
	delete(r.db.posts, id)
	delete(r.db.postSeq, id)
	for _, liked := range r.db.likes {
		delete(liked, id)
	}
	return nil
}

// Like adds the like and increments the counter under one lock.
func (r *Posts) Like(_ context.Context, postID, userID uuid.UUID) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.posts[postID]
	if !ok {
		return 0, models.ErrPostNotFound
	}
	if _, ok := r.db.users[userID]; !ok {
		return 0, models.ErrUserNotFound
	}
	if r.db.likes[userID][postID] {
		return 0, models.ErrAlreadyLiked
	}
	if r.db.likes[userID] == nil {
		r.db.likes[userID] = make(map[uuid.UUID]bool)
	}
	r.db.likes[userID][postID] = true
	p.Likes++
	return p.Likes, nil
}

// Dislike removes the like and decrements the counter, never below zero.
func (r *Posts) Dislike(_ context.Context, postID, userID uuid.UUID) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.posts[postID]
	if !ok {
		return 0, models.ErrPostNotFound
	}
	if !r.db.likes[userID][postID] {
		return 0, models.ErrNotLiked
	}
	delete(r.db.likes[userID], postID)
	if p.Likes > 0 {
		p.Likes--
	}
	return p.Likes, nil
}

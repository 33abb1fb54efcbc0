// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"sharehub/internal/models"
)

// PostStore handles posts and the post_likes engagement table.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, name, description, keywords, category_id, images,
	likes, created_by, created_at, updated_at`

// postViewSelect resolves category and owner inline.
const postViewSelect = `
	SELECT p.id, p.name, p.description, p.keywords,
	       c.id, c.name,
	       p.images, p.likes,
	       u.id, u.username, u.avatar,
	       p.created_at, p.updated_at
	FROM posts p
	JOIN categories c ON c.id = p.category_id
	JOIN users u ON u.id = p.created_by`

func scanPost(scanner interface{ Scan(...any) error }, a arrays) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Description, a.text(&p.Keywords), &p.CategoryID,
		a.text(&p.Images), &p.Likes, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Keywords = nonNil(p.Keywords)
	p.Images = nonNil(p.Images)
	return &p, nil
}

func scanPostView(scanner interface{ Scan(...any) error }, a arrays) (*models.PostView, error) {
	var v models.PostView
	err := scanner.Scan(
		&v.ID, &v.Name, &v.Description, a.text(&v.Keywords),
		&v.Category.ID, &v.Category.Name,
		a.text(&v.Images), &v.Likes,
		&v.CreatedBy.ID, &v.CreatedBy.Username, &v.CreatedBy.Avatar,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Keywords = nonNil(v.Keywords)
	v.Images = nonNil(v.Images)
	return &v, nil
}

// listViews runs a post view query and collects the rows.
func (s *PostStore) listViews(ctx context.Context, op, query string, args ...any) ([]models.PostView, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	a := newArrays()
	views := []models.PostView{}
	for rows.Next() {
		v, err := scanPostView(rows, a)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		views = append(views, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return views, nil
}

// Create inserts a post and returns it with generated fields. A missing
// category or owner is reported as the matching model error.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (name, description, keywords, category_id, images, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+postColumns,
		p.Name, p.Description, nonNil(p.Keywords), p.CategoryID, nonNil(p.Images), p.CreatedBy,
	)
	created, err := scanPost(row, newArrays())
	if constraint, ok := foreignKeyConstraint(err); ok {
		if constraint == "posts_created_by_fkey" {
			return nil, models.ErrUserNotFound
		}
		return nil, models.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

// FindByID retrieves a raw post row. Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row, newArrays())
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindView retrieves a post with category and owner resolved. Returns nil
// if not found.
func (s *PostStore) FindView(ctx context.Context, id uuid.UUID) (*models.PostView, error) {
	row := s.db.QueryRowContext(ctx, postViewSelect+` WHERE p.id = $1`, id)
	v, err := scanPostView(row, newArrays())
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post view: %w", err)
	}
	return v, nil
}

// List returns every post, newest first.
func (s *PostStore) List(ctx context.Context) ([]models.PostView, error) {
	return s.listViews(ctx, "list posts", postViewSelect+`
		ORDER BY p.created_at DESC, p.id`)
}

// ListByOwner returns the posts created by ownerID, newest first.
func (s *PostStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PostView, error) {
	return s.listViews(ctx, "list posts by owner", postViewSelect+`
		WHERE p.created_by = $1
		ORDER BY p.created_at DESC, p.id`, ownerID)
}

// ListByCategory returns the posts in a category, newest first.
func (s *PostStore) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.PostView, error) {
	return s.listViews(ctx, "list posts by category", postViewSelect+`
		WHERE p.category_id = $1
		ORDER BY p.created_at DESC, p.id`, categoryID)
}

// SearchKeywords returns posts with at least one keyword containing q,
// ignoring case. q is matched literally.
func (s *PostStore) SearchKeywords(ctx context.Context, q string) ([]models.PostView, error) {
	return s.listViews(ctx, "search posts by keyword", postViewSelect+`
		WHERE EXISTS (
			SELECT 1 FROM unnest(p.keywords) AS k
			WHERE strpos(lower(k), lower($1)) > 0
		)
		ORDER BY p.created_at DESC, p.id`, q)
}

// Update writes the owner-editable fields of p. The owner column is never
// written.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET
			name = $1, description = $2, keywords = $3, category_id = $4,
			updated_at = NOW()
		WHERE id = $5
	`, p.Name, p.Description, nonNil(p.Keywords), p.CategoryID, p.ID)
	if _, ok := foreignKeyConstraint(err); ok {
		return models.ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrPostNotFound
	}
	return nil
}

// Delete removes a post. Its likes go with it (ON DELETE CASCADE).
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrPostNotFound
	}
	return nil
}

// Like adds postID to userID's liked set and increments the post's counter
// in one transaction. Returns the new counter.
func (s *PostStore) Like(ctx context.Context, postID, userID uuid.UUID) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("like begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO post_likes (user_id, post_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, postID)
	if constraint, ok := foreignKeyConstraint(err); ok {
		if constraint == "post_likes_user_id_fkey" {
			return 0, models.ErrUserNotFound
		}
		return 0, models.ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("insert like: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, models.ErrAlreadyLiked
	}

	var likes int
	err = tx.QueryRowContext(ctx, `
		UPDATE posts SET likes = likes + 1 WHERE id = $1 RETURNING likes
	`, postID).Scan(&likes)
	if err == sql.ErrNoRows {
		return 0, models.ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("like commit: %w", err)
	}
	return likes, nil
}

// Dislike removes postID from userID's liked set and decrements the post's
// counter, never below zero, in one transaction. Returns the new counter.
func (s *PostStore) Dislike(ctx context.Context, postID, userID uuid.UUID) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("dislike begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM post_likes WHERE user_id = $1 AND post_id = $2
	`, userID, postID)
	if err != nil {
		return 0, fmt.Errorf("delete like: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, models.ErrNotLiked
	}

	var likes int
	err = tx.QueryRowContext(ctx, `
		UPDATE posts SET likes = GREATEST(likes - 1, 0) WHERE id = $1 RETURNING likes
	`, postID).Scan(&likes)
	if err == sql.ErrNoRows {
		return 0, models.ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("decrement likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("dislike commit: %w", err)
	}
	return likes, nil
}

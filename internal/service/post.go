// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sharehub/internal/imaging"
	"sharehub/internal/models"
)

// postKeyPrefix namespaces post images in object storage.
const postKeyPrefix = "posts/"

var (
	errNoImages         = &models.Error{Kind: models.KindValidation, Message: "please upload an image"}
	errImageCount       = &models.Error{Kind: models.KindValidation, Message: "you must upload 2 images for this post"}
	errEmptyQuery       = &models.Error{Kind: models.KindValidation, Message: "please provide a search query"}
	errInvalidCategory  = &models.Error{Kind: models.KindValidation, Message: "category must be a valid id"}
	errNotPostOwnerEdit = &models.Error{Kind: models.KindAuth, Message: "you are not authorized to update this post"}
	errNotPostOwnerDel  = &models.Error{Kind: models.KindAuth, Message: "you are not authorized to delete this post"}
)

// PostService implements post creation, editing, engagement, and search.
type PostService struct {
	posts      PostRepository
	categories CategoryRepository
	users      UserRepository
	objects    ObjectStore // nil when storage is not configured
}

// NewPostService creates a PostService.
func NewPostService(posts PostRepository, categories CategoryRepository, users UserRepository, objects ObjectStore) *PostService {
	return &PostService{
		posts:      posts,
		categories: categories,
		users:      users,
		objects:    objects,
	}
}

// CreatePostInput is the payload for a new post. Category is the raw id.
type CreatePostInput struct {
	Name        string
	Description string
	Keywords    []string
	Category    string
	Images      []Upload
}

// UpdatePostInput carries the fields supplied in an edit. Nil fields are
// left unchanged.
type UpdatePostInput struct {
	Name        *string
	Description *string
	Keywords    *[]string
	Category    *string
}

// CreatePost validates the input, uploads both images concurrently, and
// stores the post owned by ownerID. Objects uploaded for a post that is
// not stored are deleted again.
func (s *PostService) CreatePost(ctx context.Context, ownerID uuid.UUID, in CreatePostInput) (*models.Post, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	keywords := cleanKeywords(in.Keywords)

	switch {
	case name == "":
		return nil, models.Validationf("name is required")
	case description == "":
		return nil, models.Validationf("description is required")
	case len(keywords) == 0:
		return nil, models.Validationf("keywords must contain at least 1 keyword")
	case strings.TrimSpace(in.Category) == "":
		return nil, models.Validationf("category is required")
	}

	categoryID, err := s.requireCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	if len(in.Images) == 0 {
		return nil, errNoImages
	}
	if len(in.Images) != models.RequiredPostImages {
		return nil, errImageCount
	}
	if s.objects == nil {
		return nil, errNoStorage
	}

	infos := make([]imaging.Info, len(in.Images))
	for i, img := range in.Images {
		if infos[i], err = inspectUpload(img); err != nil {
			return nil, err
		}
	}

	keys, urls, err := s.uploadImages(ctx, in.Images, infos)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Create(ctx, &models.Post{
		Name:        name,
		Description: description,
		Keywords:    keywords,
		CategoryID:  categoryID,
		Images:      urls,
		CreatedBy:   ownerID,
	})
	if err != nil {
		discardObjects(ctx, s.objects, keys...)
		return nil, err
	}

	slog.Info("post created", "post_id", post.ID, "owner_id", ownerID)
	return post, nil
}

// uploadImages stores every image in parallel. On any failure the other
// uploads are canceled and whatever did land is deleted.
func (s *PostService) uploadImages(ctx context.Context, images []Upload, infos []imaging.Info) (keys, urls []string, err error) {
	keys = make([]string, len(images))
	urls = make([]string, len(images))

	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			key := postKeyPrefix + uuid.NewString() + "." + infos[i].Ext
			url, err := putObject(gctx, s.objects, key, infos[i], img.Data)
			if err != nil {
				return err
			}
			keys[i], urls[i] = key, url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		discardObjects(ctx, s.objects, keys...)
		return nil, nil, err
	}
	return keys, urls, nil
}

// ListPosts returns every post, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]models.PostView, error) {
	return s.posts.List(ctx)
}

// GetPost returns one post. Malformed and unknown ids are both not found.
func (s *PostService) GetPost(ctx context.Context, rawID string) (*models.PostView, error) {
	id, err := parsePostID(rawID)
	if err != nil {
		return nil, err
	}
	view, err := s.posts.FindView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, models.ErrPostNotFound
	}
	return view, nil
}

// UpdatePost applies the supplied fields to a post owned by callerID.
// Ownership is checked before the payload so non-owners always get an
// auth error.
func (s *PostService) UpdatePost(ctx context.Context, rawID string, callerID uuid.UUID, in UpdatePostInput) (*models.PostView, error) {
	post, err := s.findOwned(ctx, rawID, callerID, errNotPostOwnerEdit)
	if err != nil {
		return nil, err
	}

	var patch models.PostPatch
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.Validationf("name is not allowed to be empty")
		}
		patch.Name = &name
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, models.Validationf("description is not allowed to be empty")
		}
		patch.Description = &description
	}
	if in.Keywords != nil {
		keywords := cleanKeywords(*in.Keywords)
		if len(keywords) == 0 {
			return nil, models.Validationf("keywords must contain at least 1 keyword")
		}
		patch.Keywords = keywords
	}
	if in.Category != nil {
		categoryID, err := s.requireCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		patch.CategoryID = &categoryID
	}

	if !patch.IsEmpty() {
		updated := patch.Apply(*post)
		if err := s.posts.Update(ctx, &updated); err != nil {
			return nil, err
		}
		slog.Info("post updated", "post_id", post.ID)
	}

	view, err := s.posts.FindView(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, models.ErrPostNotFound
	}
	return view, nil
}

// AuthorizeEdit reports whether callerID may edit the post, with the same
// errors UpdatePost returns before it looks at the payload.
func (s *PostService) AuthorizeEdit(ctx context.Context, rawID string, callerID uuid.UUID) error {
	_, err := s.findOwned(ctx, rawID, callerID, errNotPostOwnerEdit)
	return err
}

// DeletePost removes a post owned by callerID. Its images stay in storage.
func (s *PostService) DeletePost(ctx context.Context, rawID string, callerID uuid.UUID) error {
	post, err := s.findOwned(ctx, rawID, callerID, errNotPostOwnerDel)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return err
	}
	slog.Info("post deleted", "post_id", post.ID)
	return nil
}

// LikePost records that callerID likes the post and returns the new count.
func (s *PostService) LikePost(ctx context.Context, rawID string, callerID uuid.UUID) (int, error) {
	postID, err := s.requireEngagement(ctx, rawID, callerID)
	if err != nil {
		return 0, err
	}
	likes, err := s.posts.Like(ctx, postID, callerID)
	if err != nil {
		return 0, err
	}
	slog.Debug("post liked", "post_id", postID, "user_id", callerID, "likes", likes)
	return likes, nil
}

// DislikePost withdraws callerID's like and returns the new count.
func (s *PostService) DislikePost(ctx context.Context, rawID string, callerID uuid.UUID) (int, error) {
	postID, err := s.requireEngagement(ctx, rawID, callerID)
	if err != nil {
		return 0, err
	}
	likes, err := s.posts.Dislike(ctx, postID, callerID)
	if err != nil {
		return 0, err
	}
	slog.Debug("post disliked", "post_id", postID, "user_id", callerID, "likes", likes)
	return likes, nil
}

// ListOwnPosts returns the posts created by callerID.
func (s *PostService) ListOwnPosts(ctx context.Context, callerID uuid.UUID) ([]models.PostView, error) {
	return s.posts.ListByOwner(ctx, callerID)
}

// SearchPosts returns the posts of the first category whose name contains
// q. Only when no category matches are keywords searched.
func (s *PostService) SearchPosts(ctx context.Context, q string) ([]models.PostView, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, errEmptyQuery
	}

	category, err := s.categories.FindFirstByName(ctx, q)
	if err != nil {
		return nil, err
	}
	if category != nil {
		return s.posts.ListByCategory(ctx, category.ID)
	}
	return s.posts.SearchKeywords(ctx, q)
}

// findOwned loads a post and checks that callerID owns it.
func (s *PostService) findOwned(ctx context.Context, rawID string, callerID uuid.UUID, denied error) (*models.Post, error) {
	id, err := parsePostID(rawID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.ErrPostNotFound
	}
	if post.CreatedBy != callerID {
		return nil, denied
	}
	return post, nil
}

// requireEngagement checks that both the post and the caller exist.
func (s *PostService) requireEngagement(ctx context.Context, rawID string, callerID uuid.UUID) (uuid.UUID, error) {
	id, err := parsePostID(rawID)
	if err != nil {
		return uuid.Nil, err
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if post == nil {
		return uuid.Nil, models.ErrPostNotFound
	}
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return uuid.Nil, err
	}
	if user == nil {
		return uuid.Nil, models.ErrUserNotFound
	}
	return id, nil
}

// requireCategory parses a category id and checks that it exists.
func (s *PostService) requireCategory(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errInvalidCategory
	}
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if category == nil {
		return uuid.Nil, models.ErrCategoryNotFound
	}
	return id, nil
}

func parsePostID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, models.ErrPostNotFound
	}
	return id, nil
}

// cleanKeywords trims keywords and drops blank ones. Order and duplicates
// are kept.
func cleanKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"sharehub/internal/models"
	"sharehub/internal/service"
)

// Posts groups the post, engagement, and search handlers.
type Posts struct {
	posts    *service.PostService
	maxBytes int64
}

// NewPosts creates a new Posts handler group. maxBytes caps request bodies,
// image uploads included.
func NewPosts(posts *service.PostService, maxBytes int64) *Posts {
	return &Posts{posts: posts, maxBytes: maxBytes}
}

type createPostRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Keywords    keywordList `json:"keywords"`
	Category    string      `json:"category"`
}

func (req *createPostRequest) fromForm(form url.Values) error {
	req.Name = form.Get("name")
	req.Description = form.Get("description")
	req.Category = form.Get("category")
	keywords, _, err := formKeywords(form)
	req.Keywords = keywords
	return err
}

// updatePostRequest distinguishes absent fields (nil) from empty ones.
type updatePostRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Keywords    *keywordList `json:"keywords"`
	Category    *string      `json:"category"`
}

func (req *updatePostRequest) fromForm(form url.Values) error {
	for key := range form {
		switch key {
		case "name", "description", "keywords", "keywords[]", "category":
		default:
			return models.Validationf("unknown field %q", key)
		}
	}

	req.Name = formString(form, "name")
	req.Description = formString(form, "description")
	req.Category = formString(form, "category")
	keywords, present, err := formKeywords(form)
	if present {
		list := keywordList(keywords)
		req.Keywords = &list
	}
	return err
}

func (req *updatePostRequest) input() service.UpdatePostInput {
	in := service.UpdatePostInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Keywords != nil {
		keywords := []string(*req.Keywords)
		if keywords == nil {
			keywords = []string{}
		}
		in.Keywords = &keywords
	}
	return in
}

// List returns every post, newest first.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPosts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get returns one post with its category and owner resolved.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Mine returns the caller's posts.
func (h *Posts) Mine(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	posts, err := h.posts.ListOwnPosts(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Create stores a post with the two images sent as "images" files.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}

	var req createPostRequest
	form, err := decodeBody(w, r, h.maxBytes, &req, false)
	defer releaseForm(form)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	images, err := readUploads(form, "images", "images[]")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	post, err := h.posts.CreatePost(r.Context(), uid, service.CreatePostInput{
		Name:        req.Name,
		Description: req.Description,
		Keywords:    req.Keywords,
		Category:    req.Category,
		Images:      images,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "post created successfully",
		"data":    post,
	})
}

// Update edits the supplied fields of a post the caller owns. Unknown
// fields are rejected, but only after ownership has been confirmed.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req updatePostRequest
	form, err := decodeBody(w, r, h.maxBytes, &req, true)
	defer releaseForm(form)
	if err == nil {
		err = rejectFiles(form)
	}
	if err != nil {
		var appErr *models.Error
		if errors.As(err, &appErr) {
			if authErr := h.posts.AuthorizeEdit(r.Context(), id, uid); authErr != nil {
				err = authErr
			}
		}
		writeServiceError(w, r, err)
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), id, uid, req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "post updated successfully",
		"data":    post,
	})
}

// Delete removes a post the caller owns.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := h.posts.DeletePost(r.Context(), chi.URLParam(r, "id"), uid); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted successfully"})
}

// Like adds the caller's like to a post.
func (h *Posts) Like(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	likes, err := h.posts.LikePost(r.Context(), chi.URLParam(r, "id"), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "post liked successfully",
		"likes":   likes,
	})
}

// Dislike withdraws the caller's like from a post.
func (h *Posts) Dislike(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	likes, err := h.posts.DislikePost(r.Context(), chi.URLParam(r, "id"), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "post disliked successfully",
		"likes":   likes,
	})
}

// Search looks up posts by category name first, then by keyword.
func (h *Posts) Search(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.SearchPosts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

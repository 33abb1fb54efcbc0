// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Handlers run against the in-memory stores, so no database is needed.
package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"sharehub/internal/memstore"
	"sharehub/internal/middleware"
	"sharehub/internal/models"
	"sharehub/internal/service"
)

// testEnv holds the handler groups wired to one in-memory database.
type testEnv struct {
	DB       *memstore.DB
	Objects  *memstore.Objects
	Auth     *service.AuthService
	Posts    *service.PostService
	Handler  http.Handler
	Category models.Category
}

// newTestEnv mounts every handler on a chi router with bearer auth.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithLimit(t, DefaultMaxBodyBytes)
}

func newTestEnvWithLimit(t *testing.T, maxBytes int64) *testEnv {
	t.Helper()

	db := memstore.New()
	objects := memstore.NewObjects("https://cdn.test")
	authSvc := service.NewAuthService(db.Users(), objects, "handler-test-secret", time.Hour, 4)
	postSvc := service.NewPostService(db.Posts(), db.Categories(), db.Users(), objects)

	auth := NewAuth(authSvc, maxBytes)
	posts := NewPosts(postSvc, maxBytes)
	profile := NewProfile(service.NewProfileService(db.Users(), objects), maxBytes)
	categories := NewCategories(service.NewCategoryService(db.Categories(), nil))

	r := chi.NewRouter()
	requireAuth := middleware.RequireAuth(authSvc)
	r.Post("/api/auth/register", auth.Register)
	r.Post("/api/auth/login", auth.Login)
	r.Get("/api/category", categories.List)
	r.Get("/api/search", posts.Search)
	r.Get("/api/post", posts.List)
	r.With(requireAuth).Get("/api/post/me", posts.Mine)
	r.Get("/api/post/{id}", posts.Get)
	r.With(requireAuth).Post("/api/post", posts.Create)
	r.With(requireAuth).Patch("/api/post/{id}", posts.Update)
	r.With(requireAuth).Delete("/api/post/{id}", posts.Delete)
	r.With(requireAuth).Post("/api/post/{id}/like", posts.Like)
	r.With(requireAuth).Post("/api/post/{id}/dislike", posts.Dislike)
	r.With(requireAuth).Get("/api/profile/me", profile.Get)
	r.With(requireAuth).Patch("/api/profile/me", profile.Edit)

	return &testEnv{
		DB:       db,
		Objects:  objects,
		Auth:     authSvc,
		Posts:    postSvc,
		Handler:  r,
		Category: db.AddCategory("Nature"),
	}
}

// do runs a request through the router, adding a bearer token when set.
func (e *testEnv) do(t *testing.T, method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.Handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return e.do(t, method, path, token, "application/json", bytes.NewReader(data))
}

// signup registers a user and returns the user and a login token.
func (e *testEnv) signup(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	email := username + "@example.com"

	rec := e.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret123",
		"username": username,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d: %s", username, rec.Code, rec.Body.String())
	}
	var reg struct {
		User models.User `json:"user"`
	}
	decode(t, rec, &reg)

	rec = e.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d: %s", username, rec.Code, rec.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	decode(t, rec, &login)
	return &reg.User, login.Token
}

// createPost creates a post through the service and returns it.
func (e *testEnv) createPost(t *testing.T, owner *models.User, name string, keywords ...string) *models.Post {
	t.Helper()
	if len(keywords) == 0 {
		keywords = []string{"misc"}
	}
	p, err := e.Posts.CreatePost(t.Context(), owner.ID, service.CreatePostInput{
		Name:        name,
		Description: name + " description",
		Keywords:    keywords,
		Category:    e.Category.ID.String(),
		Images: []service.Upload{
			{Filename: "a.png", Data: pngBytes(t)},
			{Filename: "b.png", Data: pngBytes(t)},
		},
	})
	if err != nil {
		t.Fatalf("CreatePost(%s): %v", name, err)
	}
	return p
}

// formFile is one file part of a multipart body.
type formFile struct {
	field, filename string
	data            []byte
}

// multipartBody builds a multipart/form-data body. Repeated values for a
// field are written as repeated parts.
func multipartBody(t *testing.T, fields map[string][]string, files ...formFile) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(name, v); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write(f.data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// assertError checks the status and {"error": ...} body of a failed
// request.
func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, status, rec.Body.String())
	}
	var body map[string]string
	decode(t, rec, &body)
	if message != "" && body["error"] != message {
		t.Errorf("error = %q, want %q", body["error"], message)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
}

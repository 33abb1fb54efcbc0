// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package memstore provides in-memory implementations of the service
// repositories and object store. They follow the same error contract as
// the PostgreSQL stores and S3 client and are used by service and handler
// tests.
package memstore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sharehub/internal/models"
)

// DB is a shared in-memory database. Its repositories see each other's
// writes, like tables in one schema.
type DB struct {
	mu         sync.RWMutex
	seq        int64
	users      map[uuid.UUID]*models.User
	emails     map[string]uuid.UUID
	categories map[uuid.UUID]*models.Category
	catSeq     map[uuid.UUID]int64
	posts      map[uuid.UUID]*models.Post
	postSeq    map[uuid.UUID]int64
	likes      map[uuid.UUID]map[uuid.UUID]bool // user id -> liked post ids
}

// New creates an empty database.
func New() *DB {
	return &DB{
		users:      make(map[uuid.UUID]*models.User),
		emails:     make(map[string]uuid.UUID),
		categories: make(map[uuid.UUID]*models.Category),
		catSeq:     make(map[uuid.UUID]int64),
		posts:      make(map[uuid.UUID]*models.Post),
		postSeq:    make(map[uuid.UUID]int64),
		likes:      make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

// Users returns the user repository.
func (db *DB) Users() *Users { return &Users{db: db} }

// Posts returns the post repository.
func (db *DB) Posts() *Posts { return &Posts{db: db} }

// Categories returns the category repository.
func (db *DB) Categories() *Categories { return &Categories{db: db} }

// AddCategory inserts a category. Categories added earlier count as older.
func (db *DB) AddCategory(name string) models.Category {
	db.mu.Lock()
	defer db.mu.Unlock()

	c := &models.Category{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC()}
	db.categories[c.ID] = c
	db.catSeq[c.ID] = db.next()
	return *c
}

// next returns a monotonically increasing sequence number. Callers hold mu.
func (db *DB) next() int64 {
	db.seq++
	return db.seq
}

// likedLocked returns the ids of the posts userID likes, sorted for
// stable output. Callers hold mu.
func (db *DB) likedLocked(userID uuid.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(db.likes[userID]))
	for id := range db.likes[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// viewLocked resolves a post's category and owner. Callers hold mu.
func (db *DB) viewLocked(p *models.Post) models.PostView {
	v := models.PostView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Keywords:    append([]string{}, p.Keywords...),
		Category:    models.CategoryRef{ID: p.CategoryID},
		Images:      append([]string{}, p.Images...),
		Likes:       p.Likes,
		CreatedBy:   models.Author{ID: p.CreatedBy},
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if c, ok := db.categories[p.CategoryID]; ok {
		v.Category.Name = c.Name
	}
	if u, ok := db.users[p.CreatedBy]; ok {
		v.CreatedBy.Username = u.Username
		v.CreatedBy.Avatar = u.Avatar
	}
	return v
}

// viewsLocked returns views of the posts matching keep, newest first.
// Callers hold mu.
func (db *DB) viewsLocked(keep func(*models.Post) bool) []models.PostView {
	matched := make([]*models.Post, 0)
	for _, p := range db.posts {
		if keep(p) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return db.postSeq[matched[i].ID] > db.postSeq[matched[j].ID]
	})

	views := make([]models.PostView, 0, len(matched))
	for _, p := range matched {
		views = append(views, db.viewLocked(p))
	}
	return views
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func copyPost(p *models.Post) *models.Post {
	c := *p
	c.Keywords = append([]string{}, p.Keywords...)
	c.Images = append([]string{}, p.Images...)
	return &c
}

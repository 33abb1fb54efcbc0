// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"sharehub/internal/database"
	"sharehub/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "sharehub")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "sharehub")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user with a unique email and removes it (and
// its posts) when the test finishes.
func createTestUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()
	s := NewUserStore(db)
	email := "store-" + uuid.NewString() + "@store-test.local"
	u, err := s.Create(context.Background(), &models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Username:     username,
	})
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE created_by = $1", u.ID)
		db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// createTestCategory inserts a category and removes it after the test.
// Register it before any posts so cleanup order deletes posts first.
func createTestCategory(t *testing.T, db *sql.DB, name string) *models.Category {
	t.Helper()
	c := &models.Category{}
	err := db.QueryRow(`INSERT INTO categories (name) VALUES ($1) RETURNING id, name, created_at`, name).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE category_id = $1", c.ID)
		db.Exec("DELETE FROM categories WHERE id = $1", c.ID)
	})
	return c
}

// createTestPost inserts a post owned by owner in category.
func createTestPost(t *testing.T, db *sql.DB, owner *models.User, category *models.Category, name string, keywords ...string) *models.Post {
	t.Helper()
	p, err := NewPostStore(db).Create(context.Background(), &models.Post{
		Name:        name,
		Description: name + " description",
		Keywords:    keywords,
		CategoryID:  category.ID,
		Images:      []string{"https://cdn.test/posts/a.png", "https://cdn.test/posts/b.png"},
		CreatedBy:   owner.ID,
	})
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return p
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// RequiredPostImages is the exact number of images a post is created with.
const RequiredPostImages = 2

// Post is a stored post row. CreatedBy never changes after insert.
type Post struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords"`
	CategoryID  uuid.UUID `json:"category"`
	Images      []string  `json:"images"`
	Likes       int       `json:"likes"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostView is a post with its category and owner resolved inline.
type PostView struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Keywords    []string    `json:"keywords"`
	Category    CategoryRef `json:"category"`
	Images      []string    `json:"images"`
	Likes       int         `json:"likes"`
	CreatedBy   Author      `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// PostPatch carries the owner-editable fields of a post. Nil fields are
// left unchanged.
type PostPatch struct {
	Name        *string
	Description *string
	Keywords    []string // nil = unchanged
	CategoryID  *uuid.UUID
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Keywords == nil && p.CategoryID == nil
}

// Apply returns a copy of post with the patch applied.
func (p PostPatch) Apply(post Post) Post {
	if p.Name != nil {
		post.Name = *p.Name
	}
	if p.Description != nil {
		post.Description = *p.Description
	}
	if p.Keywords != nil {
		post.Keywords = append([]string(nil), p.Keywords...)
	}
	if p.CategoryID != nil {
		post.CategoryID = *p.CategoryID
	}
	return post
}

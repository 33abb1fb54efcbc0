// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// ErrorKind classifies an application error. Handlers map kinds to HTTP
// status codes.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindAuth
	KindNotFound
	KindConflict
)

// String returns a lowercase name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

// Error is an expected failure whose Message is safe to show to clients.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches another *Error of the same kind. A target without a message
// matches every error of its kind, so errors.Is(err, ErrNotFound) holds for
// ErrPostNotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Kind sentinels.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
)

// Specific failures.
var (
	ErrDuplicateEmail     = &Error{Kind: KindValidation, Message: "user already exists"}
	ErrInvalidCredentials = &Error{Kind: KindAuth, Message: "invalid credentials"}
	ErrMissingAuthHeader  = &Error{Kind: KindAuth, Message: "invalid auth headers"}
	ErrInvalidToken       = &Error{Kind: KindAuth, Message: "invalid token"}
	ErrCategoryNotFound   = &Error{Kind: KindValidation, Message: "category not found"}
	ErrPostNotFound       = &Error{Kind: KindNotFound, Message: "post not found"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "user not found, please log in again"}
	ErrAlreadyLiked       = &Error{Kind: KindConflict, Message: "you have already liked this post"}
	ErrNotLiked           = &Error{Kind: KindConflict, Message: "you have not liked this post"}
)

// Validationf builds a validation error with a formatted message.
func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgreSQL error codes the stores translate into model errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pgError returns the underlying *pgconn.PgError, if any.
func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// isUniqueViolation reports whether err violates the named unique constraint.
func isUniqueViolation(err error, constraint string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
}

// foreignKeyConstraint returns the violated foreign key constraint name.
func foreignKeyConstraint(err error) (string, bool) {
	pgErr, ok := pgError(err)
	if !ok || pgErr.Code != pgForeignKeyViolation {
		return "", false
	}
	return pgErr.ConstraintName, true
}

// arrays wraps a pgtype.Map so TEXT[] columns can be scanned through
// database/sql. A Map is not safe for concurrent use; create one per query.
type arrays struct {
	m *pgtype.Map
}

func newArrays() arrays {
	return arrays{m: pgtype.NewMap()}
}

// text returns a scanner that decodes a TEXT[] column into dst.
func (a arrays) text(dst *[]string) sql.Scanner {
	return a.m.SQLScanner(dst)
}

// nonNil turns a nil slice into an empty one so JSON encodes [] not null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

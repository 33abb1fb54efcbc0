// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns arbitrary strings into lowercase, hyphenated tokens
// safe for object storage keys.
package slug

import (
	"path"
	"regexp"
	"strings"
)

// MaxFilenameLen caps slugs derived from uploaded file names.
const MaxFilenameLen = 64

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or hyphen
	// once whitespace has been turned into hyphens.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.Join(strings.Fields(strings.ToLower(s)), "-")
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// FromFilename slugs the base name of an uploaded file, dropping its
// directory and extension. Returns "file" when nothing usable remains.
// Example: "C:/pics/My Cat (1).JPG" → "my-cat-1"
func FromFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))

	result := Generate(base)
	if len(result) > MaxFilenameLen {
		result = strings.TrimRight(result[:MaxFilenameLen], "-")
	}
	if result == "" {
		return "file"
	}
	return result
}

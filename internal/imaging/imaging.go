// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging inspects uploaded images before they are stored. It
// sniffs the content type, confirms the bytes decode as one of the
// accepted formats, and reports the dimensions. Only the image header is
// decoded, so large uploads are cheap to check.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"

	// Register decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrUnsupportedType is returned for uploads that are not JPEG, PNG, GIF,
// or WebP.
var ErrUnsupportedType = errors.New("unsupported image type")

// Info describes an inspected image.
type Info struct {
	ContentType string // e.g. "image/png"
	Ext         string // file extension without the dot, e.g. "png"
	Width       int
	Height      int
}

// allowed maps sniffed content types to their canonical extension.
var allowed = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Inspect validates data as an accepted image and returns its metadata.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, fmt.Errorf("imaging: empty file")
	}

	ct := http.DetectContentType(data)
	ext, ok := allowed[ct]
	if !ok {
		return Info{}, fmt.Errorf("imaging: %w: %s", ErrUnsupportedType, ct)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("imaging: decode %s: %w", ct, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("imaging: %s has no pixels", ct)
	}

	return Info{ContentType: ct, Ext: ext, Width: cfg.Width, Height: cfg.Height}, nil
}

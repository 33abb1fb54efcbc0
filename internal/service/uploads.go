// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"sharehub/internal/imaging"
	"sharehub/internal/models"
)

var (
	errNoStorage    = &models.Error{Kind: models.KindValidation, Message: "object storage is not configured"}
	errUploadFailed = &models.Error{Kind: models.KindValidation, Message: "error uploading image"}
	errInvalidImage = &models.Error{Kind: models.KindValidation, Message: "only JPEG, PNG, GIF and WebP images are allowed"}
	cleanupTimeout  = 10 * time.Second
)

// inspectUpload checks that up is an accepted image.
func inspectUpload(up Upload) (imaging.Info, error) {
	info, err := imaging.Inspect(up.Data)
	if err != nil {
		slog.Debug("rejected upload", "filename", up.Filename, "error", err)
		return imaging.Info{}, errInvalidImage
	}
	return info, nil
}

// putObject uploads data under key and returns its public URL. Storage
// failures are logged and reported as errUploadFailed.
func putObject(ctx context.Context, objects ObjectStore, key string, info imaging.Info, data []byte) (string, error) {
	if err := objects.Upload(ctx, key, info.ContentType, bytes.NewReader(data), int64(len(data))); err != nil {
		slog.Error("object upload failed", "key", key, "error", err)
		return "", errUploadFailed
	}
	return objects.FileURL(key), nil
}

// discardObjects deletes objects written by a request that later failed.
// It runs even when ctx is already canceled.
func discardObjects(ctx context.Context, objects ObjectStore, keys ...string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := objects.Delete(ctx, key); err != nil {
			slog.Warn("orphaned object cleanup failed", "key", key, "error", err)
			continue
		}
		slog.Debug("orphaned object removed", "key", key)
	}
}

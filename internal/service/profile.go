// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"sharehub/internal/models"
	"sharehub/internal/slug"
)

var errEmptyProfileEdit = &models.Error{Kind: models.KindValidation, Message: "please provide username or avatar"}

// ProfileService reads and edits the caller's own account.
type ProfileService struct {
	users   UserRepository
	objects ObjectStore // nil when storage is not configured
}

// NewProfileService creates a ProfileService.
func NewProfileService(users UserRepository, objects ObjectStore) *ProfileService {
	return &ProfileService{users: users, objects: objects}
}

// GetProfile returns the caller's account with its liked post ids.
func (s *ProfileService) GetProfile(ctx context.Context, callerID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

// EditProfile changes the username, the avatar, or both. At least one must
// be given.
func (s *ProfileService) EditProfile(ctx context.Context, callerID uuid.UUID, username string, avatar *Upload) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" && avatar == nil {
		return nil, errEmptyProfileEdit
	}

	user, err := s.GetProfile(ctx, callerID)
	if err != nil {
		return nil, err
	}

	newUsername, newAvatar := user.Username, user.Avatar
	if username != "" {
		newUsername = username
	}

	var avatarKey string
	if avatar != nil {
		if s.objects == nil {
			return nil, errNoStorage
		}
		info, err := inspectUpload(*avatar)
		if err != nil {
			return nil, err
		}
		avatarKey = fmt.Sprintf("avatar/%s/%s-%s.%s", callerID, uuid.NewString(), slug.FromFilename(avatar.Filename), info.Ext)
		if newAvatar, err = putObject(ctx, s.objects, avatarKey, info, avatar.Data); err != nil {
			return nil, err
		}
	}

	updated, err := s.users.UpdateProfile(ctx, callerID, newUsername, newAvatar)
	if err != nil {
		if avatarKey != "" {
			discardObjects(ctx, s.objects, avatarKey)
		}
		return nil, err
	}

	if avatarKey != "" && user.Avatar != "" {
		if oldKey, ok := s.objects.ExtractKey(user.Avatar); ok && oldKey != avatarKey {
			discardObjects(ctx, s.objects, oldKey)
		}
	}

	slog.Info("profile updated", "user_id", callerID, "avatar_changed", avatarKey != "")
	return updated, nil
}

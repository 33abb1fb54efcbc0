// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"

	"sharehub/internal/service"
)

// Profile groups the handlers for the caller's own account.
type Profile struct {
	profiles *service.ProfileService
	maxBytes int64
}

// NewProfile creates a new Profile handler group.
func NewProfile(profiles *service.ProfileService, maxBytes int64) *Profile {
	return &Profile{profiles: profiles, maxBytes: maxBytes}
}

type editProfileRequest struct {
	Username string `json:"username"`
}

func (req *editProfileRequest) fromForm(form url.Values) error {
	req.Username = form.Get("username")
	return nil
}

// Get returns the caller's account.
func (h *Profile) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	user, err := h.profiles.GetProfile(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Edit changes the caller's username, avatar file, or both.
func (h *Profile) Edit(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}

	var req editProfileRequest
	form, err := decodeBody(w, r, h.maxBytes, &req, false)
	defer releaseForm(form)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	avatar, err := singleUpload(form, "avatar")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.profiles.EditProfile(r.Context(), uid, req.Username, avatar)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "profile updated successfully",
		"user":    user,
	})
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"

	"sharehub/internal/service"
)

// Auth groups the registration and login handlers.
type Auth struct {
	auth     *service.AuthService
	maxBytes int64
}

// NewAuth creates a new Auth handler group. maxBytes caps request bodies,
// avatar upload included.
func NewAuth(auth *service.AuthService, maxBytes int64) *Auth {
	return &Auth{auth: auth, maxBytes: maxBytes}
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Username        string `json:"username"`
	Avatar          string `json:"avatar"`
}

func (req *registerRequest) fromForm(form url.Values) error {
	req.Email = form.Get("email")
	req.Password = form.Get("password")
	req.ConfirmPassword = form.Get("confirmPassword")
	req.Username = form.Get("username")
	req.Avatar = form.Get("avatar")
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *loginRequest) fromForm(form url.Values) error {
	req.Email = form.Get("email")
	req.Password = form.Get("password")
	return nil
}

// Register creates an account. The avatar is either an uploaded "avatar"
// file or a URL in the "avatar" field.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	form, err := decodeBody(w, r, a.maxBytes, &req, false)
	defer releaseForm(form)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	avatarFile, err := singleUpload(form, "avatar")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := a.auth.Register(r.Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Username:        req.Username,
		Avatar:          req.Avatar,
		AvatarFile:      avatarFile,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "user created successfully",
		"user":    user,
	})
}

// Login exchanges credentials for a bearer token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	form, err := decodeBody(w, r, a.maxBytes, &req, false)
	defer releaseForm(form)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "user logged in successfully",
		"token":   token,
	})
}

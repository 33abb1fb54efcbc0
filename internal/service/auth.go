// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sharehub/internal/models"
)

// Password limits. bcrypt refuses input longer than 72 bytes.
const (
	minPasswordLen   = 6
	maxPasswordBytes = 72
)

// avatarKeyPrefix namespaces avatars uploaded at registration.
const avatarKeyPrefix = "avatars/"

// Claims is the JWT payload. The user id travels as "id".
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login, and bearer token operations.
type AuthService struct {
	users      UserRepository
	objects    ObjectStore // nil when storage is not configured
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

// NewAuthService creates an AuthService. A zero tokenTTL issues tokens
// without an expiry.
func NewAuthService(users UserRepository, objects ObjectStore, secret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		objects:    objects,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// RegisterInput is the registration payload. Avatar is a URL used when no
// AvatarFile is uploaded.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Username        string
	Avatar          string
	AvatarFile      *Upload
}

// Register validates the input, stores the optional avatar, and creates
// the account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.TrimSpace(in.Username)

	if err := validateCredentials(email, in.Password); err != nil {
		return nil, err
	}
	if in.ConfirmPassword != "" && in.ConfirmPassword != in.Password {
		return nil, models.Validationf("passwords do not match")
	}
	if username == "" {
		return nil, models.Validationf("username is required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	avatar := strings.TrimSpace(in.Avatar)
	var avatarKey string
	if in.AvatarFile != nil {
		if s.objects == nil {
			return nil, errNoStorage
		}
		info, err := inspectUpload(*in.AvatarFile)
		if err != nil {
			return nil, err
		}
		avatarKey = avatarKeyPrefix + uuid.NewString() + "." + info.Ext
		if avatar, err = putObject(ctx, s.objects, avatarKey, info, in.AvatarFile.Data); err != nil {
			return nil, err
		}
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       avatar,
		Username:     username,
	})
	if err != nil {
		if avatarKey != "" {
			discardObjects(ctx, s.objects, avatarKey)
		}
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", err
	}
	slog.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// IssueToken signs an HS256 token carrying userID.
func (s *AuthService) IssueToken(userID uuid.UUID) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.tokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenTTL))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token and returns the user id it carries. Any
// failure is reported as models.ErrInvalidToken.
func (s *AuthService) ParseToken(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		if err != nil && !errors.Is(err, jwt.ErrTokenMalformed) {
			slog.Debug("token rejected", "error", err)
		}
		return uuid.Nil, models.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, models.ErrInvalidToken
	}
	return id, nil
}

// validateCredentials applies the shared email and password rules.
func validateCredentials(email, password string) error {
	if email == "" {
		return models.Validationf("email is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return models.Validationf("email must be a valid email")
	}
	if password == "" {
		return models.Validationf("password is required")
	}
	if len([]rune(password)) < minPasswordLen {
		return models.Validationf("password length must be at least %d characters long", minPasswordLen)
	}
	if len(password) > maxPasswordBytes {
		return models.Validationf("password must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

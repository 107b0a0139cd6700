// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/velora-labs/skinmatch/internal/config"
	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/models"
)

// ErrInvalidCredentials is returned when the login username or
// password does not match. Callers must not distinguish which.
var ErrInvalidCredentials = errors.New("invalid credentials")

type claimsKey struct{}

// AdminAuthenticator verifies the configured admin credentials and
// gates the admin route group.
type AdminAuthenticator struct {
	username     string
	passwordHash []byte
	jwt          *JWTManager
}

// NewAdminAuthenticator builds the authenticator from config. The
// password hash must be a bcrypt hash.
func NewAdminAuthenticator(cfg config.AdminConfig) (*AdminAuthenticator, error) {
	jwtManager, err := NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &AdminAuthenticator{
		username:     cfg.Username,
		passwordHash: []byte(cfg.PasswordHash),
		jwt:          jwtManager,
	}, nil
}

// Login checks the credentials and issues an admin token. Both checks
// always run so response timing does not reveal which field failed.
func (a *AdminAuthenticator) Login(username, password string) (string, error) {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil

	if !usernameMatch || !passwordMatch {
		logging.Warn().Str("username", username).Msg("Admin login failed")
		return "", ErrInvalidCredentials
	}

	logging.Info().Str("username", username).Msg("Admin login succeeded")
	return a.jwt.GenerateToken(username, RoleAdmin)
}

// RequireAdmin rejects requests without a valid admin Bearer token.
func (a *AdminAuthenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			unauthorized(w, "Missing bearer token")
			return
		}

		claims, err := a.jwt.ValidateToken(token)
		if err != nil || claims.Role != RoleAdmin {
			unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the admin claims set by RequireAdmin, or
// nil outside an authenticated admin request.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey{}).(*Claims)
	return claims
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: "AUTHENTICATION_ERROR", Message: message},
	})
}

// Package http provides the HTTP facade over the credential and goal
// services: account lifecycle, goal CRUD, progress tracking, and the
// workout catalog endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fitkeeper/fittrack/internal/models"
)

// AuthService defines the credential operations required by the HTTP handlers.
type AuthService interface {
	// CreateAccount registers a new user.
	CreateAccount(ctx context.Context, username, password string) error
	// Authenticate checks a password against the stored credentials.
	Authenticate(ctx context.Context, username, password string) (bool, error)
	// ChangePassword replaces the user's credentials.
	ChangePassword(ctx context.Context, username, newPassword string) error
}

// AuthHandler handles HTTP requests for account creation, login, and
// password changes.
type AuthHandler struct {
	// AuthService performs the underlying credential operations.
	AuthService AuthService
}

// credentialsRequest represents the JSON payload for registration and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles account-creation requests.
// It expects a JSON body with non-empty "username" and "password" fields.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.CreateAccount(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, models.ErrDuplicateUsername) {
			http.Error(w, "username already taken", http.StatusConflict)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "account created"})
}

// Login handles authentication requests. A wrong password and an unknown
// username both produce the same 401 response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	ok, err := h.AuthService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "invalid username or password", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "login successful"})
}

// UpdatePassword handles password-change requests.
// It expects a JSON body with "username" and "new_password" fields.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.NewPassword == "" {
		http.Error(w, "username and new password are required", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ChangePassword(r.Context(), req.Username, req.NewPassword); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// writeJSON encodes v as the JSON response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"

	"github.com/gorilla/sessions"

	"tandem/internal/middleware"
	"tandem/internal/service"
)

type signupFields struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginFields struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler manages registration, authentication and profile maintenance.
type AuthHandler struct {
	authService service.AuthService
	cookieStore *sessions.CookieStore
}

func NewAuthHandler(authService service.AuthService, cookieStore *sessions.CookieStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieStore: cookieStore,
	}
}

// Registers a user and opens its session.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var request signupFields
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.authService.Signup(r.Context(), request.Email, request.Password, request.FullName)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.openSession(w, r, user.UUID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "user": user})
}

// Authenticates a user and opens its session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request loginFields
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.authService.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.openSession(w, r, user.UUID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

// Logout deletes the current user's session, effectively logging him out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	session.Options.MaxAge = -1
	if err := sessions.Save(r, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logout successful"})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

// Onboard completes the profile after signup.
func (h *AuthHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var input service.OnboardInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.authService.Onboard(r.Context(), user.UUID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": updated})
}

// UpdateProfile edits the profile fields of the authenticated account.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var input service.ProfileUpdate
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user.UUID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": updated})
}

func (h *AuthHandler) openSession(w http.ResponseWriter, r *http.Request, userUUID string) error {
	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	session.Values["user_uuid"] = userUUID
	return sessions.Save(r, w)
}

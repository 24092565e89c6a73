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

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"tandem/internal/middleware"
	"tandem/internal/service"
)

// Handlers groups the concrete handlers the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Friend    *FriendHandler
	Thread    *ThreadHandler
	Community *CommunityHandler
}

// NewRouter mounts every route under /api. Signup and login are public,
// everything else sits behind the session middleware.
func NewRouter(h Handlers, cookieStore *sessions.CookieStore, authService service.AuthService) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Authentication routes
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods("POST")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")

	protected := api.NewRoute().Subrouter()
	protected.Use(func(next http.Handler) http.Handler {
		return middleware.AuthMiddleware(cookieStore, authService, next)
	})

	protected.HandleFunc("/auth/logout", h.Auth.Logout).Methods("POST")
	protected.HandleFunc("/auth/me", h.Auth.Me).Methods("GET")
	protected.HandleFunc("/auth/onboarding", h.Auth.Onboard).Methods("POST")
	protected.HandleFunc("/auth/update-profile", h.Auth.UpdateProfile).Methods("PUT")

	// User discovery and the friend request lifecycle
	protected.HandleFunc("/users", h.User.Recommended).Methods("GET")
	protected.HandleFunc("/users/friends", h.User.Friends).Methods("GET")
	protected.HandleFunc("/users/friend-request/{id}", h.Friend.SendRequest).Methods("POST")
	protected.HandleFunc("/users/friend-request/{id}/accept", h.Friend.AcceptRequest).Methods("PUT")
	protected.HandleFunc("/users/friend-requests", h.Friend.ListIncoming).Methods("GET")
	protected.HandleFunc("/users/outgoing-friend-requests", h.Friend.ListOutgoing).Methods("GET")
	protected.HandleFunc("/users/search", h.User.Search).Methods("GET")
	protected.HandleFunc("/users/{id}", h.User.Profile).Methods("GET")

	// Threads
	protected.HandleFunc("/threads", h.Thread.Feed).Methods("GET")
	protected.HandleFunc("/threads", h.Thread.CreatePost).Methods("POST")
	protected.HandleFunc("/threads/{id}", h.Thread.Get).Methods("GET")
	protected.HandleFunc("/threads/{id}", h.Thread.Edit).Methods("PUT")
	protected.HandleFunc("/threads/{id}", h.Thread.Delete).Methods("DELETE")
	protected.HandleFunc("/threads/{id}/comments", h.Thread.CreateReply).Methods("POST")
	protected.HandleFunc("/threads/{id}/like", h.Thread.ToggleLike).Methods("POST")
	protected.HandleFunc("/threads/{id}/repost", h.Thread.ToggleRepost).Methods("POST")
	protected.HandleFunc("/threads/{id}/vote", h.Thread.Vote).Methods("POST")
	protected.HandleFunc("/threads/{id}/bookmark", h.Thread.ToggleBookmark).Methods("POST")

	// Communities
	protected.HandleFunc("/communities", h.Community.Search).Methods("GET")
	protected.HandleFunc("/communities", h.Community.Create).Methods("POST")
	protected.HandleFunc("/communities/{id}", h.Community.Get).Methods("GET")
	protected.HandleFunc("/communities/{id}", h.Community.Update).Methods("PUT")
	protected.HandleFunc("/communities/{id}", h.Community.Delete).Methods("DELETE")
	protected.HandleFunc("/communities/{id}/join", h.Community.Join).Methods("POST")
	protected.HandleFunc("/communities/{id}/leave", h.Community.Leave).Methods("POST")
	protected.HandleFunc("/communities/{id}/remove-member", h.Community.RemoveMember).Methods("POST")

	// Notifications are not persisted yet; the client polls this and
	// renders whatever comes back.
	protected.HandleFunc("/notifications", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"notifications": []any{}})
	}).Methods("GET")

	return r
}
